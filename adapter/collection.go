package adapter

import (
	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/builtin"
	js "github.com/reoring/wireschema/jsonschema"
)

// Duplicate handling only changes decoding, so the map and set policy
// adapters below share the schema of the plain container.

// MapFirstKeyWins keeps the first value of a repeated key.
func MapFirstKeyWins[K comparable, V any](val wireschema.Type[V]) wireschema.Type[map[K]V] {
	return forwardTo[map[K]V](builtin.Map[K](val))
}

// MapPreventDuplicates rejects a repeated key.
func MapPreventDuplicates[K comparable, V any](val wireschema.Type[V]) wireschema.Type[map[K]V] {
	return forwardTo[map[K]V](builtin.Map[K](val))
}

// Pair is one entry of a map written from a sequence.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// SeqAsMap writes a slice of pairs as a JSON object.
func SeqAsMap[K comparable, V any](val wireschema.Type[V]) wireschema.Type[[]Pair[K, V]] {
	return SeqAsMapAs[[]Pair[K, V], K](val)
}

// SeqAsMapAs writes any container S of K/V pairs (slice, array, list, heap,
// set of pairs) as a JSON object. The container does not affect the schema.
func SeqAsMapAs[S any, K comparable, V any](val wireschema.Type[V]) wireschema.Type[S] {
	return forwardTo[S](builtin.Map[K](val))
}

// SetPreventDuplicates rejects a repeated member.
func SetPreventDuplicates[T any](set wireschema.Type[T]) wireschema.Type[T] {
	return forwardTo[T](set)
}

// SetLastValueWins keeps the last of equal members, so repeated members are
// valid input. The schema is that of set without uniqueItems.
func SetLastValueWins[T any](set wireschema.Type[T]) wireschema.Type[T] {
	return wireschema.As[T](leaf{
		name: "SetLastValueWins<" + set.SchemaName() + ">",
		id:   "adapter.SetLastValueWins<" + set.SchemaID() + ">",
		build: func(g *wireschema.Generator) *js.Schema {
			s := set.JSONSchema(g).Clone()
			s.UniqueItems = false
			return s
		},
	})
}
