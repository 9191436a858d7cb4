package builtin

import (
	"strings"

	"github.com/reoring/wireschema"
	js "github.com/reoring/wireschema/jsonschema"
)

// composite is a non-referenceable schema derived from its parameters.
type composite struct {
	name  string
	id    string
	build func(g *wireschema.Generator) *js.Schema
}

func (c composite) SchemaName() string                            { return c.name }
func (c composite) SchemaID() string                              { return c.id }
func (c composite) IsReferenceable() bool                         { return false }
func (c composite) JSONSchema(g *wireschema.Generator) *js.Schema { return c.build(g) }

// Slice describes a JSON array whose items all match elem.
func Slice[E any](elem wireschema.Type[E]) wireschema.Type[[]E] {
	return wireschema.Describe[[]E](composite{
		name: "Array_of_" + elem.SchemaName(),
		id:   "[" + elem.SchemaID() + "]",
		build: func(g *wireschema.Generator) *js.Schema {
			return &js.Schema{Type: "array", Items: g.SubschemaFor(elem)}
		},
	})
}

// Map describes a JSON object whose values all match val. Keys are written
// as strings whatever K is.
func Map[K comparable, V any](val wireschema.Type[V]) wireschema.Type[map[K]V] {
	return wireschema.Describe[map[K]V](composite{
		name: "Map_of_" + val.SchemaName(),
		id:   "Map<" + val.SchemaID() + ">",
		build: func(g *wireschema.Generator) *js.Schema {
			return &js.Schema{Type: "object", AdditionalProperties: g.SubschemaFor(val)}
		},
	})
}

// Set describes a JSON array of distinct items. Go has no set type; the
// conventional map[E]struct{} stands in.
func Set[E comparable](elem wireschema.Type[E]) wireschema.Type[map[E]struct{}] {
	return wireschema.Describe[map[E]struct{}](composite{
		name: "Set_of_" + elem.SchemaName(),
		id:   "Set<" + elem.SchemaID() + ">",
		build: func(g *wireschema.Generator) *js.Schema {
			return &js.Schema{Type: "array", Items: g.SubschemaFor(elem), UniqueItems: true}
		},
	})
}

// Option describes a value that may be null.
func Option[E any](elem wireschema.Type[E]) wireschema.Type[*E] {
	return wireschema.Describe[*E](composite{
		name: "Nullable_" + elem.SchemaName(),
		id:   "Option<" + elem.SchemaID() + ">",
		build: func(g *wireschema.Generator) *js.Schema {
			return &js.Schema{AnyOf: []*js.Schema{g.SubschemaFor(elem), {Type: "null"}}}
		},
	})
}

// Pointer describes *E with the schema of E. Use Option when null is part of
// the wire form.
func Pointer[E any](elem wireschema.Type[E]) wireschema.Type[*E] {
	return wireschema.As[*E](wireschema.Forward(elem))
}

// Tuple describes a fixed-length JSON array with one schema per position.
// The empty tuple is Unit.
func Tuple(elems ...wireschema.Schemer) wireschema.Type[[]any] {
	if len(elems) == 0 {
		return wireschema.As[[]any](wireschema.Forward(Unit()))
	}
	names := make([]string, len(elems))
	ids := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.SchemaName()
		ids[i] = e.SchemaID()
	}
	n := uint32(len(elems))
	return wireschema.Describe[[]any](composite{
		name: "Tuple_of_" + strings.Join(names, "_and_"),
		id:   "(" + strings.Join(ids, ",") + ")",
		build: func(g *wireschema.Generator) *js.Schema {
			items := make([]*js.Schema, len(elems))
			for i, e := range elems {
				items[i] = g.SubschemaFor(e)
			}
			return &js.Schema{Type: "array", TupleItems: items, MinItems: js.Length(n), MaxItems: js.Length(n)}
		},
	})
}
