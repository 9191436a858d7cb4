// Package adapter provides the schemas of serialization adapters: value
// re-encodings whose wire form differs from the default form of the Go type
// they are applied to.
//
// Most adapters keep the shape of another schema and only change how a value
// converts, so they forward to it. The rest synthesize their schema; see
// BoolFromInt, BytesOrString, ArrayN, SetLastValueWins and the timespan
// family.
package adapter

import (
	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/builtin"
)

func forwardTo[T any](target wireschema.Schemer) wireschema.Type[T] {
	return wireschema.As[T](wireschema.Forward(target))
}

// Same writes the value with its own schema.
func Same[T any](t wireschema.Type[T]) wireschema.Type[T] { return forwardTo[T](t) }

// DisplayFromStr writes the value as its textual form.
func DisplayFromStr[T any]() wireschema.Type[T] { return forwardTo[T](builtin.String()) }

// Slice applies elem to every item of a slice.
func Slice[E any](elem wireschema.Type[E]) wireschema.Type[[]E] {
	return forwardTo[[]E](builtin.Slice(elem))
}

// Pointer applies elem through a pointer.
func Pointer[E any](elem wireschema.Type[E]) wireschema.Type[*E] {
	return forwardTo[*E](builtin.Pointer(elem))
}

// Option applies elem to a value that may be null.
func Option[E any](elem wireschema.Type[E]) wireschema.Type[*E] {
	return forwardTo[*E](builtin.Option(elem))
}

// Map applies val to every value of a map.
func Map[K comparable, V any](val wireschema.Type[V]) wireschema.Type[map[K]V] {
	return forwardTo[map[K]V](builtin.Map[K](val))
}

// Set applies elem to every member of a set.
func Set[E comparable](elem wireschema.Type[E]) wireschema.Type[map[E]struct{}] {
	return forwardTo[map[E]struct{}](builtin.Set(elem))
}

// Tuple applies one schema per position of a fixed-length sequence.
func Tuple(elems ...wireschema.Schemer) wireschema.Type[[]any] {
	return forwardTo[[]any](builtin.Tuple(elems...))
}

// Unit writes the empty value.
func Unit() wireschema.Type[struct{}] { return forwardTo[struct{}](builtin.Unit()) }

// DefaultOnError decodes the zero value when inner fails to decode.
func DefaultOnError[T any](inner wireschema.Type[T]) wireschema.Type[T] { return forwardTo[T](inner) }

// DefaultOnNull decodes null as the zero value, so null joins inner's wire
// forms.
func DefaultOnNull[T any](inner wireschema.Type[T]) wireschema.Type[T] {
	return forwardTo[T](builtin.Option(inner))
}

// FromInto converts O to and from T and writes T.
func FromInto[O, T any](via wireschema.Type[T]) wireschema.Type[O] { return forwardTo[O](via) }

// FromIntoRef is FromInto for values converted from a reference.
func FromIntoRef[O, T any](via wireschema.Type[T]) wireschema.Type[O] { return forwardTo[O](via) }

// TryFromInto is FromInto where either conversion may fail.
func TryFromInto[O, T any](via wireschema.Type[T]) wireschema.Type[O] { return forwardTo[O](via) }

// TryFromIntoRef is TryFromInto for values converted from a reference.
func TryFromIntoRef[O, T any](via wireschema.Type[T]) wireschema.Type[O] { return forwardTo[O](via) }

// Bytes writes the value as a byte sequence.
func Bytes[T any]() wireschema.Type[T] { return forwardTo[T](builtin.ByteArray()) }

// VecSkipError drops items that fail to decode.
func VecSkipError[E any](elem wireschema.Type[E]) wireschema.Type[[]E] {
	return forwardTo[[]E](builtin.Slice(elem))
}

// Separator joins the items of StringWithSeparator.
type Separator string

const (
	SpaceSeparator Separator = " "
	CommaSeparator Separator = ","
)

// StringWithSeparator writes the items of a sequence joined by sep. Only the
// string is visible in the schema.
func StringWithSeparator[T any](sep Separator) wireschema.Type[T] {
	return forwardTo[T](builtin.String())
}
