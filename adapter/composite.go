package adapter

import (
	"fmt"
	"math"
	"reflect"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/builtin"
	js "github.com/reoring/wireschema/jsonschema"
)

// leaf is a synthesized schema that is always inlined.
type leaf struct {
	name  string
	id    string
	build func(g *wireschema.Generator) *js.Schema
}

func (l leaf) SchemaName() string                            { return l.name }
func (l leaf) SchemaID() string                              { return l.id }
func (l leaf) IsReferenceable() bool                         { return false }
func (l leaf) JSONSchema(g *wireschema.Generator) *js.Schema { return l.build(g) }

// BoolFromInt writes a bool as 0 or 1. Flexible decoding accepts any
// integer, so its schema drops the bounds.
func BoolFromInt(s wireschema.Strictness) wireschema.Type[bool] {
	name := "BoolFromInt<" + s.String() + ">"
	return wireschema.As[bool](leaf{
		name: name,
		id:   "adapter." + name,
		build: func(*wireschema.Generator) *js.Schema {
			if s == wireschema.Strict {
				return &js.Schema{Type: "integer", Minimum: js.Float(0), Maximum: js.Float(1)}
			}
			return &js.Schema{Type: "integer"}
		},
	})
}

// BytesOrString writes bytes as an array and also accepts a string on input.
func BytesOrString() wireschema.Type[[]byte] {
	return wireschema.As[[]byte](leaf{
		name: "BytesOrString",
		id:   "adapter.BytesOrString",
		build: func(g *wireschema.Generator) *js.Schema {
			return &js.Schema{AnyOf: []*js.Schema{
				g.SubschemaFor(builtin.ByteArray()),
				{Type: "string", WriteOnly: true},
			}}
		},
	})
}

// ArrayN applies elem to every item of a sequence of exactly n items. A
// length past math.MaxUint32 cannot be written as a bound, so the schema
// then only requires at least math.MaxUint32 items.
func ArrayN[E any](n uint64, elem wireschema.Type[E]) wireschema.Type[[]E] {
	return wireschema.As[[]E](fixedArray(n, elem))
}

// Array is ArrayN for the Go array type A, whose element type must be E.
// It panics if A is not such an array type.
func Array[A, E any](elem wireschema.Type[E]) wireschema.Type[A] {
	at := reflect.TypeFor[A]()
	if at.Kind() != reflect.Array {
		panic(fmt.Sprintf("adapter: Array of non-array type %s", at))
	}
	if et := reflect.TypeFor[E](); at.Elem() != et {
		panic(fmt.Sprintf("adapter: Array of %s with element schema for %s", at, et))
	}
	return wireschema.As[A](fixedArray(uint64(at.Len()), elem))
}

func fixedArray(n uint64, elem wireschema.Schemer) leaf {
	return leaf{
		name: fmt.Sprintf("[%s; %d]", elem.SchemaName(), n),
		id:   fmt.Sprintf("[%s; %d]", elem.SchemaID(), n),
		build: func(g *wireschema.Generator) *js.Schema {
			s := &js.Schema{Type: "array", Items: g.SubschemaFor(elem)}
			if n > math.MaxUint32 {
				s.MinItems = js.Length(math.MaxUint32)
			} else {
				s.MinItems = js.Length(uint32(n))
				s.MaxItems = js.Length(uint32(n))
			}
			return s
		},
	}
}
