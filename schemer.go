package wireschema

import (
	js "github.com/reoring/wireschema/jsonschema"
)

// Schemer is implemented by anything the Generator can describe: host
// descriptions of ordinary Go types and adapter proxies alike.
type Schemer interface {
	// SchemaName is the title of root documents and the key of the definition
	// for referenceable subschemas.
	SchemaName() string
	// SchemaID identifies the produced shape. Two schemers emitting different
	// documents must return different ids; schemers emitting the same document
	// should share one.
	SchemaID() string
	// IsReferenceable reports whether the Generator may register the schema
	// once and emit "$ref" elsewhere. Recursive schemers must return true.
	IsReferenceable() bool
	// JSONSchema builds the document. It may request subschemas from g but must
	// not return a reference to itself.
	JSONSchema(g *Generator) *js.Schema
}

// Type binds a Schemer to the Go value type T whose wire form it describes.
// Host containers accept Type values, so adapter-aware schemas compose with
// slices, maps, options and tuples without those containers knowing about
// adapters. The zero Type describes any value.
type Type[T any] struct{ s Schemer }

// Describe declares that s describes values of type T.
func Describe[T any](s Schemer) Type[T] { return Type[T]{s: s} }

func (t Type[T]) SchemaName() string    { return t.schemer().SchemaName() }
func (t Type[T]) SchemaID() string      { return t.schemer().SchemaID() }
func (t Type[T]) IsReferenceable() bool { return t.schemer().IsReferenceable() }

func (t Type[T]) JSONSchema(g *Generator) *js.Schema { return t.schemer().JSONSchema(g) }

// Untyped drops the value type, for registries working on runtime values.
func (t Type[T]) Untyped() Type[any] { return Type[any]{s: t.schemer()} }

func (t Type[T]) schemer() Schemer {
	if t.s == nil {
		return anyValue{}
	}
	return t.s
}

// anyValue accepts every value.
type anyValue struct{}

func (anyValue) SchemaName() string               { return "AnyValue" }
func (anyValue) SchemaID() string                 { return "AnyValue" }
func (anyValue) IsReferenceable() bool            { return false }
func (anyValue) JSONSchema(*Generator) *js.Schema { return &js.Schema{} }
