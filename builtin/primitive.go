// Package builtin describes the default wire form of ordinary Go types.
//
// These are the host descriptions adapters forward to or nest inside. A
// container such as Slice accepts any wireschema.Type, so an adapter proxy can
// stand in for the element without the container knowing about adapters.
package builtin

import (
	"time"

	"github.com/reoring/wireschema"
	js "github.com/reoring/wireschema/jsonschema"
)

// primitive is a non-referenceable leaf schema.
type primitive struct {
	name   string
	typ    string
	format string
	min    *float64
	enc    string
}

func (p primitive) SchemaName() string    { return p.name }
func (p primitive) SchemaID() string      { return p.name }
func (p primitive) IsReferenceable() bool { return false }

func (p primitive) JSONSchema(*wireschema.Generator) *js.Schema {
	s := &js.Schema{Type: p.typ, Format: p.format, ContentEncoding: p.enc}
	if p.min != nil {
		s.Minimum = js.Float(*p.min)
	}
	return s
}

func signed[T any](name string) wireschema.Type[T] {
	return wireschema.Describe[T](primitive{name: name, typ: "integer", format: name})
}

func unsigned[T any](name string) wireschema.Type[T] {
	return wireschema.Describe[T](primitive{name: name, typ: "integer", format: name, min: js.Float(0)})
}

// String describes text.
func String() wireschema.Type[string] {
	return wireschema.Describe[string](primitive{name: "String", typ: "string"})
}

// Bool describes true/false.
func Bool() wireschema.Type[bool] {
	return wireschema.Describe[bool](primitive{name: "Boolean", typ: "boolean"})
}

// Int describes int as an integer with format "int".
func Int() wireschema.Type[int] { return signed[int]("int") }

// Int8 describes int8 as an integer with format "int8".
func Int8() wireschema.Type[int8] { return signed[int8]("int8") }

// Int16 describes int16 as an integer with format "int16".
func Int16() wireschema.Type[int16] { return signed[int16]("int16") }

// Int32 describes int32 as an integer with format "int32".
func Int32() wireschema.Type[int32] { return signed[int32]("int32") }

// Int64 describes int64 as an integer with format "int64".
func Int64() wireschema.Type[int64] { return signed[int64]("int64") }

// Uint describes uint as a non-negative integer with format "uint".
func Uint() wireschema.Type[uint] { return unsigned[uint]("uint") }

// Uint8 describes uint8 as a non-negative integer with format "uint8".
func Uint8() wireschema.Type[uint8] { return unsigned[uint8]("uint8") }

// Uint16 describes uint16 as a non-negative integer with format "uint16".
func Uint16() wireschema.Type[uint16] { return unsigned[uint16]("uint16") }

// Uint32 describes uint32 as a non-negative integer with format "uint32".
func Uint32() wireschema.Type[uint32] { return unsigned[uint32]("uint32") }

// Uint64 describes uint64 as a non-negative integer with format "uint64".
func Uint64() wireschema.Type[uint64] { return unsigned[uint64]("uint64") }

// Float32 describes single precision numbers.
func Float32() wireschema.Type[float32] {
	return wireschema.Describe[float32](primitive{name: "float", typ: "number", format: "float"})
}

// Float64 describes double precision numbers.
func Float64() wireschema.Type[float64] {
	return wireschema.Describe[float64](primitive{name: "double", typ: "number", format: "double"})
}

// Bytes describes []byte the way encoding/json writes it: a base64 string.
func Bytes() wireschema.Type[[]byte] {
	return wireschema.Describe[[]byte](primitive{name: "Base64Bytes", typ: "string", enc: "base64"})
}

// ByteArray describes bytes written as an array of integers in [0, 255].
func ByteArray() wireschema.Type[[]byte] { return Slice(Uint8()) }

// Unit describes the empty value, written as null.
func Unit() wireschema.Type[struct{}] {
	return wireschema.Describe[struct{}](primitive{name: "null", typ: "null"})
}

// Any accepts every value.
func Any() wireschema.Type[any] { return wireschema.Type[any]{} }

// Time describes time.Time as encoding/json writes it, an RFC 3339 string.
func Time() wireschema.Type[time.Time] {
	return wireschema.Describe[time.Time](primitive{name: "DateTime", typ: "string", format: "date-time"})
}

// Duration describes time.Duration as encoding/json writes it, integer
// nanoseconds.
func Duration() wireschema.Type[time.Duration] {
	return wireschema.Describe[time.Duration](primitive{name: "Duration", typ: "integer", format: "int64"})
}
