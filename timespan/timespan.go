// Package timespan classifies the (target type, wire format) pairs the
// duration and timestamp adapters support.
//
// Each pair carries two facts: whether the numeric form is signed and whether
// the default form is a string. The flexible adapters use them to pick which
// alternative of their number-or-string union is write-only.
package timespan

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/builtin"
	js "github.com/reoring/wireschema/jsonschema"
)

// Format is the type a timespan is written as.
type Format int

const (
	Int64   Format = iota // Whole units as a signed 64-bit integer.
	Uint64                // Whole units as an unsigned 64-bit integer.
	Float64               // Fractional units as a 64-bit float.
	String                // Fractional units as a decimal string.
)

var formatNames = [...]string{Int64: "int64", Uint64: "uint64", Float64: "float64", String: "string"}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a Go type name ("int64", "uint64", "float64", "string")
// back to a Format.
func ParseFormat(name string) (Format, bool) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), true
		}
	}
	return 0, false
}

// Schema returns the builtin schema of the wire format type.
func (f Format) Schema() wireschema.Schemer {
	switch f {
	case Int64:
		return builtin.Int64()
	case Uint64:
		return builtin.Uint64()
	case Float64:
		return builtin.Float64()
	case String:
		return builtin.String()
	}
	panic(fmt.Sprintf("timespan: unknown format %d", int(f)))
}

// Class is the classification of a supported (target, format) pair.
type Class struct {
	Signed bool // The numeric form may be negative.
	String bool // The default form is a string.
}

// Elapsed is a non-negative span of time. Its numeric forms carry a minimum
// of 0.
type Elapsed time.Duration

var (
	// ErrConflict is returned when a pair is registered twice with different
	// classes.
	ErrConflict = errors.New("timespan: conflicting classification")

	mu    sync.RWMutex
	table = map[key]Class{}
)

type key struct {
	target reflect.Type
	format Format
}

func init() {
	for _, t := range []reflect.Type{reflect.TypeFor[time.Duration](), reflect.TypeFor[time.Time]()} {
		mustRegister(t, true, Int64, Float64, String)
	}
	mustRegister(reflect.TypeFor[Elapsed](), false, Uint64, Float64, String)
}

func mustRegister(target reflect.Type, signed bool, formats ...Format) {
	if err := Register(target, signed, formats...); err != nil {
		panic(err)
	}
}

// Register declares that target can be written in each of formats. The
// String class is derived from the format. Registering a pair again with the
// same class is a no-op.
func Register(target reflect.Type, signed bool, formats ...Format) error {
	mu.Lock()
	defer mu.Unlock()
	for _, f := range formats {
		if f < Int64 || f > String {
			return fmt.Errorf("timespan: register %s: unknown format %d", target, int(f))
		}
		c := Class{Signed: signed, String: f == String}
		if prev, ok := table[key{target, f}]; ok && prev != c {
			return fmt.Errorf("%w: %s as %s", ErrConflict, target, f)
		}
	}
	for _, f := range formats {
		table[key{target, f}] = Class{Signed: signed, String: f == String}
	}
	return nil
}

// Classify looks up the classification of (target, format).
func Classify(target reflect.Type, format Format) (Class, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := table[key{target, format}]
	return c, ok
}

// ClassifyFor is Classify for a static target type.
func ClassifyFor[T any](format Format) (Class, bool) {
	return Classify(reflect.TypeFor[T](), format)
}

// Targets lists the registered target types in no particular order.
func Targets() []reflect.Type {
	mu.RLock()
	defer mu.RUnlock()
	seen := map[reflect.Type]struct{}{}
	var out []reflect.Type
	for k := range table {
		if _, ok := seen[k.target]; !ok {
			seen[k.target] = struct{}{}
			out = append(out, k.target)
		}
	}
	return out
}

// Flexible returns the schema accepting either a number or a string for the
// same quantity. The alternative that is not the default form is write-only.
func Flexible(c Class) *js.Schema {
	number := &js.Schema{Type: "number"}
	if !c.Signed {
		number.Minimum = js.Float(0)
	}
	str := &js.Schema{Type: "string"}
	if c.String {
		number.WriteOnly = true
	} else {
		str.WriteOnly = true
	}
	return &js.Schema{OneOf: []*js.Schema{number, str}}
}
