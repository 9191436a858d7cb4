package catalog

import (
	"reflect"
	"sync"
	"time"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/adapter"
	"github.com/reoring/wireschema/builtin"
	"github.com/reoring/wireschema/timespan"
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		panic(err)
	}
	if err := RegisterAdapters(r); err != nil {
		panic(err)
	}
	return r
})

// Default returns the shared registry holding every builtin type and
// adapter. Registering more entries on it is allowed.
func Default() *Registry { return defaultRegistry() }

// Parse resolves expr with the Default registry.
func Parse(expr string) (wireschema.Type[any], error) { return Default().Parse(expr) }

func leaf(name, usage string, s wireschema.Schemer) Entry {
	return Entry{Name: name, Usage: usage, Build: func(*Call) (wireschema.Schemer, error) { return s, nil }}
}

func unary(name, usage string, build func(inner wireschema.Type[any]) wireschema.Schemer) Entry {
	return Entry{Name: name, MinArgs: 1, MaxArgs: 1, Usage: usage, Build: func(c *Call) (wireschema.Schemer, error) {
		return build(c.Schema(0)), nil
	}}
}

// mapEntry takes the key schema for symmetry with the typed API; JSON object
// keys are strings whatever it is.
func mapEntry(name string, build func(val wireschema.Type[any]) wireschema.Schemer) Entry {
	return Entry{Name: name, MinArgs: 2, MaxArgs: 2, Usage: name + "<K, V>", Build: func(c *Call) (wireschema.Schemer, error) {
		c.Schema(0)
		return build(c.Schema(1)), nil
	}}
}

// RegisterBuiltins adds the host types of package builtin.
func RegisterBuiltins(r *Registry) error {
	entries := []Entry{
		leaf("string", "string", builtin.String()),
		leaf("bool", "bool", builtin.Bool()),
		leaf("int", "int", builtin.Int()),
		leaf("int8", "int8", builtin.Int8()),
		leaf("int16", "int16", builtin.Int16()),
		leaf("int32", "int32", builtin.Int32()),
		leaf("int64", "int64", builtin.Int64()),
		leaf("uint", "uint", builtin.Uint()),
		leaf("uint8", "uint8", builtin.Uint8()),
		leaf("byte", "byte", builtin.Uint8()),
		leaf("uint16", "uint16", builtin.Uint16()),
		leaf("uint32", "uint32", builtin.Uint32()),
		leaf("uint64", "uint64", builtin.Uint64()),
		leaf("float32", "float32", builtin.Float32()),
		leaf("float64", "float64", builtin.Float64()),
		leaf("bytes", "bytes (base64 string)", builtin.Bytes()),
		leaf("bytearray", "bytearray (array of uint8)", builtin.ByteArray()),
		leaf("unit", "unit", builtin.Unit()),
		leaf("any", "any", builtin.Any()),
		leaf("time.Time", "time.Time", builtin.Time()),
		leaf("time.Duration", "time.Duration", builtin.Duration()),
		unary("Slice", "Slice<E>", func(e wireschema.Type[any]) wireschema.Schemer { return builtin.Slice(e) }),
		unary("Option", "Option<E>", func(e wireschema.Type[any]) wireschema.Schemer { return builtin.Option(e) }),
		unary("Pointer", "Pointer<E>", func(e wireschema.Type[any]) wireschema.Schemer { return builtin.Pointer(e) }),
		unary("Set", "Set<E>", func(e wireschema.Type[any]) wireschema.Schemer { return builtin.Set(e) }),
		mapEntry("Map", func(v wireschema.Type[any]) wireschema.Schemer { return builtin.Map[string](v) }),
		{Name: "Tuple", MaxArgs: -1, Usage: "Tuple<T0, T1, ...>", Build: func(c *Call) (wireschema.Schemer, error) {
			return builtin.Tuple(c.Schemas(0)...), nil
		}},
	}
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// timespanAdapters lists the duration and timestamp adapters. Their schema
// does not depend on the precision in the name.
var timespanAdapters = []string{
	"DurationSeconds", "DurationMilliSeconds", "DurationMicroSeconds", "DurationNanoSeconds",
	"DurationSecondsWithFrac", "DurationMilliSecondsWithFrac", "DurationMicroSecondsWithFrac", "DurationNanoSecondsWithFrac",
	"TimestampSeconds", "TimestampMilliSeconds", "TimestampMicroSeconds", "TimestampNanoSeconds",
	"TimestampSecondsWithFrac", "TimestampMilliSecondsWithFrac", "TimestampMicroSecondsWithFrac", "TimestampNanoSecondsWithFrac",
}

// RegisterAdapters adds every adapter of package adapter and the timespan
// targets time.Duration, time.Time and timespan.Elapsed.
func RegisterAdapters(r *Registry) error {
	targets := map[string]reflect.Type{
		"time.Duration":    reflect.TypeFor[time.Duration](),
		"time.Time":        reflect.TypeFor[time.Time](),
		"timespan.Elapsed": reflect.TypeFor[timespan.Elapsed](),
	}
	for name, t := range targets {
		if err := r.RegisterTarget(name, t); err != nil {
			return err
		}
	}

	entries := []Entry{
		unary("Same", "Same<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.Same(t) }),
		leaf("DisplayFromStr", "DisplayFromStr", adapter.DisplayFromStr[any]()),
		unary("DefaultOnError", "DefaultOnError<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.DefaultOnError(t) }),
		unary("DefaultOnNull", "DefaultOnNull<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.DefaultOnNull(t) }),
		unary("FromInto", "FromInto<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.FromInto[any](t) }),
		unary("FromIntoRef", "FromIntoRef<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.FromIntoRef[any](t) }),
		unary("TryFromInto", "TryFromInto<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.TryFromInto[any](t) }),
		unary("TryFromIntoRef", "TryFromIntoRef<T>", func(t wireschema.Type[any]) wireschema.Schemer { return adapter.TryFromIntoRef[any](t) }),
		unary("VecSkipError", "VecSkipError<E>", func(e wireschema.Type[any]) wireschema.Schemer { return adapter.VecSkipError(e) }),
		unary("SetPreventDuplicates", "SetPreventDuplicates<S>", func(s wireschema.Type[any]) wireschema.Schemer { return adapter.SetPreventDuplicates(s) }),
		unary("SetLastValueWins", "SetLastValueWins<S>", func(s wireschema.Type[any]) wireschema.Schemer { return adapter.SetLastValueWins(s) }),
		mapEntry("MapFirstKeyWins", func(v wireschema.Type[any]) wireschema.Schemer { return adapter.MapFirstKeyWins[string](v) }),
		mapEntry("MapPreventDuplicates", func(v wireschema.Type[any]) wireschema.Schemer { return adapter.MapPreventDuplicates[string](v) }),
		mapEntry("SeqAsMap", func(v wireschema.Type[any]) wireschema.Schemer { return adapter.SeqAsMap[string](v) }),
		leaf("Bytes", "Bytes", adapter.Bytes[any]()),
		leaf("BytesOrString", "BytesOrString", adapter.BytesOrString()),
		{Name: "BoolFromInt", MaxArgs: 1, Usage: "BoolFromInt<Strict|Flexible>", Build: func(c *Call) (wireschema.Schemer, error) {
			return adapter.BoolFromInt(c.Strictness(0)), nil
		}},
		{Name: "Array", MinArgs: 2, MaxArgs: 2, Usage: "Array<E, N>", Build: func(c *Call) (wireschema.Schemer, error) {
			return adapter.ArrayN(c.Number(1), c.Schema(0)), nil
		}},
		{Name: "StringWithSeparator", MinArgs: 1, MaxArgs: 2, Usage: "StringWithSeparator<SpaceSeparator|CommaSeparator[, T]>", Build: buildStringWithSeparator},
	}
	for _, name := range timespanAdapters {
		entries = append(entries, Entry{
			Name:    name,
			MinArgs: 2,
			MaxArgs: 3,
			Usage:   name + "<Target, int64|uint64|float64|string[, Strict|Flexible]>",
			Build:   buildTimespan,
		})
	}
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

func buildStringWithSeparator(c *Call) (wireschema.Schemer, error) {
	var sep adapter.Separator
	switch name := c.Keyword(0); name {
	case "SpaceSeparator":
		sep = adapter.SpaceSeparator
	case "CommaSeparator":
		sep = adapter.CommaSeparator
	case "":
	default:
		c.invalid(0, "SpaceSeparator or CommaSeparator", "unknown separator %s", name)
	}
	if c.Len() > 1 {
		c.Schema(1)
	}
	return adapter.StringWithSeparator[any](sep), nil
}

func buildTimespan(c *Call) (wireschema.Schemer, error) {
	target := c.Target(0)
	name := c.Keyword(1)
	strictness := c.Strictness(2)
	format, ok := timespan.ParseFormat(name)
	if name != "" && !ok {
		c.invalid(1, "int64, uint64, float64 or string", "unknown format %s", name)
	}
	if target == nil || !ok {
		return nil, nil
	}
	return adapter.Timespan(target, format, strictness)
}
