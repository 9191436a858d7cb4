package adapter

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reoring/wireschema"
	js "github.com/reoring/wireschema/jsonschema"
	"github.com/reoring/wireschema/timespan"
)

// ErrUnsupportedTimespan is returned for a (target, format) pair no timespan
// adapter supports.
var ErrUnsupportedTimespan = errors.New("adapter: unsupported timespan")

// Timespan returns the schema of target written in format. Strict adapters
// forward to the format's own schema; Flexible ones accept the number or the
// string form of the same quantity.
func Timespan(target reflect.Type, format timespan.Format, s wireschema.Strictness) (wireschema.Schemer, error) {
	c, ok := timespan.Classify(target, format)
	if !ok {
		return nil, fmt.Errorf("%w: %s as %s", ErrUnsupportedTimespan, target, format)
	}
	if s == wireschema.Strict {
		return wireschema.As[any](wireschema.Forward(format.Schema())), nil
	}
	return flexibleTimespan{class: c}, nil
}

// TimespanFor is Timespan for a static target type.
func TimespanFor[T any](format timespan.Format, s wireschema.Strictness) (wireschema.Type[T], error) {
	sc, err := Timespan(reflect.TypeFor[T](), format, s)
	if err != nil {
		return wireschema.Type[T]{}, err
	}
	return wireschema.Describe[T](sc), nil
}

func mustTimespan[T any](format timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	t, err := TimespanFor[T](format, s)
	if err != nil {
		panic(err)
	}
	return t
}

type flexibleTimespan struct{ class timespan.Class }

func (f flexibleTimespan) SchemaName() string {
	if f.class.String {
		return "FlexibleStringTimespan"
	}
	return "FlexibleTimespan"
}

// SchemaID also encodes signedness: the unsigned shape carries a minimum.
func (f flexibleTimespan) SchemaID() string {
	sign := "signed"
	if !f.class.Signed {
		sign = "unsigned"
	}
	return "adapter." + f.SchemaName() + "<" + sign + ">"
}

func (flexibleTimespan) IsReferenceable() bool { return false }

func (f flexibleTimespan) JSONSchema(*wireschema.Generator) *js.Schema {
	return timespan.Flexible(f.class)
}

// The precision of a timespan adapter changes the unit of the written number,
// not its schema. Each constructor panics if T cannot be written in format;
// use TimespanFor to get an error instead.

// DurationSeconds writes a span in seconds, truncated to a whole number.
func DurationSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationMilliSeconds writes a span in milliseconds, truncated to a whole number.
func DurationMilliSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationMicroSeconds writes a span in microseconds, truncated to a whole number.
func DurationMicroSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationNanoSeconds writes a span in nanoseconds, truncated to a whole number.
func DurationNanoSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationSecondsWithFrac writes a span in seconds with a fractional part.
func DurationSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationMilliSecondsWithFrac writes a span in milliseconds with a fractional part.
func DurationMilliSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationMicroSecondsWithFrac writes a span in microseconds with a fractional part.
func DurationMicroSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// DurationNanoSecondsWithFrac writes a span in nanoseconds with a fractional part.
func DurationNanoSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampSeconds writes an instant as the span since the Unix epoch in seconds, truncated to a whole number.
func TimestampSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampMilliSeconds writes an instant as the span since the Unix epoch in milliseconds, truncated to a whole number.
func TimestampMilliSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampMicroSeconds writes an instant as the span since the Unix epoch in microseconds, truncated to a whole number.
func TimestampMicroSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampNanoSeconds writes an instant as the span since the Unix epoch in nanoseconds, truncated to a whole number.
func TimestampNanoSeconds[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampSecondsWithFrac writes an instant as the span since the Unix epoch in seconds with a fractional part.
func TimestampSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampMilliSecondsWithFrac writes an instant as the span since the Unix epoch in milliseconds with a fractional part.
func TimestampMilliSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampMicroSecondsWithFrac writes an instant as the span since the Unix epoch in microseconds with a fractional part.
func TimestampMicroSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}

// TimestampNanoSecondsWithFrac writes an instant as the span since the Unix epoch in nanoseconds with a fractional part.
func TimestampNanoSecondsWithFrac[T any](f timespan.Format, s wireschema.Strictness) wireschema.Type[T] {
	return mustTimespan[T](f, s)
}
