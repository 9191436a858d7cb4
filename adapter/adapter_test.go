package adapter_test

import (
	"math"
	"testing"
	"time"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/adapter"
	"github.com/reoring/wireschema/builtin"
	"github.com/reoring/wireschema/internal/schematest"
	"github.com/reoring/wireschema/timespan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

type point struct{ X, Y int64 }

func pointSchema() wireschema.Type[point] {
	return builtin.Object[point](func() []builtin.Field {
		return []builtin.Field{
			{Name: "x", Schema: builtin.Int64(), Required: true},
			{Name: "y", Schema: builtin.Int64(), Required: true},
		}
	})
}

func TestForwarding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		got    wireschema.Schemer
		target wireschema.Schemer
	}{
		{"same", adapter.Same(builtin.Int32()), builtin.Int32()},
		{"same referenceable", adapter.Same(pointSchema()), pointSchema()},
		{"display from str", adapter.DisplayFromStr[celsius](), builtin.String()},
		{"slice", adapter.Slice(adapter.BoolFromInt(wireschema.Strict)), builtin.Slice(adapter.BoolFromInt(wireschema.Strict))},
		{"pointer", adapter.Pointer(pointSchema()), pointSchema()},
		{"option", adapter.Option(builtin.String()), builtin.Option(builtin.String())},
		{"map", adapter.Map[string](builtin.Bool()), builtin.Map[string](builtin.Bool())},
		{"set", adapter.Set(builtin.Int64()), builtin.Set(builtin.Int64())},
		{"tuple", adapter.Tuple(builtin.String(), adapter.BytesOrString()), builtin.Tuple(builtin.String(), adapter.BytesOrString())},
		{"unit", adapter.Unit(), builtin.Unit()},
		{"default on error", adapter.DefaultOnError(builtin.Uint16()), builtin.Uint16()},
		{"default on null", adapter.DefaultOnNull(builtin.String()), builtin.Option(builtin.String())},
		{"from into", adapter.FromInto[celsius](builtin.Float64()), builtin.Float64()},
		{"from into ref", adapter.FromIntoRef[celsius](builtin.Float64()), builtin.Float64()},
		{"try from into", adapter.TryFromInto[celsius](builtin.String()), builtin.String()},
		{"try from into ref", adapter.TryFromIntoRef[celsius](builtin.String()), builtin.String()},
		{"bytes", adapter.Bytes[string](), builtin.ByteArray()},
		{"vec skip error", adapter.VecSkipError(builtin.Int64()), builtin.Slice(builtin.Int64())},
		{"string with separator", adapter.StringWithSeparator[[]string](adapter.CommaSeparator), builtin.String()},
		{"map first key wins", adapter.MapFirstKeyWins[string](builtin.Int64()), builtin.Map[string](builtin.Int64())},
		{"map prevent duplicates", adapter.MapPreventDuplicates[string](builtin.Int64()), builtin.Map[string](builtin.Int64())},
		{"seq as map", adapter.SeqAsMap[string](builtin.Bool()), builtin.Map[string](builtin.Bool())},
		{"seq as array map", adapter.SeqAsMapAs[[2]adapter.Pair[string, bool], string](builtin.Bool()), builtin.Map[string](builtin.Bool())},
		{"set prevent duplicates", adapter.SetPreventDuplicates(builtin.Set(builtin.String())), builtin.Set(builtin.String())},
		{"strict timespan", adapter.DurationSeconds[time.Duration](timespan.Int64, wireschema.Strict), builtin.Int64()},
		{"strict string timestamp", adapter.TimestampSecondsWithFrac[time.Time](timespan.String, wireschema.Strict), builtin.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.target.SchemaName(), tt.got.SchemaName())
			assert.Equal(t, tt.target.SchemaID(), tt.got.SchemaID())
			assert.Equal(t, tt.target.IsReferenceable(), tt.got.IsReferenceable())

			want := tt.target.JSONSchema(wireschema.NewGenerator())
			got := tt.got.JSONSchema(wireschema.NewGenerator())
			assert.Equal(t, schematest.Normalize(t, want), schematest.Normalize(t, got))
		})
	}
}

func TestBoolFromInt(t *testing.T) {
	t.Parallel()

	strict := adapter.BoolFromInt(wireschema.Strict)
	assert.Equal(t, "BoolFromInt<Strict>", strict.SchemaName())
	assert.False(t, strict.IsReferenceable())
	doc := wireschema.NewGenerator().SubschemaFor(strict)
	assert.Equal(t, "integer", doc.Type)
	require.NotNil(t, doc.Minimum)
	require.NotNil(t, doc.Maximum)
	assert.InDelta(t, 0, *doc.Minimum, 0)
	assert.InDelta(t, 1, *doc.Maximum, 0)

	flexible := adapter.BoolFromInt(wireschema.Flexible)
	assert.Equal(t, "BoolFromInt<Flexible>", flexible.SchemaName())
	assert.NotEqual(t, strict.SchemaID(), flexible.SchemaID())
	assert.False(t, flexible.IsReferenceable())
	assert.JSONEq(t, `{"type":"integer"}`, schematest.JSON(t, wireschema.NewGenerator().SubschemaFor(flexible)))
}

func TestBytesOrString(t *testing.T) {
	t.Parallel()

	s := adapter.BytesOrString()
	assert.False(t, s.IsReferenceable())

	g := wireschema.NewGenerator()
	doc := g.SubschemaFor(s)
	require.Len(t, doc.AnyOf, 2)

	var writeOnly, plain int
	for _, alt := range doc.AnyOf {
		if alt.WriteOnly {
			writeOnly++
			assert.Equal(t, "string", alt.Type)
			continue
		}
		plain++
		want := wireschema.NewGenerator().SubschemaFor(builtin.ByteArray())
		assert.Equal(t, schematest.Normalize(t, want), schematest.Normalize(t, alt))
	}
	assert.Equal(t, 1, writeOnly)
	assert.Equal(t, 1, plain)
}

func TestArray(t *testing.T) {
	t.Parallel()

	t.Run("bounded", func(t *testing.T) {
		t.Parallel()

		s := adapter.Array[[4]bool](adapter.BoolFromInt(wireschema.Flexible))
		assert.Equal(t, "[BoolFromInt<Flexible>; 4]", s.SchemaName())
		assert.Equal(t, "[adapter.BoolFromInt<Flexible>; 4]", s.SchemaID())
		assert.False(t, s.IsReferenceable())
		assert.JSONEq(t,
			`{"type":"array","items":{"type":"integer"},"minItems":4,"maxItems":4}`,
			schematest.JSON(t, wireschema.NewGenerator().SubschemaFor(s)))
	})

	t.Run("max length", func(t *testing.T) {
		t.Parallel()

		doc := wireschema.NewGenerator().SubschemaFor(adapter.ArrayN(math.MaxUint32, builtin.Bool()))
		require.NotNil(t, doc.MinItems)
		require.NotNil(t, doc.MaxItems)
		assert.Equal(t, uint32(math.MaxUint32), *doc.MinItems)
		assert.Equal(t, uint32(math.MaxUint32), *doc.MaxItems)
	})

	t.Run("overflow", func(t *testing.T) {
		t.Parallel()

		doc := wireschema.NewGenerator().SubschemaFor(adapter.ArrayN(math.MaxUint32+1, builtin.Bool()))
		require.NotNil(t, doc.MinItems)
		assert.Equal(t, uint32(math.MaxUint32), *doc.MinItems)
		assert.Nil(t, doc.MaxItems)
	})

	t.Run("non-array type", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { adapter.Array[[]bool](builtin.Bool()) })
		assert.Panics(t, func() { adapter.Array[[2]string](builtin.Bool()) })
	})
}

func TestSetLastValueWins(t *testing.T) {
	t.Parallel()

	set := builtin.Set(builtin.Int64())
	s := adapter.SetLastValueWins(set)
	assert.Equal(t, "SetLastValueWins<Set_of_int64>", s.SchemaName())
	assert.Equal(t, "adapter.SetLastValueWins<Set<int64>>", s.SchemaID())
	assert.False(t, s.IsReferenceable())

	plain := set.JSONSchema(wireschema.NewGenerator())
	require.True(t, plain.UniqueItems)

	got := wireschema.NewGenerator().SubschemaFor(s)
	assert.False(t, got.UniqueItems)
	assert.JSONEq(t, `{"type":"array","items":{"type":"integer","format":"int64"}}`, schematest.JSON(t, got))

	// The inner schema is not modified.
	assert.True(t, set.JSONSchema(wireschema.NewGenerator()).UniqueItems)
}

func TestFlexibleTimespan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schema   wireschema.Schemer
		title    string
		unsigned bool
		numberWO bool
	}{
		{
			name:     "unsigned float seconds",
			schema:   adapter.DurationSecondsWithFrac[timespan.Elapsed](timespan.Float64, wireschema.Flexible),
			title:    "FlexibleTimespan",
			unsigned: true,
		},
		{
			name:     "unsigned integer millis",
			schema:   adapter.DurationMilliSeconds[timespan.Elapsed](timespan.Uint64, wireschema.Flexible),
			title:    "FlexibleTimespan",
			unsigned: true,
		},
		{
			name:   "signed duration",
			schema: adapter.DurationSeconds[time.Duration](timespan.Int64, wireschema.Flexible),
			title:  "FlexibleTimespan",
		},
		{
			name:     "string timestamp",
			schema:   adapter.TimestampSecondsWithFrac[time.Time](timespan.String, wireschema.Flexible),
			title:    "FlexibleStringTimespan",
			numberWO: true,
		},
		{
			name:     "unsigned string",
			schema:   adapter.DurationNanoSecondsWithFrac[timespan.Elapsed](timespan.String, wireschema.Flexible),
			title:    "FlexibleStringTimespan",
			unsigned: true,
			numberWO: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.title, tt.schema.SchemaName())
			assert.False(t, tt.schema.IsReferenceable())

			doc := wireschema.NewGenerator().SubschemaFor(tt.schema)
			require.Len(t, doc.OneOf, 2)
			number, str := doc.OneOf[0], doc.OneOf[1]
			assert.Equal(t, "number", number.Type)
			assert.Equal(t, "string", str.Type)
			if tt.unsigned {
				require.NotNil(t, number.Minimum)
				assert.InDelta(t, 0, *number.Minimum, 0)
			} else {
				assert.Nil(t, number.Minimum)
			}
			assert.Equal(t, tt.numberWO, number.WriteOnly)
			assert.NotEqual(t, number.WriteOnly, str.WriteOnly)
		})
	}
}

func TestFlexibleTimespan_IDs(t *testing.T) {
	t.Parallel()

	signed := adapter.DurationSecondsWithFrac[time.Duration](timespan.Float64, wireschema.Flexible)
	unsigned := adapter.DurationSecondsWithFrac[timespan.Elapsed](timespan.Float64, wireschema.Flexible)
	assert.Equal(t, signed.SchemaName(), unsigned.SchemaName())
	assert.NotEqual(t, signed.SchemaID(), unsigned.SchemaID())

	// Precision does not change the shape.
	millis := adapter.DurationMilliSecondsWithFrac[time.Duration](timespan.Float64, wireschema.Flexible)
	assert.Equal(t, signed.SchemaID(), millis.SchemaID())
	assert.Equal(t, signed.SchemaID(), signed.SchemaID())
}

func TestTimespan_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := adapter.TimespanFor[time.Duration](timespan.Uint64, wireschema.Strict)
	require.ErrorIs(t, err, adapter.ErrUnsupportedTimespan)

	_, err = adapter.TimespanFor[string](timespan.Int64, wireschema.Flexible)
	require.ErrorIs(t, err, adapter.ErrUnsupportedTimespan)

	assert.Panics(t, func() {
		adapter.TimestampSeconds[timespan.Elapsed](timespan.Int64, wireschema.Strict)
	})
}
