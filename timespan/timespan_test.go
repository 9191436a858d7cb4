package timespan_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/reoring/wireschema/internal/schematest"
	"github.com/reoring/wireschema/timespan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Builtin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target reflect.Type
		format timespan.Format
		want   timespan.Class
		ok     bool
	}{
		{"duration int64", reflect.TypeFor[time.Duration](), timespan.Int64, timespan.Class{Signed: true}, true},
		{"duration float64", reflect.TypeFor[time.Duration](), timespan.Float64, timespan.Class{Signed: true}, true},
		{"duration string", reflect.TypeFor[time.Duration](), timespan.String, timespan.Class{Signed: true, String: true}, true},
		{"duration uint64", reflect.TypeFor[time.Duration](), timespan.Uint64, timespan.Class{}, false},
		{"time int64", reflect.TypeFor[time.Time](), timespan.Int64, timespan.Class{Signed: true}, true},
		{"time string", reflect.TypeFor[time.Time](), timespan.String, timespan.Class{Signed: true, String: true}, true},
		{"elapsed uint64", reflect.TypeFor[timespan.Elapsed](), timespan.Uint64, timespan.Class{}, true},
		{"elapsed float64", reflect.TypeFor[timespan.Elapsed](), timespan.Float64, timespan.Class{}, true},
		{"elapsed string", reflect.TypeFor[timespan.Elapsed](), timespan.String, timespan.Class{String: true}, true},
		{"elapsed int64", reflect.TypeFor[timespan.Elapsed](), timespan.Int64, timespan.Class{}, false},
		{"unregistered", reflect.TypeFor[int](), timespan.Int64, timespan.Class{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := timespan.Classify(tt.target, tt.format)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type ticks int64

type uptime uint64

func TestRegister(t *testing.T) {
	t.Parallel()

	require.NoError(t, timespan.Register(reflect.TypeFor[ticks](), true, timespan.Int64, timespan.String))
	c, ok := timespan.ClassifyFor[ticks](timespan.Int64)
	require.True(t, ok)
	assert.Equal(t, timespan.Class{Signed: true}, c)

	// Same class again is accepted.
	require.NoError(t, timespan.Register(reflect.TypeFor[ticks](), true, timespan.Int64))

	err := timespan.Register(reflect.TypeFor[ticks](), false, timespan.Int64, timespan.Float64)
	require.ErrorIs(t, err, timespan.ErrConflict)
	_, ok = timespan.ClassifyFor[ticks](timespan.Float64)
	assert.False(t, ok, "a failed registration adds nothing")

	require.Error(t, timespan.Register(reflect.TypeFor[uptime](), false, timespan.Format(42)))
	assert.Contains(t, timespan.Targets(), reflect.TypeFor[ticks]())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	for _, f := range []timespan.Format{timespan.Int64, timespan.Uint64, timespan.Float64, timespan.String} {
		got, ok := timespan.ParseFormat(f.String())
		require.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := timespan.ParseFormat("complex128")
	assert.False(t, ok)

	assert.Equal(t, "uint64", timespan.Uint64.Schema().SchemaName())
	assert.Equal(t, "double", timespan.Float64.Schema().SchemaName())
	assert.Panics(t, func() { timespan.Format(9).Schema() })
}

func TestFlexible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		class timespan.Class
		want  string
	}{
		{
			name:  "signed number",
			class: timespan.Class{Signed: true},
			want:  `{"oneOf":[{"type":"number"},{"type":"string","writeOnly":true}]}`,
		},
		{
			name:  "unsigned number",
			class: timespan.Class{},
			want:  `{"oneOf":[{"type":"number","minimum":0},{"type":"string","writeOnly":true}]}`,
		},
		{
			name:  "signed string",
			class: timespan.Class{Signed: true, String: true},
			want:  `{"oneOf":[{"type":"number","writeOnly":true},{"type":"string"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.JSONEq(t, tt.want, schematest.JSON(t, timespan.Flexible(tt.class)))
		})
	}
}
