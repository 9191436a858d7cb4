package builtin_test

import (
	"testing"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/builtin"
	"github.com/reoring/wireschema/internal/schematest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema wireschema.Schemer
		title  string
		want   string
	}{
		{"string", builtin.String(), "String", `{"type":"string"}`},
		{"bool", builtin.Bool(), "Boolean", `{"type":"boolean"}`},
		{"int64", builtin.Int64(), "int64", `{"type":"integer","format":"int64"}`},
		{"uint8", builtin.Uint8(), "uint8", `{"type":"integer","format":"uint8","minimum":0}`},
		{"uint64", builtin.Uint64(), "uint64", `{"type":"integer","format":"uint64","minimum":0}`},
		{"float32", builtin.Float32(), "float", `{"type":"number","format":"float"}`},
		{"float64", builtin.Float64(), "double", `{"type":"number","format":"double"}`},
		{"bytes", builtin.Bytes(), "Base64Bytes", `{"type":"string","contentEncoding":"base64"}`},
		{"unit", builtin.Unit(), "null", `{"type":"null"}`},
		{"time", builtin.Time(), "DateTime", `{"type":"string","format":"date-time"}`},
		{"duration", builtin.Duration(), "Duration", `{"type":"integer","format":"int64"}`},
		{"any", builtin.Any(), "AnyValue", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.title, tt.schema.SchemaName())
			assert.False(t, tt.schema.IsReferenceable())

			g := wireschema.NewGenerator()
			got := g.SubschemaFor(tt.schema)
			assert.JSONEq(t, tt.want, schematest.JSON(t, got))
			assert.Empty(t, g.Definitions())
		})
	}
}

func TestContainers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema wireschema.Schemer
		title  string
		id     string
		want   string
	}{
		{
			name:   "slice",
			schema: builtin.Slice(builtin.String()),
			title:  "Array_of_String",
			id:     "[String]",
			want:   `{"type":"array","items":{"type":"string"}}`,
		},
		{
			name:   "byte array",
			schema: builtin.ByteArray(),
			title:  "Array_of_uint8",
			id:     "[uint8]",
			want:   `{"type":"array","items":{"type":"integer","format":"uint8","minimum":0}}`,
		},
		{
			name:   "map",
			schema: builtin.Map[string](builtin.Bool()),
			title:  "Map_of_Boolean",
			id:     "Map<Boolean>",
			want:   `{"type":"object","additionalProperties":{"type":"boolean"}}`,
		},
		{
			name:   "set",
			schema: builtin.Set(builtin.Int64()),
			title:  "Set_of_int64",
			id:     "Set<int64>",
			want:   `{"type":"array","items":{"type":"integer","format":"int64"},"uniqueItems":true}`,
		},
		{
			name:   "option",
			schema: builtin.Option(builtin.String()),
			title:  "Nullable_String",
			id:     "Option<String>",
			want:   `{"anyOf":[{"type":"string"},{"type":"null"}]}`,
		},
		{
			name:   "pointer",
			schema: builtin.Pointer(builtin.Float64()),
			title:  "double",
			id:     "double",
			want:   `{"type":"number","format":"double"}`,
		},
		{
			name:   "tuple",
			schema: builtin.Tuple(builtin.String(), builtin.Bool()),
			title:  "Tuple_of_String_and_Boolean",
			id:     "(String,Boolean)",
			want:   `{"type":"array","items":[{"type":"string"},{"type":"boolean"}],"minItems":2,"maxItems":2}`,
		},
		{
			name:   "empty tuple",
			schema: builtin.Tuple(),
			title:  "null",
			id:     "null",
			want:   `{"type":"null"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.title, tt.schema.SchemaName())
			assert.Equal(t, tt.id, tt.schema.SchemaID())
			assert.False(t, tt.schema.IsReferenceable())

			got := wireschema.NewGenerator().SubschemaFor(tt.schema)
			assert.JSONEq(t, tt.want, schematest.JSON(t, got))
		})
	}
}

type node struct {
	Value    string
	Children []node
}

func nodeSchema() wireschema.Type[node] {
	return builtin.Object[node](func() []builtin.Field {
		return []builtin.Field{
			{Name: "value", Schema: builtin.String(), Required: true},
			{Name: "children", Schema: builtin.Slice(nodeSchema())},
		}
	})
}

func TestObject_Recursive(t *testing.T) {
	t.Parallel()

	s := nodeSchema()
	assert.Equal(t, "node", s.SchemaName())
	assert.Equal(t, "github.com/reoring/wireschema/builtin_test.node", s.SchemaID())
	assert.True(t, s.IsReferenceable())

	g := wireschema.NewGenerator()
	ref := g.SubschemaFor(s)
	assert.JSONEq(t, `{"$ref":"#/definitions/node"}`, schematest.JSON(t, ref))

	defs := g.Definitions()
	require.Contains(t, defs, "node")
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"value": {"type": "string"},
			"children": {"type": "array", "items": {"$ref": "#/definitions/node"}}
		},
		"required": ["value"]
	}`, schematest.JSON(t, defs["node"]))

	root := wireschema.SchemaFor(s)
	assert.Equal(t, "node", root.Title)
	require.Contains(t, root.Definitions, "node")
	assert.Equal(t, `{"$ref":"#/definitions/node"}`, schematest.JSON(t, root.Properties["children"].Items))
}

// Node has the same bare name as schematest.Node; the two refer to each other.
type Node struct {
	Peer *schematest.Node
}

func localNode() wireschema.Type[Node] {
	return builtin.Object[Node](func() []builtin.Field {
		return []builtin.Field{{Name: "peer", Schema: builtin.Option(remoteNode())}}
	})
}

func remoteNode() wireschema.Type[schematest.Node] {
	return builtin.Object[schematest.Node](func() []builtin.Field {
		return []builtin.Field{{Name: "peer", Schema: builtin.Option(localNode())}}
	})
}

func TestObject_SameNameAcrossPackages(t *testing.T) {
	t.Parallel()

	require.Equal(t, localNode().SchemaName(), remoteNode().SchemaName())
	require.NotEqual(t, localNode().SchemaID(), remoteNode().SchemaID())

	g := wireschema.NewGenerator()
	assert.Equal(t, `{"$ref":"#/definitions/Node"}`, schematest.JSON(t, g.SubschemaFor(localNode())))
	assert.Len(t, g.Definitions(), 1)

	g = wireschema.NewGenerator(wireschema.WithUniqueNames(true))
	root := g.RootSchemaFor(builtin.Slice(localNode()))
	require.Len(t, root.Definitions, 2)
	assert.JSONEq(t, `{"$ref":"#/definitions/Node"}`, schematest.JSON(t, root.Items))
	assert.JSONEq(t, `{"anyOf":[{"$ref":"#/definitions/Node2"},{"type":"null"}]}`,
		schematest.JSON(t, root.Definitions["Node"].Properties["peer"]))
	assert.JSONEq(t, `{"anyOf":[{"$ref":"#/definitions/Node"},{"type":"null"}]}`,
		schematest.JSON(t, root.Definitions["Node2"].Properties["peer"]))
}
