// Package schematest holds helpers shared by schema tests.
package schematest

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// Normalize marshals v to JSON and decodes it back into plain maps and
// slices so documents compare without ordering or pointer effects.
func Normalize(t testing.TB, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

// JSON renders v as compact JSON without HTML escaping.
func JSON(t testing.TB, v any) string {
	t.Helper()
	b, err := json.MarshalNoEscape(v)
	require.NoError(t, err)
	return string(b)
}

// Node shares its bare type name with test types of other packages, for
// tests of definition name collisions.
type Node struct {
	Peer *Node
}
