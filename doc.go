// Package wireschema generates JSON Schema documents for the wire
// representation chosen by serialization adapters.
//
// An adapter changes how a value is encoded without changing its Go type: a
// bool written as 0/1, a time.Duration written as float seconds or as a
// string, a set that tolerates duplicates on input. Describing the Go type
// alone yields the wrong schema, so schema generation is routed through the
// same adapter that routes encoding.
//
// Layout:
//
// - The contract, the proxy and the generator session live in the root package.
// - Host descriptions of ordinary Go types live under builtin/, adapters under
// adapter/, the duration/timestamp classifier under timespan/.
// - The runtime registry and expression parser live under catalog/, the
// invopop/jsonschema bridge under interop/, the CLI under cmd/wireschema.
//
// Typical usage:
//
//	timeout := adapter.DurationSecondsWithFrac[time.Duration](timespan.Float64, wireschema.Flexible)
//	flags := builtin.Slice(adapter.BoolFromInt(wireschema.Strict))
//
//	g := wireschema.NewGenerator()
//	doc := g.RootSchemaFor(timeout)
//	out, err := jsonschema.MarshalIndent(doc, 2)
package wireschema
