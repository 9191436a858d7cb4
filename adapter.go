package wireschema

import (
	js "github.com/reoring/wireschema/jsonschema"
)

// Adapter is the contract a serialization adapter implements to describe the
// wire form it gives a value. Only SchemaName and JSONSchema are required;
// SchemaIDer and Referencer are optional hooks with defaults.
type Adapter interface {
	SchemaName() string
	JSONSchema(g *Generator) *js.Schema
}

// SchemaIDer overrides the default id (the schema name). Composite adapters
// implement it to derive ids from the ids of their parameters.
type SchemaIDer interface {
	SchemaID() string
}

// Referencer overrides the default reference policy (referenceable).
// Primitive-shaped adapters return false.
type Referencer interface {
	IsReferenceable() bool
}

// As binds adapter a to the value type T it re-encodes and returns the proxy
// the Generator treats as an ordinary Schemer.
func As[T any](a Adapter) Type[T] {
	if s, ok := a.(Schemer); ok {
		return Type[T]{s: s}
	}
	return Type[T]{s: proxy{a: a}}
}

// proxy applies the contract defaults for adapters that omit the optional hooks.
type proxy struct{ a Adapter }

func (p proxy) SchemaName() string { return p.a.SchemaName() }

func (p proxy) SchemaID() string {
	if x, ok := p.a.(SchemaIDer); ok {
		return x.SchemaID()
	}
	return p.a.SchemaName()
}

func (p proxy) IsReferenceable() bool {
	if r, ok := p.a.(Referencer); ok {
		return r.IsReferenceable()
	}
	return true
}

func (p proxy) JSONSchema(g *Generator) *js.Schema { return p.a.JSONSchema(g) }

// Forward returns an adapter whose schema is identical to target's: name, id,
// reference policy and document all delegate to it.
func Forward(target Schemer) Adapter { return forward{target: target} }

type forward struct{ target Schemer }

func (f forward) SchemaName() string                 { return f.target.SchemaName() }
func (f forward) SchemaID() string                   { return f.target.SchemaID() }
func (f forward) IsReferenceable() bool              { return f.target.IsReferenceable() }
func (f forward) JSONSchema(g *Generator) *js.Schema { return f.target.JSONSchema(g) }
