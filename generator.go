package wireschema

import (
	"strconv"

	"go.uber.org/zap"

	js "github.com/reoring/wireschema/jsonschema"
)

// Generator is one schema-generation session. It owns the definition table
// shared by every subschema requested during the session and is not safe for
// concurrent use; concurrent callers each need their own Generator.
type Generator struct {
	inline bool
	unique bool
	log    *zap.Logger

	definitions map[string]*js.Schema
	idToName    map[string]string
	nameToID    map[string]string
	pending     map[string]struct{}
	// registered holds the ids register has synthesized into definitions.
	registered map[string]struct{}
}

// Option configures a Generator.
type Option func(*Generator)

// WithInlineSubschemas inlines referenceable subschemas instead of emitting
// "$ref". A schemer that requests itself is still referenced.
func WithInlineSubschemas(inline bool) Option { return func(g *Generator) { g.inline = inline } }

// WithUniqueNames gives distinct ids that share a schema name distinct
// definition keys (Name, Name2, Name3, ...). Without it the later definition
// replaces the earlier one.
func WithUniqueNames(unique bool) Option { return func(g *Generator) { g.unique = unique } }

// WithLogger sets the logger for definition registration (debug) and name
// collisions (warn).
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGenerator returns an empty generation session.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		log:         zap.NewNop(),
		definitions: map[string]*js.Schema{},
		idToName:    map[string]string{},
		nameToID:    map[string]string{},
		pending:     map[string]struct{}{},
		registered:  map[string]struct{}{},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// SchemaFor generates the root document for t in a fresh session.
func SchemaFor[T any](t Type[T], opts ...Option) *js.Schema {
	return NewGenerator(opts...).RootSchemaFor(t)
}

// SubschemaFor returns the schema of s for embedding in another document:
// a "$ref" into the definition table when s is referenceable, the inline
// document otherwise. Once an id is registered later requests return the
// reference without calling s.JSONSchema again; this is what terminates
// generation for recursive schemers.
func (g *Generator) SubschemaFor(s Schemer) *js.Schema {
	id := s.SchemaID()
	_, pending := g.pending[id]
	if !s.IsReferenceable() || (g.inline && !pending) {
		return g.build(s, id)
	}

	name := g.nameFor(s, id)
	if _, ok := g.registered[id]; ok && pending {
		// Re-entrant request, even if a colliding id took the name meanwhile.
		return js.NewRef(name)
	}
	if _, ok := g.definitions[name]; !ok || g.nameToID[name] != id {
		g.register(s, id, name)
	}
	return js.NewRef(name)
}

// RootSchemaFor returns s as a top-level document carrying the meta-schema
// URI, a title and a copy of every definition registered so far.
func (g *Generator) RootSchemaFor(s Schemer) *js.Schema {
	doc := g.build(s, s.SchemaID())
	if doc.Title == "" {
		doc.Title = s.SchemaName()
	}
	doc.MetaSchema = js.Draft07
	if len(g.definitions) > 0 {
		doc.Definitions = js.CloneMap(g.definitions)
	}
	return doc
}

// Definitions returns a copy of the definitions registered so far keyed by
// name.
func (g *Generator) Definitions() map[string]*js.Schema { return js.CloneMap(g.definitions) }

// TakeDefinitions returns the definitions and empties the table. Names keep
// their owners, so an id requested again is redefined under its old name and
// a new id never takes a name another id already refers to.
func (g *Generator) TakeDefinitions() map[string]*js.Schema {
	defs := g.definitions
	g.definitions = map[string]*js.Schema{}
	g.registered = map[string]struct{}{}
	return defs
}

// Dereference follows "$ref" chains through the definition table.
func (g *Generator) Dereference(s *js.Schema) (*js.Schema, bool) {
	for range len(g.definitions) + 1 {
		name, ok := s.RefName()
		if !ok {
			return s, true
		}
		if s, ok = g.definitions[name]; !ok {
			return nil, false
		}
	}
	return nil, false
}

func (g *Generator) register(s Schemer, id, name string) {
	if prev, ok := g.nameToID[name]; ok && prev != id {
		g.log.Warn("schema name collision, replacing definition",
			zap.String("name", name), zap.String("previous_id", prev), zap.String("id", id))
		if _, busy := g.pending[prev]; !busy {
			delete(g.idToName, prev)
		}
	}
	g.nameToID[name] = id
	g.registered[id] = struct{}{}
	// The placeholder makes re-entrant requests for id resolve to a reference.
	g.definitions[name] = &js.Schema{}
	def := g.build(s, id)
	g.definitions[name] = def
	g.log.Debug("registered definition", zap.String("name", name), zap.String("id", id))
}

func (g *Generator) nameFor(s Schemer, id string) string {
	if name, ok := g.idToName[id]; ok {
		return name
	}
	name := s.SchemaName()
	if g.unique {
		base := name
		for i := 2; ; i++ {
			owner, used := g.nameToID[name]
			if !used || owner == id {
				break
			}
			name = base + strconv.Itoa(i)
		}
	}
	g.idToName[id] = name
	return name
}

func (g *Generator) build(s Schemer, id string) *js.Schema {
	_, seen := g.pending[id]
	if !seen {
		g.pending[id] = struct{}{}
		defer delete(g.pending, id)
	}
	doc := s.JSONSchema(g)
	if doc == nil {
		doc = &js.Schema{}
	}
	return doc
}
