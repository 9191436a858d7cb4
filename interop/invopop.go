// Package interop embeds adapter schemas in documents produced by
// github.com/invopop/jsonschema.
//
// invopop reflects Go structs but only knows the default wire form of each
// field type. A Bridge binds Go types to wireschema descriptions and plugs
// them in through Reflector.Mapper; the definitions they need are attached to
// the reflected root afterwards.
package interop

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/reoring/wireschema"
	js "github.com/reoring/wireschema/jsonschema"
)

// DefsPath prefixes references in invopop documents.
const DefsPath = "#/$defs/"

// Convert translates a draft-07 document into an invopop schema. References
// into "#/definitions/" are rewritten to "#/$defs/" and tuple items become
// prefixItems.
func Convert(s *js.Schema) *jsonschema.Schema {
	if s == nil {
		return nil
	}
	out := &jsonschema.Schema{
		Version:         s.MetaSchema,
		Ref:             rewriteRef(s.Ref),
		Title:           s.Title,
		Description:     s.Description,
		Default:         s.Default,
		ReadOnly:        s.ReadOnly,
		WriteOnly:       s.WriteOnly,
		Type:            s.Type,
		Format:          s.Format,
		ContentEncoding: s.ContentEncoding,
		Minimum:         number(s.Minimum),
		Maximum:         number(s.Maximum),
		Required:        slices.Clone(s.Required),
		Items:           Convert(s.Items),
		PrefixItems:     convertList(s.TupleItems),
		MinItems:        length(s.MinItems),
		MaxItems:        length(s.MaxItems),
		UniqueItems:     s.UniqueItems,
		AnyOf:           convertList(s.AnyOf),
		OneOf:           convertList(s.OneOf),
	}
	if len(s.Properties) > 0 {
		out.Properties = orderedmap.New[string, *jsonschema.Schema]()
		for _, name := range slices.Sorted(maps.Keys(s.Properties)) {
			out.Properties.Set(name, Convert(s.Properties[name]))
		}
	}
	switch ap := s.AdditionalProperties.(type) {
	case bool:
		if ap {
			out.AdditionalProperties = jsonschema.TrueSchema
		} else {
			out.AdditionalProperties = jsonschema.FalseSchema
		}
	case *js.Schema:
		out.AdditionalProperties = Convert(ap)
	}
	if len(s.Definitions) > 0 {
		out.Definitions = jsonschema.Definitions{}
		for name, def := range s.Definitions {
			out.Definitions[name] = Convert(def)
		}
	}
	return out
}

func rewriteRef(ref string) string {
	if name, ok := strings.CutPrefix(ref, js.DefinitionsPath); ok {
		return DefsPath + name
	}
	return ref
}

func convertList(in []*js.Schema) []*jsonschema.Schema {
	if in == nil {
		return nil
	}
	out := make([]*jsonschema.Schema, len(in))
	for i, s := range in {
		out[i] = Convert(s)
	}
	return out
}

func number(p *float64) json.Number {
	if p == nil {
		return ""
	}
	return json.Number(strconv.FormatFloat(*p, 'f', -1, 64))
}

func length(p *uint32) *uint64 {
	if p == nil {
		return nil
	}
	v := uint64(*p)
	return &v
}

// Bridge maps bound Go types to their wireschema descriptions while an
// invopop Reflector runs. One Generator backs all lookups so shared
// definitions are emitted once. A Bridge is safe for concurrent use, but
// definitions from every reflection accumulate until Attach.
type Bridge struct {
	mu    sync.Mutex
	log   *zap.Logger
	gen   *wireschema.Generator
	types map[reflect.Type]wireschema.Schemer
}

// NewBridge returns a Bridge whose Generator uses opts. A nil logger is
// replaced by a no-op logger.
func NewBridge(log *zap.Logger, opts ...wireschema.Option) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	opts = append([]wireschema.Option{wireschema.WithLogger(log)}, opts...)
	return &Bridge{log: log, gen: wireschema.NewGenerator(opts...), types: map[reflect.Type]wireschema.Schemer{}}
}

// Bind describes every value of type T with t.
func Bind[T any](b *Bridge, t wireschema.Type[T]) {
	b.BindType(reflect.TypeFor[T](), t)
}

// BindType describes every value of rt with s.
func (b *Bridge) BindType(rt reflect.Type, s wireschema.Schemer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types[rt] = s
}

// Mapper returns a Reflector.Mapper for the bound types. Unbound types fall
// through to next, which may be nil.
func (b *Bridge) Mapper(next func(reflect.Type) *jsonschema.Schema) func(reflect.Type) *jsonschema.Schema {
	return func(rt reflect.Type) *jsonschema.Schema {
		b.mu.Lock()
		s, ok := b.types[rt]
		var doc *js.Schema
		if ok {
			doc = b.gen.SubschemaFor(s)
		}
		b.mu.Unlock()
		if ok {
			return Convert(doc)
		}
		if next != nil {
			return next(rt)
		}
		return nil
	}
}

// Attach copies the definitions the bound types needed into root. A
// definition root already has is kept and the clash is logged.
func (b *Bridge) Attach(root *jsonschema.Schema) {
	b.mu.Lock()
	defs := b.gen.Definitions()
	b.mu.Unlock()
	if len(defs) == 0 {
		return
	}
	if root.Definitions == nil {
		root.Definitions = jsonschema.Definitions{}
	}
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if _, ok := root.Definitions[name]; ok {
			b.log.Warn("definition already reflected, keeping it", zap.String("name", name))
			continue
		}
		root.Definitions[name] = Convert(defs[name])
	}
}

// Reflect reflects v with a copy of r whose Mapper consults the bridge
// first, then attaches the definitions.
func (b *Bridge) Reflect(r *jsonschema.Reflector, v any) *jsonschema.Schema {
	rr := *r
	rr.Mapper = b.Mapper(r.Mapper)
	root := rr.Reflect(v)
	b.Attach(root)
	return root
}
