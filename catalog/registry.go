// Package catalog resolves adapter expressions such as
// "Slice<BoolFromInt<Strict>>" to schemas at run time.
//
// The typed API in builtin and adapter binds adapters at compile time. A
// Registry is the table-driven counterpart for callers that only know the
// adapter by name: configuration files, the command line, code generators.
// Every expression yields the same name, id and document as the equivalent
// typed construction.
package catalog

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/reoring/wireschema"
)

// Builder constructs a schema from the arguments of a call.
type Builder func(c *Call) (wireschema.Schemer, error)

// Entry describes one registered adapter or type.
type Entry struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for no limit.
	Usage   string
	Build   Builder
}

// Registry maps names to adapter builders and to timespan target types.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	targets map[string]reflect.Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]Entry{}, targets: map[string]reflect.Type{}}
}

// Register adds e. Names are unique.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Build == nil {
		return fmt.Errorf("catalog: register: entry needs a name and a builder")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAdapter, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// RegisterTarget names a timespan target type for use as the first argument
// of the Duration* and Timestamp* adapters.
func (r *Registry) RegisterTarget(name string, t reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.targets[name]; ok && prev != t {
		return fmt.Errorf("%w: target %s", ErrDuplicateAdapter, name)
	}
	r.targets[name] = t
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Entries returns the registered entries sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (r *Registry) target(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.targets[name]
	return t, ok
}

// Parse parses and resolves expr. Errors are Issues carrying the byte
// offset of each problem.
func (r *Registry) Parse(expr string) (wireschema.Type[any], error) {
	n, err := ParseExpr(expr)
	if err != nil {
		return wireschema.Type[any]{}, err
	}
	return r.Eval(n)
}

// MustParse is Parse that panics on error.
func (r *Registry) MustParse(expr string) wireschema.Type[any] {
	t, err := r.Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("catalog: %q: %v", expr, err))
	}
	return t
}

// Eval resolves a parsed expression.
func (r *Registry) Eval(n Node) (wireschema.Type[any], error) {
	s, iss := r.eval(n)
	if len(iss) > 0 {
		return wireschema.Type[any]{}, iss
	}
	return wireschema.Describe[any](s), nil
}

func (r *Registry) eval(n Node) (wireschema.Schemer, Issues) {
	if n.Kind != NodeName {
		return nil, Issues{issue(n.Offset, CodeInvalidArgument, ErrInvalidArgument,
			"number %d where a schema is expected", n.Number)}
	}
	e, ok := r.Lookup(n.Name)
	if !ok {
		return nil, Issues{issue(n.Offset, CodeUnknownAdapter, ErrUnknownAdapter, "%s", n.Name)}
	}
	if len(n.Args) < e.MinArgs || (e.MaxArgs >= 0 && len(n.Args) > e.MaxArgs) {
		it := issue(n.Offset, CodeArity, ErrArity, "%s takes %s, got %d", n.Name, arity(e), len(n.Args))
		it.Hint = e.Usage
		return nil, Issues{it}
	}
	c := &Call{reg: r, node: n}
	s, err := e.Build(c)
	if len(c.issues) > 0 {
		return nil, c.issues
	}
	if err != nil {
		return nil, Issues{issue(n.Offset, CodeUnsupported, err, "%s: %v", n, err)}
	}
	return s, nil
}

func arity(e Entry) string {
	switch {
	case e.MaxArgs < 0:
		return fmt.Sprintf("at least %d arguments", e.MinArgs)
	case e.MinArgs == e.MaxArgs:
		return fmt.Sprintf("%d arguments", e.MinArgs)
	}
	return fmt.Sprintf("%d to %d arguments", e.MinArgs, e.MaxArgs)
}

// Call gives a Builder typed access to its arguments. Argument errors are
// collected; a builder may keep reading arguments after one fails and the
// call reports all of them.
type Call struct {
	reg    *Registry
	node   Node
	issues Issues
}

// Name is the name the adapter was called by.
func (c *Call) Name() string { return c.node.Name }

// Len is the number of arguments.
func (c *Call) Len() int { return len(c.node.Args) }

func (c *Call) bad(a Node, code string, cause error, format string, args ...any) {
	c.issues = append(c.issues, issue(a.Offset, code, cause, format, args...))
}

// invalid records a bad value for argument i.
func (c *Call) invalid(i int, hint, format string, args ...any) {
	it := issue(c.node.Args[i].Offset, CodeInvalidArgument, ErrInvalidArgument,
		c.node.Name+": "+format, args...)
	it.Hint = hint
	c.issues = append(c.issues, it)
}

// Schema resolves argument i as a nested expression.
func (c *Call) Schema(i int) wireschema.Type[any] {
	s, iss := c.reg.eval(c.node.Args[i])
	if len(iss) > 0 {
		c.issues = append(c.issues, iss...)
		return wireschema.Type[any]{}
	}
	return wireschema.Describe[any](s)
}

// Schemas resolves arguments i and later.
func (c *Call) Schemas(i int) []wireschema.Schemer {
	out := make([]wireschema.Schemer, 0, len(c.node.Args)-i)
	for j := i; j < len(c.node.Args); j++ {
		out = append(out, c.Schema(j))
	}
	return out
}

// Number reads argument i as an integer literal.
func (c *Call) Number(i int) uint64 {
	a := c.node.Args[i]
	if a.Kind != NodeNumber {
		c.bad(a, CodeInvalidArgument, ErrInvalidArgument, "%s: expected a length, got %s", c.node.Name, a)
		return 0
	}
	return a.Number
}

// Keyword reads argument i as a bare name, without resolving it.
func (c *Call) Keyword(i int) string {
	a := c.node.Args[i]
	if a.Kind != NodeName || a.Args != nil {
		c.bad(a, CodeInvalidArgument, ErrInvalidArgument, "%s: expected a name, got %s", c.node.Name, a)
		return ""
	}
	return a.Name
}

// Strictness reads argument i as Strict or Flexible. A missing argument is
// Strict.
func (c *Call) Strictness(i int) wireschema.Strictness {
	if i >= len(c.node.Args) {
		return wireschema.Strict
	}
	name := c.Keyword(i)
	if name == "" {
		return wireschema.Strict
	}
	s, ok := wireschema.ParseStrictness(name)
	if !ok {
		c.invalid(i, "Strict or Flexible", "unknown strictness %s", name)
	}
	return s
}

// Target reads argument i as a registered timespan target type.
func (c *Call) Target(i int) reflect.Type {
	name := c.Keyword(i)
	if name == "" {
		return nil
	}
	t, ok := c.reg.target(name)
	if !ok {
		c.bad(c.node.Args[i], CodeUnknownTarget, ErrUnknownTarget, "%s: %s", c.node.Name, name)
	}
	return t
}
