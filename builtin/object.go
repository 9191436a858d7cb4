package builtin

import (
	"reflect"

	"github.com/reoring/wireschema"
	js "github.com/reoring/wireschema/jsonschema"
)

// Field is one property of an Object.
type Field struct {
	Name     string
	Schema   wireschema.Schemer
	Required bool
}

// Object describes the struct type T as a JSON object. It is referenceable:
// its definition is keyed by the Go type name and its id by the qualified type
// name. fields is called while the schema is built, so a field may refer back
// to Object[T] itself.
func Object[T any](fields func() []Field) wireschema.Type[T] {
	rt := reflect.TypeFor[T]()
	name, id := rt.Name(), rt.String()
	if rt.PkgPath() != "" {
		id = rt.PkgPath() + "." + name
	}
	if name == "" {
		name = "Object"
	}
	return wireschema.Describe[T](object{name: name, id: id, fields: fields})
}

type object struct {
	name   string
	id     string
	fields func() []Field
}

func (o object) SchemaName() string    { return o.name }
func (o object) SchemaID() string      { return o.id }
func (o object) IsReferenceable() bool { return true }

func (o object) JSONSchema(g *wireschema.Generator) *js.Schema {
	s := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}}
	for _, f := range o.fields() {
		s.Properties[f.Name] = g.SubschemaFor(f.Schema)
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}
