package jsonschema

// Clone returns a deep copy of s. Default values are copied by reference.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Minimum = cloneFloat(s.Minimum)
	out.Maximum = cloneFloat(s.Maximum)
	out.MinItems = cloneLength(s.MinItems)
	out.MaxItems = cloneLength(s.MaxItems)
	out.Items = s.Items.Clone()
	out.TupleItems = cloneList(s.TupleItems)
	out.AnyOf = cloneList(s.AnyOf)
	out.OneOf = cloneList(s.OneOf)
	out.Properties = CloneMap(s.Properties)
	out.Definitions = CloneMap(s.Definitions)
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		out.AdditionalProperties = ap.Clone()
	}
	return &out
}

// CloneMap deep-copies a name -> schema table.
func CloneMap(m map[string]*Schema) map[string]*Schema {
	if m == nil {
		return nil
	}
	out := make(map[string]*Schema, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

func cloneList(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneLength(p *uint32) *uint32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
