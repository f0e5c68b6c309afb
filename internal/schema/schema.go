package schema

import (
	"github.com/rotisserie/eris"
)

// Kind identifies the shape of a field's type. It is resolved once per field
// when a schema is constructed, not re-inspected per render.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDecimal
	KindBoolean
	KindDate
	KindTime
	KindChoice
	KindList
	KindRecord
	KindHidden
	KindCustom
)

// String returns the lowercase name of the kind as used in schema files.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "bool"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindChoice:
		return "choice"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindHidden:
		return "hidden"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// Type describes a field's declared type.
type Type struct {
	Kind     Kind
	Optional bool
	Float    bool     // numeric kinds: fractional values allowed
	Choices  []string // KindChoice: declared values in declaration order
	Multiple bool     // KindChoice: multi-select
	Elem     *Type    // KindList: item type
	Fields   []Field  // KindRecord: nested fields in declaration order
	Custom   string   // KindCustom: registered type name
}

// Field is one named field of a record.
type Field struct {
	Name        string
	Label       string // optional display override; humanized Name when empty
	Description string // rendered as a tooltip on the label
	Type        *Type
	Default     any
	DefaultFunc func() any
	Hidden      bool // suppressed from rendering; still reconciled
}

// Schema is an ordered record-type description. It is immutable input to the
// form layer and is never mutated by it.
type Schema struct {
	Name   string
	Fields []Field

	byName map[string]*Field
}

// New builds a schema with indexed field lookup.
func New(name string, fields []Field) (*Schema, error) {
	if name == "" {
		return nil, eris.New("schema: name is required")
	}
	s := &Schema{
		Name:   name,
		Fields: fields,
		byName: make(map[string]*Field, len(fields)),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			return nil, eris.Errorf("schema %q: field %d has no name", name, i)
		}
		if f.Type == nil {
			return nil, eris.Errorf("schema %q: field %q has no type", name, f.Name)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, eris.Errorf("schema %q: duplicate field %q", name, f.Name)
		}
		if err := checkType(f.Type, f.Name); err != nil {
			return nil, eris.Wrapf(err, "schema %q", name)
		}
		s.byName[f.Name] = f
	}
	return s, nil
}

// MustNew is New for statically known schemas; it panics on error.
func MustNew(name string, fields []Field) *Schema {
	s, err := New(name, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// FieldByName returns the field with the given name, or nil.
func (s *Schema) FieldByName(name string) *Field {
	return s.byName[name]
}

// Walk visits every field in declaration order, depth first, calling fn with
// the field's dot notation relative to the schema root. List item types are
// visited once, without an index.
func (s *Schema) Walk(fn func(notation string, f *Field)) {
	walkFields("", s.Fields, fn)
}

func walkFields(prefix string, fields []Field, fn func(string, *Field)) {
	for i := range fields {
		f := &fields[i]
		notation := f.Name
		if prefix != "" {
			notation = prefix + "." + f.Name
		}
		fn(notation, f)

		t := f.Type
		for t != nil && t.Kind == KindList {
			t = t.Elem
		}
		if t != nil && t.Kind == KindRecord {
			walkFields(notation, t.Fields, fn)
		}
	}
}

// checkType rejects structurally impossible descriptors. These are
// configuration errors, fatal at construction time.
func checkType(t *Type, field string) error {
	switch t.Kind {
	case KindChoice:
		if len(t.Choices) == 0 {
			return eris.Errorf("field %q: choice type with no choices", field)
		}
	case KindList:
		if t.Elem == nil {
			return eris.Errorf("field %q: list type with no item type", field)
		}
		return checkType(t.Elem, field)
	case KindRecord:
		if len(t.Fields) == 0 {
			return eris.Errorf("field %q: record type with no fields", field)
		}
		seen := make(map[string]bool, len(t.Fields))
		for i := range t.Fields {
			nf := &t.Fields[i]
			if nf.Name == "" || nf.Type == nil {
				return eris.Errorf("field %q: malformed nested field", field)
			}
			if seen[nf.Name] {
				return eris.Errorf("field %q: duplicate nested field %q", field, nf.Name)
			}
			seen[nf.Name] = true
			if err := checkType(nf.Type, field+"."+nf.Name); err != nil {
				return err
			}
		}
	case KindCustom:
		if t.Custom == "" {
			return eris.Errorf("field %q: custom type with no name", field)
		}
	}
	return nil
}
