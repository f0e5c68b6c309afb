package schema

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// schemaDoc is the YAML document shape for a schema definition.
type schemaDoc struct {
	Name   string     `yaml:"name"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string     `yaml:"name"`
	Label       string     `yaml:"label"`
	Description string     `yaml:"description"`
	Type        string     `yaml:"type"`
	Optional    bool       `yaml:"optional"`
	Hidden      bool       `yaml:"hidden"`
	Choices     []string   `yaml:"choices"`
	Multiple    bool       `yaml:"multiple"`
	Of          *fieldDoc  `yaml:"of"`     // list item type
	Fields      []fieldDoc `yaml:"fields"` // record fields
	Default     any        `yaml:"default"`
}

// Load reads a YAML schema definition. Malformed documents are configuration
// errors: fatal, never per-request.
func Load(r io.Reader) (*Schema, error) {
	var doc schemaDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "schema: decode")
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		f, err := fd.toField()
		if err != nil {
			return nil, eris.Wrapf(err, "schema %q", doc.Name)
		}
		fields = append(fields, f)
	}
	return New(doc.Name, fields)
}

// LoadFile reads a YAML schema definition from disk.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "schema: open")
	}
	defer f.Close()
	return Load(f)
}

func (fd fieldDoc) toField() (Field, error) {
	t, err := fd.toType()
	if err != nil {
		return Field{}, err
	}
	return Field{
		Name:        fd.Name,
		Label:       fd.Label,
		Description: fd.Description,
		Type:        t,
		Default:     fd.Default,
		Hidden:      fd.Hidden,
	}, nil
}

func (fd fieldDoc) toType() (*Type, error) {
	t := &Type{Optional: fd.Optional}
	switch fd.Type {
	case "string", "":
		t.Kind = KindString
	case "int":
		t.Kind = KindNumber
	case "float":
		t.Kind = KindNumber
		t.Float = true
	case "decimal":
		t.Kind = KindDecimal
	case "bool":
		t.Kind = KindBoolean
	case "date":
		t.Kind = KindDate
	case "time":
		t.Kind = KindTime
	case "choice":
		t.Kind = KindChoice
		t.Choices = fd.Choices
		t.Multiple = fd.Multiple
	case "hidden":
		t.Kind = KindHidden
	case "list":
		t.Kind = KindList
		if fd.Of == nil {
			return nil, eris.Errorf("field %q: list type requires 'of'", fd.Name)
		}
		elem, err := fd.Of.toType()
		if err != nil {
			return nil, err
		}
		t.Elem = elem
	case "record":
		t.Kind = KindRecord
		for _, nd := range fd.Fields {
			nf, err := nd.toField()
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, nf)
		}
	default:
		t.Kind = KindCustom
		t.Custom = fd.Type
	}
	return t, nil
}
