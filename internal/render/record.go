package render

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/schema/defaults"
)

// RecordRenderer renders a nested record as a collapsible group of its
// fields, in schema declaration order.
type RecordRenderer struct{}

func (r RecordRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r RecordRenderer) RenderInput(c Context) g.Node {
	body := RecordFields(c, c.Field.Type, c.Value)
	return h.Div(
		h.Class("sfm-record "+c.Spacing.Class("padding_sm")+" mt-1 "+c.Spacing.Class("card_border")),
		body,
	)
}

func (r RecordRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

// RecordFields renders each field of a record type against a value mapping,
// honoring the context's exclude and disable sets. Shared by the record
// renderer and list item cards.
func RecordFields(c Context, t *schema.Type, value any) g.Node {
	values, _ := value.(map[string]any)

	var blocks []g.Node
	for i := range t.Fields {
		f := &t.Fields[i]
		nc := c.child(f, nil, path.Name(f.Name))

		if c.Excluded(nc.Notation(), f.Name) {
			continue
		}
		if schema.ClassifyField(f).Kind == schema.KindHidden {
			continue
		}

		v, present := values[f.Name]
		if !present || v == nil {
			if dv := f.DeclaredDefault(); !schema.IsUnset(dv) {
				v = dv
			} else if !present {
				v = defaults.ForType(f.Type, c.clock())
			}
		}
		nc.Value = v
		nc.Disabled = c.Disabled || c.FieldDisabled(nc.Notation(), f.Name)

		blocks = append(blocks, c.Registry.For(f.Type).Render(nc))
	}

	return h.Div(
		h.Class(c.Spacing.Class("inner_gap")+" items-stretch"),
		g.Group(blocks),
	)
}
