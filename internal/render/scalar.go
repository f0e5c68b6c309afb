package render

import (
	"time"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/schema"
)

// StringRenderer renders free text as a textarea.
type StringRenderer struct{}

func (r StringRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r StringRenderer) RenderInput(c Context) g.Node {
	return h.Textarea(
		h.ID(c.WireName()),
		h.Name(c.WireName()),
		h.Rows("2"),
		h.Class("w-full"),
		h.Placeholder(placeholderText("Enter", c)),
		g.Attr("data-field-path", c.Notation()),
		g.If(c.Required(), h.Required()),
		g.If(c.Disabled, h.Disabled()),
		g.Text(schema.DisplayValue(c.Value)),
	)
}

func (r StringRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

// NumberRenderer renders int and float fields as numeric inputs: integer
// step for ints, step-any for floats.
type NumberRenderer struct{}

func (r NumberRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r NumberRenderer) RenderInput(c Context) g.Node {
	step := "1"
	if c.Field.Type.Float {
		step = "any"
	}
	return numericInput(c, step)
}

func (r NumberRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

// DecimalRenderer renders decimals with step-any and full-precision string
// values, so precision survives the render/submit round trip.
type DecimalRenderer struct{}

func (r DecimalRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r DecimalRenderer) RenderInput(c Context) g.Node {
	return numericInput(c, "any")
}

func (r DecimalRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

func numericInput(c Context, step string) g.Node {
	value := ""
	switch v := c.Value.(type) {
	case nil:
	case decimal.Decimal:
		value = v.String()
	default:
		value = schema.DisplayValue(v)
	}
	return h.Input(
		h.Type("number"),
		h.ID(c.WireName()),
		h.Name(c.WireName()),
		h.Value(value),
		h.Class("w-full"),
		h.Placeholder(placeholderText("Enter", c)),
		g.Attr("step", step),
		g.Attr("data-field-path", c.Notation()),
		g.If(c.Required(), h.Required()),
		g.If(c.Disabled, h.Disabled()),
	)
}

// BooleanRenderer renders a checkbox.
type BooleanRenderer struct{}

func (r BooleanRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r BooleanRenderer) RenderInput(c Context) g.Node {
	checked := false
	switch v := c.Value.(type) {
	case bool:
		checked = v
	case string:
		checked = v == "true" || v == "on"
	}
	return h.Input(
		h.Type("checkbox"),
		h.ID(c.WireName()),
		h.Name(c.WireName()),
		h.Value("true"),
		g.Attr("data-field-path", c.Notation()),
		g.If(checked, h.Checked()),
		g.If(c.Disabled, h.Disabled()),
	)
}

func (r BooleanRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

// DateRenderer renders an ISO-8601 date input.
type DateRenderer struct{}

func (r DateRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r DateRenderer) RenderInput(c Context) g.Node {
	value := ""
	switch v := c.Value.(type) {
	case string:
		value = v
	case time.Time:
		value = v.Format(schema.DateLayout)
	}
	return h.Input(
		h.Type("date"),
		h.ID(c.WireName()),
		h.Name(c.WireName()),
		h.Value(value),
		h.Class("w-full"),
		h.Placeholder(placeholderText("Select", c)),
		g.Attr("data-field-path", c.Notation()),
		g.If(c.Required(), h.Required()),
		g.If(c.Disabled, h.Disabled()),
	)
}

func (r DateRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

// TimeRenderer renders an HH:MM time input.
type TimeRenderer struct{}

func (r TimeRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r TimeRenderer) RenderInput(c Context) g.Node {
	value := ""
	switch v := c.Value.(type) {
	case string:
		value = v
	case time.Time:
		value = v.Format(schema.TimeLayout)
	}
	return h.Input(
		h.Type("time"),
		h.ID(c.WireName()),
		h.Name(c.WireName()),
		h.Value(value),
		h.Class("w-full"),
		h.Placeholder(placeholderText("Select", c)),
		g.Attr("data-field-path", c.Notation()),
		g.If(c.Required(), h.Required()),
		g.If(c.Disabled, h.Disabled()),
	)
}

func (r TimeRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}
