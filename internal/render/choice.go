package render

import (
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/schema"
)

// ChoiceRenderer renders declared-choice fields: a select for single choice
// (with a "-- None --" sentinel option when optional), a pill multi-select
// when the type allows multiple selections.
type ChoiceRenderer struct{}

func (r ChoiceRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

func (r ChoiceRenderer) RenderInput(c Context) g.Node {
	if c.Field.Type.Multiple {
		return r.renderPills(c)
	}
	return r.renderSelect(c)
}

func (r ChoiceRenderer) Render(c Context) g.Node {
	return renderField(c, r.RenderLabel(c), r.RenderInput(c))
}

func (r ChoiceRenderer) renderSelect(c Context) g.Node {
	t := c.Field.Type
	current := ""
	if c.Value != nil {
		current = schema.DisplayValue(c.Value)
	}

	options := make([]g.Node, 0, len(t.Choices)+1)
	if t.Optional {
		options = append(options, h.Option(
			h.Value(""),
			g.If(c.Value == nil, h.Selected()),
			g.Text("-- None --"),
		))
	}
	for _, choice := range t.Choices {
		options = append(options, h.Option(
			h.Value(choice),
			g.If(current == choice && c.Value != nil, h.Selected()),
			g.Text(choice),
		))
	}

	return h.Select(
		append([]g.Node{
			h.ID(c.WireName()),
			h.Name(c.WireName()),
			h.Class("w-full"),
			g.Attr("data-field-path", c.Notation()),
			g.If(c.Required(), h.Required()),
			g.If(c.Disabled, h.Disabled()),
		}, options...)...,
	)
}

// renderPills renders the multi-select widget: one hidden input per selected
// value (so standard form encoding submits the full set), a removal button
// per pill, and a dropdown that adds new pills client-side.
func (r ChoiceRenderer) renderPills(c Context) g.Node {
	t := c.Field.Type
	selected := selectedValues(c.Value)
	selectedSet := make(map[string]bool, len(selected))
	for _, v := range selected {
		selectedSet[v] = true
	}

	pills := make([]g.Node, 0, len(selected))
	for _, v := range selected {
		pills = append(pills, pill(c, v))
	}

	addOptions := []g.Node{h.Option(h.Value(""), h.Selected(), g.Text("Add..."))}
	for _, choice := range t.Choices {
		if selectedSet[choice] {
			continue
		}
		addOptions = append(addOptions, h.Option(h.Value(choice), g.Text(choice)))
	}

	containerID := c.WireName() + "_pills"
	return h.Div(
		h.ID(containerID),
		h.Class("sfm-pills flex flex-wrap gap-1 items-center"),
		g.Attr("data-field-path", c.Notation()),
		g.Attr("data-wire-name", c.WireName()),
		g.Group(pills),
		h.Select(
			append([]g.Node{
				h.Class("sfm-pill-add"),
				g.Attr("onchange", fmt.Sprintf("sfmAddPill(this, %q); return false;", containerID)),
				g.If(c.Disabled, h.Disabled()),
			}, addOptions...)...,
		),
	)
}

func pill(c Context, value string) g.Node {
	return h.Span(
		h.Class("sfm-pill inline-flex items-center gap-1 rounded-full bg-gray-200 px-2 py-0.5 text-sm"),
		h.Input(
			h.Type("hidden"),
			h.Name(c.WireName()),
			h.Value(value),
		),
		g.Text(value),
		g.If(!c.Disabled, h.Button(
			h.Type("button"),
			h.Class("sfm-pill-remove text-gray-500 hover:text-red-600"),
			g.Attr("onclick", "sfmRemovePill(this); return false;"),
			g.Attr("title", "Remove"),
			g.Text("×"),
		)),
	)
}

func selectedValues(v any) []string {
	switch vv := v.(type) {
	case nil:
		return nil
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			out = append(out, schema.DisplayValue(item))
		}
		return out
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	}
	return []string{schema.DisplayValue(v)}
}
