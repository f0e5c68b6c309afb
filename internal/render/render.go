// Package render turns classified schema fields into HTML components. Each
// field kind has a renderer; the registry resolves exact custom-type
// overrides before kind defaults, so user renderers compose transparently
// inside lists and records.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/metrics"
	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/schema/defaults"
)

// Renderer produces the label and input markup for one field. Render is the
// composed form (label + input); List and Record renderers emit composites.
type Renderer interface {
	RenderLabel(Context) g.Node
	RenderInput(Context) g.Node
	Render(Context) g.Node
}

// Context carries everything a renderer needs for one field at one path.
type Context struct {
	Registry  *Registry
	Field     *schema.Field
	Value     any
	Path      path.Path
	Namespace string
	Disabled  bool
	Spacing   Spacing

	Metrics     metrics.Map
	MetricScope metrics.Scope
	LabelColor  string

	// Exclude and DisabledFields are keyed by dot/bracket notation; top-level
	// bare field names are accepted too.
	Exclude        map[string]bool
	DisabledFields map[string]bool

	// Clock drives date/time default synthesis during rendering. Nil means
	// wall clock.
	Clock defaults.Clock

	// Comparison-mode overrides. RefreshURL replaces the per-form refresh
	// endpoint; CopyTarget ("left"/"right") enables the copy affordance.
	RefreshURL string
	CopyTarget string
	PairName   string

	// Open forces the accordion expanded (used for freshly added list items).
	Open bool
}

// WireName is the HTML input name for this field.
func (c Context) WireName() string {
	return c.Path.WireName(c.Namespace)
}

// Notation is the dot/bracket form of this field's path, used for the
// data-field-path attribute and metric lookup.
func (c Context) Notation() string {
	return c.Path.Notation()
}

// Metric returns the entry annotating this field, if any.
func (c Context) Metric() *metrics.Entry {
	return c.Metrics.Get(c.Notation())
}

// Required reports whether the field must be supplied: not optional and no
// default of any kind declared.
func (c Context) Required() bool {
	t := c.Field.Type
	return !t.Optional && c.Field.Default == nil && c.Field.DefaultFunc == nil
}

// Excluded reports whether a field is omitted from rendering.
func (c Context) Excluded(notation, name string) bool {
	return c.Exclude[notation] || c.Exclude[name]
}

// FieldDisabled reports whether a field is rendered read-only.
func (c Context) FieldDisabled(notation, name string) bool {
	return c.DisabledFields[notation] || c.DisabledFields[name]
}

func (c Context) clock() defaults.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return defaults.RealClock{}
}

// child derives a context for a nested field one path segment deeper.
func (c Context) child(f *schema.Field, value any, seg path.Segment) Context {
	nc := c
	nc.Field = f
	nc.Value = value
	nc.Path = c.Path.Child(seg)
	nc.LabelColor = ""
	nc.Open = false
	return nc
}

var titleCaser = cases.Title(language.English)

// labelText humanizes a field name: snake_case to Title Case, unless the
// schema declares an explicit label.
func labelText(f *schema.Field) string {
	if f.Label != "" {
		return f.Label
	}
	return titleCaser.String(strings.ReplaceAll(f.Name, "_", " "))
}

// renderLabel builds the standard field label with description tooltip.
func renderLabel(c Context) g.Node {
	return h.Label(
		h.For(c.WireName()),
		h.Class("block text-sm font-medium text-gray-700 mb-1"),
		g.If(c.LabelColor != "", h.Style("color: "+c.LabelColor+";")),
		h.Span(
			g.If(c.Field.Description != "", g.Attr("title", c.Field.Description)),
			g.Text(labelText(c.Field)),
		),
	)
}

// renderField is the shared label+input composition: a single collapsible
// block, decorated with the field's metric entry when present.
func renderField(c Context, label, input g.Node) g.Node {
	itemID := c.WireName() + "_item"
	block := h.Div(
		h.ID(itemID),
		h.Class("sfm-field "+c.Spacing.Class("outer_margin_sm")),
		g.Attr("data-field-container", c.Notation()),
		h.Details(
			g.Attr("open"),
			h.Summary(
				h.Class("cursor-pointer select-none flex items-center justify-between"),
				label,
				g.If(c.CopyTarget != "", copyButton(c)),
			),
			input,
		),
	)
	return metrics.Decorate(block, c.Metric(), c.MetricScope)
}

// copyButton renders the comparison copy affordance: pushes this field's
// value into the same path on the paired form's other column.
func copyButton(c Context) g.Node {
	url := "/compare/" + c.PairName + "/copy"
	arrow := "→"
	if c.CopyTarget == "left" {
		arrow = "←"
	}
	return h.Button(
		h.Type("button"),
		h.Class("sfm-copy uk-button-link text-xs ml-2"),
		g.Attr("onclick", fmt.Sprintf("sfmCopy(%q, %q, %q); return false;", url, c.Notation(), c.CopyTarget)),
		g.Attr("title", "Copy this value to the other side"),
		g.Text(arrow),
	)
}

// placeholderText builds input placeholder copy from the field name.
func placeholderText(verb string, c Context) string {
	text := verb + " " + strings.ReplaceAll(c.Field.Name, "_", " ")
	if c.Field.Type.Optional {
		text += " (Optional)"
	}
	return text
}

// ErrorFragment renders a client-visible error block. Every user-facing
// failure path returns markup, never an unstructured fault.
func ErrorFragment(msg string) g.Node {
	return h.Div(
		h.Class("sfm-alert sfm-alert-error border border-red-300 bg-red-50 text-red-800 rounded p-3 mb-2"),
		h.Role("alert"),
		g.Text(msg),
	)
}

// WarningFragment renders a client-visible warning block.
func WarningFragment(msg string) g.Node {
	return h.Div(
		h.Class("sfm-alert sfm-alert-warning border border-amber-300 bg-amber-50 text-amber-800 rounded p-3 mb-2"),
		h.Role("alert"),
		g.Text(msg),
	)
}
