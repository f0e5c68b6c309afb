// Package form ties schema, renderers and reconciliation together into a
// Form Instance: a named, per-request reconstruction of one logical form.
// The core holds no store; the browser DOM is the durable state between
// requests.
package form

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/metrics"
	"github.com/sells-group/schemaform/internal/parse"
	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/render"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/schema/defaults"
)

// Form renders one schema under one namespace and reconciles submissions
// back into value trees. The namespace roots every generated wire name, so
// two forms over the same schema never collide.
type Form struct {
	Name   string
	Schema *schema.Schema

	initial map[string]any
	values  map[string]any

	registry       *render.Registry
	spacing        render.Spacing
	disabled       bool
	disabledFields map[string]bool
	exclude        map[string]bool
	labelColors    map[string]string
	metricsMap     metrics.Map
	metricScope    metrics.Scope
	clock          defaults.Clock
	tokens         *path.TokenSource

	// Comparison-mode hooks.
	refreshURL string
	copyTarget string
	pairName   string
}

// Option configures a Form.
type Option func(*Form)

// WithInitialValues supplies the form's initial value tree. Missing fields
// are not auto-filled; defaults apply at render and reconcile time.
func WithInitialValues(values map[string]any) Option {
	return func(f *Form) {
		f.initial = copyTree(values)
	}
}

// WithDisabled renders every input read-only.
func WithDisabled() Option {
	return func(f *Form) { f.disabled = true }
}

// WithDisabledFields renders the named fields read-only. Names are top-level
// field names or dot/bracket paths.
func WithDisabledFields(names ...string) Option {
	return func(f *Form) {
		f.disabledFields = make(map[string]bool, len(names))
		for _, n := range names {
			f.disabledFields[n] = true
		}
	}
}

// WithExcludeFields omits the named fields from rendering entirely. Their
// values still reconcile via initial-then-default.
func WithExcludeFields(names ...string) Option {
	return func(f *Form) {
		f.exclude = make(map[string]bool, len(names))
		for _, n := range names {
			f.exclude[n] = true
		}
	}
}

// WithLabelColors sets per-field label colors (CSS color values).
func WithLabelColors(colors map[string]string) Option {
	return func(f *Form) { f.labelColors = colors }
}

// WithSpacing selects the layout density.
func WithSpacing(sp render.Spacing) Option {
	return func(f *Form) { f.spacing = sp }
}

// WithMetrics attaches a metric map, decorated at the given scope.
func WithMetrics(m metrics.Map, scope metrics.Scope) Option {
	return func(f *Form) {
		f.metricsMap = m
		f.metricScope = scope
	}
}

// WithRegistry overrides the process-wide renderer registry.
func WithRegistry(r *render.Registry) Option {
	return func(f *Form) { f.registry = r }
}

// WithClock injects the clock used for date/time default synthesis.
func WithClock(c defaults.Clock) Option {
	return func(f *Form) { f.clock = c }
}

// WithTokenSource injects the placeholder index generator.
func WithTokenSource(ts *path.TokenSource) Option {
	return func(f *Form) { f.tokens = ts }
}

// BindComparison points the form's refresh and reset endpoints at a
// comparison pair column and enables the copy affordance toward the other
// side. Called once by the comparison layer when the pair is assembled.
func (f *Form) BindComparison(pairName, refreshURL, copyTarget string) {
	f.pairName = pairName
	f.refreshURL = refreshURL
	f.copyTarget = copyTarget
}

// New builds a form instance for a schema.
func New(name string, s *schema.Schema, opts ...Option) *Form {
	f := &Form{
		Name:     name,
		Schema:   s,
		registry: render.Default(),
		clock:    defaults.RealClock{},
		tokens:   path.NewTokenSource(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.initial == nil {
		f.initial = map[string]any{}
	}
	f.values = copyTree(f.initial)
	return f
}

// CloneWithValues copies the form's configuration with a replacement value
// tree. Refresh uses this so configuration never drifts between renders.
func (f *Form) CloneWithValues(values map[string]any) *Form {
	clone := *f
	clone.initial = copyTree(f.initial)
	clone.values = copyTree(values)
	return &clone
}

// Values returns the form's current value tree.
func (f *Form) Values() map[string]any { return f.values }

// Initial returns the form's original initial values.
func (f *Form) Initial() map[string]any { return copyTree(f.initial) }

// SetValues replaces the current value tree.
func (f *Form) SetValues(values map[string]any) { f.values = copyTree(values) }

// Disabled reports whether the whole form renders read-only.
func (f *Form) Disabled() bool { return f.disabled }

// FormID is the id of the enclosing HTML form element.
func (f *Form) FormID() string { return f.Name + "-form" }

// WrapperID is the id of the inputs wrapper targeted by refresh and reset.
func (f *Form) WrapperID() string { return f.Name + "-inputs-wrapper" }

// baseContext builds the render context shared by every field of this form.
func (f *Form) baseContext() render.Context {
	return render.Context{
		Registry:       f.registry,
		Namespace:      f.Name,
		Spacing:        f.spacing,
		Metrics:        f.metricsMap,
		MetricScope:    f.metricScope,
		Exclude:        f.exclude,
		DisabledFields: f.disabledFields,
		Clock:          f.clock,
		RefreshURL:     f.refreshURL,
		CopyTarget:     f.copyTarget,
		PairName:       f.pairName,
	}
}

// RenderInputs renders the form's input fields (no form tag) inside the
// wrapper div that refresh and reset swap.
func (f *Form) RenderInputs() g.Node {
	return h.Div(
		h.ID(f.WrapperID()),
		h.Class("sfm-wrapper w-full flex-1"),
		h.Div(
			h.Class(f.spacing.Class("stack_gap")+" items-stretch"),
			g.Group(f.FieldBlocks()),
		),
	)
}

// FieldBlocks renders each top-level field in declaration order. The
// comparison layer uses this to interleave two columns.
func (f *Form) FieldBlocks() []g.Node {
	base := f.baseContext()
	var blocks []g.Node
	for i := range f.Schema.Fields {
		fld := &f.Schema.Fields[i]
		if f.exclude[fld.Name] {
			continue
		}
		if schema.ClassifyField(fld).Kind == schema.KindHidden {
			continue
		}

		value, provided := f.values[fld.Name]
		if !provided {
			if dv := fld.DeclaredDefault(); !schema.IsUnset(dv) {
				value = dv
			} else {
				value = defaults.ForType(fld.Type, f.clock)
			}
		}

		c := base
		c.Field = fld
		c.Value = value
		c.Path = path.Path{path.Name(fld.Name)}
		c.Disabled = f.disabled || f.disabledFields[fld.Name]
		c.LabelColor = f.labelColors[fld.Name]

		blocks = append(blocks, f.registry.For(fld.Type).Render(c))
	}
	return blocks
}

// Parse reconciles a flat submission into a nested value tree matching the
// schema. It never rejects malformed scalars; validation does.
func (f *Form) Parse(submission url.Values) (map[string]any, error) {
	return parse.Parse(submission, f.Schema, f.Name, f.initial, f.exclude)
}

// Refresh reconciles the submission and re-renders from the parsed values,
// reflecting in-progress edits without validating them. A parse failure
// falls back to the initial values with a warning fragment.
func (f *Form) Refresh(submission url.Values) g.Node {
	parsed, err := f.Parse(submission)
	if err != nil {
		zap.L().Error("form: refresh parse failed",
			zap.String("form", f.Name),
			zap.Error(err),
		)
		return g.Group([]g.Node{
			render.WarningFragment("Could not fully process current form values for refresh. Display might not be fully updated."),
			f.CloneWithValues(f.initial).RenderInputs(),
		})
	}
	zap.L().Debug("form: refresh", zap.String("form", f.Name))
	return f.CloneWithValues(parsed).RenderInputs()
}

// Reset discards in-progress edits and re-renders from the initial values.
func (f *Form) Reset() g.Node {
	zap.L().Debug("form: reset", zap.String("form", f.Name))
	return f.CloneWithValues(f.initial).RenderInputs()
}

// Validate reconciles and hands the value tree to the validation delegate.
func (f *Form) Validate(submission url.Values) (map[string]any, schema.ErrorList, error) {
	parsed, err := f.Parse(submission)
	if err != nil {
		return nil, nil, err
	}
	typed, errs := schema.Validate(f.Schema, parsed)
	return typed, errs, nil
}

// RefreshButton renders the refresh affordance for this form.
func (f *Form) RefreshButton(text string) g.Node {
	if text == "" {
		text = "Refresh Form Display"
	}
	return h.Button(
		h.Type("button"),
		h.Class("sfm-refresh uk-button-secondary"),
		g.Attr("onclick", fmt.Sprintf("sfmRefresh(%q, %q); return false;", f.refreshEndpoint(), f.Name)),
		g.Attr("title", "Update the form display based on current values"),
		g.Text(text),
	)
}

// ResetButton renders the reset affordance (with confirmation).
func (f *Form) ResetButton(text string) g.Node {
	if text == "" {
		text = "Reset to Initial"
	}
	return h.Button(
		h.Type("button"),
		h.Class("sfm-reset uk-button-danger"),
		g.Attr("onclick", fmt.Sprintf("sfmReset(%q, %q); return false;", f.resetEndpoint(), f.Name)),
		g.Attr("title", "Reset the form fields to their original values"),
		g.Text(text),
	)
}

func (f *Form) refreshEndpoint() string {
	if f.refreshURL != "" {
		return f.refreshURL
	}
	return "/form/" + f.Name + "/refresh"
}

func (f *Form) resetEndpoint() string {
	if f.refreshURL != "" {
		// Comparison columns swap "refresh" for "reset" on the same base.
		return f.refreshURL[:len(f.refreshURL)-len("refresh")] + "reset"
	}
	return "/form/" + f.Name + "/reset"
}

// copyTree deep-copies a value tree so renders never mutate caller state.
func copyTree(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return copyTree(vv)
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	}
	return v
}
