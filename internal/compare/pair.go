// Package compare binds two form instances into a synchronized dual-column
// view and implements the copy protocol between them.
package compare

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/form"
)

// Side names one column of a pair.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Other returns the opposite column.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// ParseSide converts a route parameter into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideLeft, SideRight:
		return Side(s), nil
	}
	return "", eris.Errorf("compare: unknown side %q", s)
}

// Pair is two forms over one schema rendered side by side. Copy direction
// is a per-request parameter, never a property of the pair.
type Pair struct {
	ID    string
	Name  string
	Left  *form.Form
	Right *form.Form

	LeftLabel  string
	RightLabel string
}

// PairOption configures a Pair.
type PairOption func(*Pair)

// WithLabels sets the column headings.
func WithLabels(left, right string) PairOption {
	return func(p *Pair) {
		p.LeftLabel = left
		p.RightLabel = right
	}
}

// NewPair assembles a comparison pair. Both forms must share one schema so
// every path addresses the same field shape on both sides.
func NewPair(name string, left, right *form.Form, opts ...PairOption) (*Pair, error) {
	if name == "" {
		return nil, eris.New("compare: empty pair name")
	}
	if left == nil || right == nil {
		return nil, eris.New("compare: both sides required")
	}
	if left.Schema != right.Schema {
		return nil, eris.Errorf("compare: forms %q and %q do not share a schema", left.Name, right.Name)
	}
	if left.Name == right.Name {
		return nil, eris.Errorf("compare: sides must have distinct namespaces, both are %q", left.Name)
	}

	p := &Pair{
		ID:         uuid.NewString(),
		Name:       name,
		Left:       left,
		Right:      right,
		LeftLabel:  "Left",
		RightLabel: "Right",
	}
	for _, opt := range opts {
		opt(p)
	}

	left.BindComparison(name, "/compare/"+name+"/left/refresh", string(SideRight))
	right.BindComparison(name, "/compare/"+name+"/right/refresh", string(SideLeft))

	zap.L().Info("compare: pair assembled",
		zap.String("pair", name),
		zap.String("left", left.Name),
		zap.String("right", right.Name),
	)
	return p, nil
}

// Form returns the form for a side.
func (p *Pair) Form(s Side) *form.Form {
	if s == SideLeft {
		return p.Left
	}
	return p.Right
}

// RenderGrid renders both columns in a two-column grid. Fields align by
// declaration order; each side refreshes independently by swapping only its
// own inputs wrapper, so one side's refresh, reset, or copy never touches
// the other side's accordion state.
func (p *Pair) RenderGrid() g.Node {
	return h.Div(
		h.ID(p.Name+"-compare-grid"),
		h.Class("sfm-compare grid grid-cols-2 gap-x-6 gap-y-2 items-start"),
		p.RenderColumn(SideLeft),
		p.RenderColumn(SideRight),
		SyncScript(),
	)
}

// RenderColumn renders one side: heading, per-side controls, and the form
// inputs. Per-side refresh and reset swap only the inputs wrapper inside.
func (p *Pair) RenderColumn(s Side) g.Node {
	f := p.Form(s)
	label := p.LeftLabel
	if s == SideRight {
		label = p.RightLabel
	}
	return h.Div(
		h.ID(p.Name+"-"+string(s)+"-column"),
		h.Class("sfm-compare-column flex flex-col"),
		h.Div(
			h.Class("flex items-center justify-between mb-2"),
			h.H3(h.Class("text-lg font-semibold"), g.Text(label)),
			h.Div(
				h.Class("flex items-center space-x-2"),
				f.RefreshButton("Refresh"),
				f.ResetButton("Reset"),
			),
		),
		f.RenderInputs(),
	)
}

// RefreshSide reconciles one column's submission and re-renders only that
// column's inputs.
func (p *Pair) RefreshSide(s Side, submission url.Values) g.Node {
	return p.Form(s).Refresh(submission)
}

// ResetSide restores one column to its initial values.
func (p *Pair) ResetSide(s Side) g.Node {
	return p.Form(s).Reset()
}
