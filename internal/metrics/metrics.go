// Package metrics overlays score annotations onto rendered fields. The
// decoration is purely visual: it never alters a field's editable value.
package metrics

import (
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/schema"
)

// Entry annotates one field path with a quality score, an optional explicit
// color override, and an optional comment shown as a tooltip.
type Entry struct {
	Score   *float64
	Color   string
	Comment string
}

// Map associates dot/bracket field paths with entries.
type Map map[string]Entry

// Get returns the entry for an exact path, or nil.
func (m Map) Get(notation string) *Entry {
	if m == nil {
		return nil
	}
	if e, ok := m[notation]; ok {
		return &e
	}
	return nil
}

// Score is a convenience for building *float64 entries.
func Score(v float64) *float64 { return &v }

// ColorForScore maps a score onto the fixed threshold buckets. An explicit
// entry color always wins over the bucket color.
func ColorForScore(score float64) string {
	switch {
	case score < 0.33:
		return "#dc2626" // red
	case score < 0.67:
		return "#991b1b" // dark red
	case score < 1.0:
		return "#16a34a" // green
	default:
		return "#22c55e" // bright green
	}
}

// EffectiveColor resolves an entry's display color.
func (e *Entry) EffectiveColor() string {
	if e.Color != "" {
		return e.Color
	}
	if e.Score != nil {
		return ColorForScore(*e.Score)
	}
	return ""
}

// Scope selects which decorations Decorate applies.
type Scope int

const (
	ScopeBorder Scope = iota
	ScopeBullet
	ScopeBoth
)

// BorderStyle returns the entry's inline border indicator, or "" when the
// entry resolves no color.
func (e *Entry) BorderStyle() string {
	color := e.EffectiveColor()
	if color == "" {
		return ""
	}
	return fmt.Sprintf("border-left: 4px solid %s; padding-left: 0.5rem;", color)
}

// Badge renders the entry's score bullet.
func Badge(e *Entry) g.Node {
	return badge(e, e.EffectiveColor())
}

// Decorate wraps a rendered field with the entry's visual indicators. It is
// additive and intended to run once per render; it does not inspect or
// rewrite the wrapped markup. Elements that cannot take a block wrapper
// (list item cards) apply BorderStyle and Badge directly instead.
func Decorate(node g.Node, e *Entry, scope Scope) g.Node {
	if e == nil {
		return node
	}

	var attrs []g.Node
	if st := e.BorderStyle(); st != "" && (scope == ScopeBorder || scope == ScopeBoth) {
		attrs = append(attrs, h.Style(st))
	}
	if e.Comment != "" {
		attrs = append(attrs, g.Attr("title", e.Comment))
	}

	children := []g.Node{node}
	if scope == ScopeBullet || scope == ScopeBoth {
		children = append(children, Badge(e))
	}

	return h.Div(append(attrs, children...)...)
}

func badge(e *Entry, color string) g.Node {
	label := ""
	if e.Score != nil {
		label = fmt.Sprintf("%.2f", *e.Score)
	}
	style := "display:inline-block; margin-left:0.25rem; padding:0 0.4rem; border-radius:9999px; font-size:0.7rem; color:white;"
	if color != "" {
		style += " background-color:" + color + ";"
	}
	return h.Span(
		h.Class("sfm-metric-badge"),
		h.Style(style),
		g.If(e.Comment != "", g.Attr("title", e.Comment)),
		g.Text(label),
	)
}

// SimpleDiff builds an equality-based metric map for two value trees over the
// same schema: 1.0 for equal fields, 0.0 when one side is missing, a crude
// character-overlap ratio for differing strings. Records and lists are
// compared per leaf, keyed by dot/bracket notation, so nested entries land on
// the fields and item cards that render them.
func SimpleDiff(left, right map[string]any, s *schema.Schema) Map {
	out := make(Map, len(s.Fields))
	diffFields("", s.Fields, left, right, out)
	return out
}

func diffFields(prefix string, fields []schema.Field, left, right map[string]any, out Map) {
	for i := range fields {
		f := &fields[i]
		notation := f.Name
		if prefix != "" {
			notation = prefix + "." + f.Name
		}
		var lv, rv any
		if left != nil {
			lv = left[f.Name]
		}
		if right != nil {
			rv = right[f.Name]
		}
		diffValue(notation, f.Type, lv, rv, out)
	}
}

func diffValue(notation string, t *schema.Type, lv, rv any, out Map) {
	switch t.Kind {
	case schema.KindRecord:
		lm, _ := lv.(map[string]any)
		rm, _ := rv.(map[string]any)
		if lm == nil && rm == nil {
			out[notation] = diffLeaf(lv, rv)
			return
		}
		diffFields(notation, t.Fields, lm, rm, out)
	case schema.KindList:
		ll, _ := lv.([]any)
		rl, _ := rv.([]any)
		n := len(ll)
		if len(rl) > n {
			n = len(rl)
		}
		for i := 0; i < n; i++ {
			var le, re any
			if i < len(ll) {
				le = ll[i]
			}
			if i < len(rl) {
				re = rl[i]
			}
			diffValue(fmt.Sprintf("%s[%d]", notation, i), t.Elem, le, re, out)
		}
	default:
		out[notation] = diffLeaf(lv, rv)
	}
}

func diffLeaf(lv, rv any) Entry {
	switch {
	case equalDisplay(lv, rv):
		return Entry{Score: Score(1.0), Color: "green", Comment: "Values match exactly"}
	case lv == nil || rv == nil:
		return Entry{Score: Score(0.0), Color: "orange", Comment: "One value is missing"}
	}
	ls, lok := lv.(string)
	rs, rok := rv.(string)
	if lok && rok {
		sim := overlap(ls, rs)
		return Entry{Score: Score(sim), Comment: fmt.Sprintf("String similarity: %.0f%%", sim*100)}
	}
	return Entry{Score: Score(0.0), Comment: fmt.Sprintf("Different values: %v vs %v", lv, rv)}
}

func equalDisplay(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return schema.DisplayValue(a) == schema.DisplayValue(b)
}

func overlap(a, b string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	common := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			common++
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	if max == 0 {
		return 0
	}
	return float64(common) / float64(max)
}
