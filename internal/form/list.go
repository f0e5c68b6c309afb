package form

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/render"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/schema/defaults"
)

// AddItem renders a single fresh item card for the list addressed by route.
// The card gets a placeholder index so it cannot collide with persisted
// items; the next refresh or parse folds it into the value tree.
//
// Routes are slash-joined path segments as emitted by the list renderer,
// e.g. "entries" or "entries/0/notes" for a nested list.
func (f *Form) AddItem(route string) (g.Node, error) {
	fld, listPath, err := f.resolveList(route)
	if err != nil {
		return nil, err
	}

	item := defaults.ForType(fld.Type.Elem, f.clock)
	token := f.tokens.NextPlaceholder()

	c := f.baseContext()
	c.Field = fld
	c.Path = listPath
	c.Disabled = f.disabled
	c.Open = true

	zap.L().Debug("form: add list item",
		zap.String("form", f.Name),
		zap.String("route", route),
		zap.String("index", token),
	)
	return render.ListRenderer{}.ItemCard(c, item, path.Idx(token)), nil
}

// DeleteItem validates that route addresses a known list and returns the
// empty fragment that replaces the removed card. The index is accepted as
// sent; a stale one simply no-ops in the DOM.
func (f *Form) DeleteItem(route, idx string) (g.Node, error) {
	if _, _, err := f.resolveList(route); err != nil {
		return nil, err
	}
	zap.L().Debug("form: delete list item",
		zap.String("form", f.Name),
		zap.String("route", route),
		zap.String("index", idx),
	)
	return g.Raw(""), nil
}

// resolveList walks the schema along a slash-joined route and returns the
// addressed list field together with its full path.
func (f *Form) resolveList(route string) (*schema.Field, path.Path, error) {
	route = strings.Trim(route, "/")
	if route == "" {
		return nil, nil, eris.New("form: empty list route")
	}
	segs := strings.Split(route, "/")

	fields := f.Schema.Fields
	var p path.Path
	var fld *schema.Field
	var t *schema.Type

	i := 0
	for i < len(segs) {
		name := segs[i]
		fld = findField(fields, name)
		if fld == nil {
			return nil, nil, eris.Errorf("form: unknown field %q in list route %q", name, route)
		}
		p = p.Child(path.Name(name))
		t = fld.Type
		i++

		// Indices between a list field and a deeper field step into items.
		for i < len(segs) && schema.Classify(t).Kind == schema.KindList && isIndexSegment(segs[i]) {
			p = p.Child(path.Idx(segs[i]))
			t = t.Elem
			i++
		}

		if i >= len(segs) {
			break
		}
		if schema.Classify(t).Kind != schema.KindRecord {
			return nil, nil, eris.Errorf("form: route %q descends into non-record field %q", route, name)
		}
		fields = t.Fields
	}

	if t == nil || schema.Classify(t).Kind != schema.KindList {
		return nil, nil, eris.Errorf("form: route %q does not address a list", route)
	}
	return fld, p, nil
}

func findField(fields []schema.Field, name string) *schema.Field {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

func isIndexSegment(seg string) bool {
	if path.IsPlaceholder(seg) {
		return true
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(seg) > 0
}
