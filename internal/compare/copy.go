package compare

import (
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/sells-group/schemaform/internal/form"
	"github.com/sells-group/schemaform/internal/parse"
	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
)

// copyKind classifies a copy request by the shape of its path.
type copyKind int

const (
	copyScalar copyKind = iota
	copyFullList
	copyListItem
	copyItemSubfield
)

// ApplyCopy executes one copy action: reconcile both sides from the
// submission, transfer the value at the notation path from the source side
// into the other side, and re-render only the target column's inputs.
//
// Semantics by path shape:
//   - scalar (no indices): value copied verbatim; pill selections replace
//     the target's set entirely.
//   - full list (path ends on a list field, no indices): the target list
//     becomes a copy of the source list, existing items overwritten and
//     extra source items appended.
//   - single item (path ends on an index): always appended to the target
//     list as a new item, never overwriting.
//   - item subfield (index followed by field names): updates that subfield
//     on the positionally corresponding target item; if the target has no
//     item at that position the copy fails without touching target state.
func (p *Pair) ApplyCopy(source Side, notation string, submission url.Values) (g.Node, error) {
	pth, err := path.ParseNotation(notation)
	if err != nil {
		return nil, eris.Wrapf(err, "compare: copy path %q", notation)
	}
	kind, err := classify(pth, p.Left.Schema)
	if err != nil {
		return nil, err
	}

	src := p.Form(source)
	dst := p.Form(source.Other())
	if dst.Disabled() {
		return nil, eris.Errorf("compare: form %q is read-only", dst.Name)
	}

	srcVals, err := src.Parse(submission)
	if err != nil {
		return nil, eris.Wrap(err, "compare: parse source side")
	}
	dstVals, err := dst.Parse(submission)
	if err != nil {
		return nil, eris.Wrap(err, "compare: parse target side")
	}

	switch kind {
	case copyScalar, copyFullList:
		steps := nameSteps(pth)
		v, err := getAt(srcVals, steps)
		if err != nil {
			return nil, err
		}
		if err := setAt(dstVals, steps, deepCopy(v)); err != nil {
			return nil, err
		}

	case copyListItem:
		srcSteps, err := resolveSteps(src, pth, submission)
		if err != nil {
			return nil, err
		}
		item, err := getAt(srcVals, srcSteps)
		if err != nil {
			return nil, err
		}
		listSteps := srcSteps[:len(srcSteps)-1]
		held, err := getAt(dstVals, listSteps)
		if err != nil {
			return nil, eris.Wrap(err, "compare: target list not present at source item position")
		}
		list, ok := held.([]any)
		if !ok {
			return nil, eris.Errorf("compare: target path %q is not a list", notation)
		}
		if err := setAt(dstVals, listSteps, append(list, deepCopy(item))); err != nil {
			return nil, err
		}

	case copyItemSubfield:
		srcSteps, err := resolveSteps(src, pth, submission)
		if err != nil {
			return nil, err
		}
		v, err := getAt(srcVals, srcSteps)
		if err != nil {
			return nil, err
		}
		// The target item is addressed by position. A missing item is an
		// explicit error, never a create-on-demand.
		if _, err := getAt(dstVals, srcSteps[:len(srcSteps)-1]); err != nil {
			return nil, eris.Wrapf(err, "compare: no corresponding target item for %q", notation)
		}
		if err := setAt(dstVals, srcSteps, deepCopy(v)); err != nil {
			return nil, err
		}
	}

	zap.L().Debug("compare: copy applied",
		zap.String("pair", p.Name),
		zap.String("path", notation),
		zap.String("source", string(source)),
	)
	return dst.CloneWithValues(dstVals).RenderInputs(), nil
}

// classify determines the copy kind and validates the path against the
// shared schema.
func classify(pth path.Path, s *schema.Schema) (copyKind, error) {
	t, err := typeAt(pth, s)
	if err != nil {
		return 0, err
	}
	hasIndex := false
	for _, seg := range pth[:len(pth)-1] {
		if seg.IsIndex {
			hasIndex = true
			break
		}
	}
	switch {
	case pth[len(pth)-1].IsIndex:
		return copyListItem, nil
	case hasIndex:
		return copyItemSubfield, nil
	case schema.Classify(t).Kind == schema.KindList:
		return copyFullList, nil
	}
	return copyScalar, nil
}

// typeAt walks the schema along a path and returns the addressed type.
func typeAt(pth path.Path, s *schema.Schema) (*schema.Type, error) {
	if len(pth) == 0 {
		return nil, eris.New("compare: empty copy path")
	}
	var t *schema.Type
	fields := s.Fields
	for _, seg := range pth {
		if seg.IsIndex {
			if t == nil || schema.Classify(t).Kind != schema.KindList {
				return nil, eris.Errorf("compare: index %q not under a list", seg.Index)
			}
			t = t.Elem
			continue
		}
		if t != nil {
			if schema.Classify(t).Kind != schema.KindRecord {
				return nil, eris.Errorf("compare: field %q not under a record", seg.Key)
			}
			fields = t.Fields
		}
		var found *schema.Field
		for i := range fields {
			if fields[i].Name == seg.Key {
				found = &fields[i]
				break
			}
		}
		if found == nil {
			return nil, eris.Errorf("compare: path addresses unknown field %q", seg.Key)
		}
		t = found.Type
	}
	return t, nil
}

// step is one move through a value tree: a record field by name or a list
// item by position.
type step struct {
	name    string
	pos     int
	isIndex bool
}

// nameSteps converts an index-free path to steps.
func nameSteps(pth path.Path) []step {
	out := make([]step, len(pth))
	for i, seg := range pth {
		out[i] = step{name: seg.Key}
	}
	return out
}

// resolveSteps converts a path to positional steps on one side. Index
// tokens resolve via the side's own submitted wire names, so a placeholder
// index lands on the same position the reconciler packs it into.
func resolveSteps(f *form.Form, pth path.Path, submission url.Values) ([]step, error) {
	out := make([]step, 0, len(pth))
	var wirePath path.Path
	for _, seg := range pth {
		if !seg.IsIndex {
			wirePath = wirePath.Child(seg)
			out = append(out, step{name: seg.Key})
			continue
		}
		wire := wirePath.WireName(f.Name)
		pos := -1
		for i, idx := range parse.ListIndices(submission, wire) {
			if idx == seg.Index {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, eris.Errorf("compare: list index %q not present in submission for %q", seg.Index, wirePath.Notation())
		}
		wirePath = wirePath.Child(seg)
		out = append(out, step{pos: pos, isIndex: true})
	}
	return out, nil
}

// getAt reads a value tree along resolved steps.
func getAt(tree map[string]any, steps []step) (any, error) {
	var cur any = tree
	for _, st := range steps {
		if st.isIndex {
			list, ok := cur.([]any)
			if !ok {
				return nil, eris.New("compare: path steps into a non-list value")
			}
			if st.pos < 0 || st.pos >= len(list) {
				return nil, eris.Errorf("compare: list has no item at position %d", st.pos)
			}
			cur = list[st.pos]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, eris.Errorf("compare: path steps into a non-record value at %q", st.name)
		}
		v, ok := m[st.name]
		if !ok {
			return nil, eris.Errorf("compare: value tree has no field %q", st.name)
		}
		cur = v
	}
	return cur, nil
}

// setAt writes a value into a tree along resolved steps. Every container on
// the way must already exist; copies never materialize structure.
func setAt(tree map[string]any, steps []step, v any) error {
	parent, err := getAt(tree, steps[:len(steps)-1])
	if err != nil {
		return err
	}
	last := steps[len(steps)-1]
	if last.isIndex {
		list, ok := parent.([]any)
		if !ok {
			return eris.New("compare: path steps into a non-list value")
		}
		if last.pos < 0 || last.pos >= len(list) {
			return eris.Errorf("compare: list has no item at position %d", last.pos)
		}
		list[last.pos] = v
		return nil
	}
	m, ok := parent.(map[string]any)
	if !ok {
		return eris.Errorf("compare: path steps into a non-record value at %q", last.name)
	}
	m[last.name] = v
	return nil
}

// deepCopy clones a value tree so source and target never alias.
func deepCopy(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = deepCopy(item)
		}
		return out
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	}
	return v
}
