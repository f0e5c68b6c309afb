// Package path models field paths: ordered segment sequences addressing a
// leaf or subtree of a form's value tree. A path has two serialized forms
// with distinct jobs: the wire name (underscore-joined, prefixed with the
// form namespace) used as the HTML input name, and the dot/bracket notation
// (entries[0].notes[1]) used by metrics and the comparison copy protocol.
package path

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// PlaceholderPrefix marks list indices assigned client-side for items not
// yet persisted. The prefix never collides with a numeric index.
const PlaceholderPrefix = "new_"

// Segment is one step of a field path: a field name or a list index.
type Segment struct {
	Key     string // field name when IsIndex is false
	Index   string // "0" or "new_<token>" when IsIndex is true
	IsIndex bool
}

// Name returns a field-name segment.
func Name(key string) Segment { return Segment{Key: key} }

// Idx returns a list-index segment from its string form.
func Idx(index string) Segment { return Segment{Index: index, IsIndex: true} }

// NumIdx returns a numeric list-index segment.
func NumIdx(n int) Segment { return Segment{Index: strconv.Itoa(n), IsIndex: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return s.Index
	}
	return s.Key
}

// Path is an ordered sequence of segments.
type Path []Segment

// Child returns a copy of p extended with seg. The receiver is not mutated;
// renderers hold paths across recursive calls.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// WireName serializes the path as an HTML input name:
// {namespace}_{segment}_{segment}... List indices are embedded as bare
// segments, e.g. form_entries_0_title or form_entries_new_173029_title.
func (p Path) WireName(namespace string) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, s := range p {
		b.WriteByte('_')
		b.WriteString(s.String())
	}
	return b.String()
}

// Notation serializes the path in dot/bracket form, e.g. entries[0].notes[1].
// Placeholder indices keep their token: entries[new_500].
func (p Path) Notation() string {
	var b strings.Builder
	for _, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(s.Index)
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

var notationSegment = regexp.MustCompile(`^([^.\[\]]+)((\[[^\[\]]+\])*)$`)

// ParseNotation reverses Notation.
func ParseNotation(s string) (Path, error) {
	if s == "" {
		return nil, eris.New("path: empty notation")
	}
	var p Path
	for _, part := range strings.Split(s, ".") {
		m := notationSegment.FindStringSubmatch(part)
		if m == nil {
			return nil, eris.Errorf("path: malformed segment %q in %q", part, s)
		}
		p = append(p, Name(m[1]))
		for _, idx := range strings.Split(m[2], "]") {
			idx = strings.TrimPrefix(idx, "[")
			if idx == "" {
				continue
			}
			if !validIndex(idx) {
				return nil, eris.Errorf("path: invalid index %q in %q", idx, s)
			}
			p = append(p, Idx(idx))
		}
	}
	return p, nil
}

// IsPlaceholder reports whether a list index is a placeholder token rather
// than a materialized numeric position.
func IsPlaceholder(index string) bool {
	return strings.HasPrefix(index, PlaceholderPrefix)
}

func validIndex(idx string) bool {
	if IsPlaceholder(idx) {
		return allDigits(idx[len(PlaceholderPrefix):])
	}
	return allDigits(idx)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SortIndices orders list indices for reconciliation: numeric ascending
// first, then placeholders ascending by token. Numeric indices are never
// renumbered mid-session, so this ordering is stable across deletes.
func SortIndices(indices []string) {
	key := func(idx string) (placeholder bool, n int64) {
		if IsPlaceholder(idx) {
			n, _ = strconv.ParseInt(idx[len(PlaceholderPrefix):], 10, 64)
			return true, n
		}
		n, _ = strconv.ParseInt(idx, 10, 64)
		return false, n
	}
	sort.Slice(indices, func(i, j int) bool {
		ap, an := key(indices[i])
		bp, bn := key(indices[j])
		if ap != bp {
			return !ap
		}
		if an != bn {
			return an < bn
		}
		return indices[i] < indices[j]
	})
}
