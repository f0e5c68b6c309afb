package path

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schemaform/internal/schema"
)

// ParseWire reverses WireName against a schema, recovering the field path a
// wire name addresses. Field names may themselves contain underscores, so
// the walk is schema-guided: at each record level the longest declared field
// name that prefixes the remainder wins. Within one form the mapping is
// bijective (wire-name uniqueness follows from field-name uniqueness per
// record plus index uniqueness per list).
//
// The walk never backtracks, so a record whose field names overlap under
// joining can shadow each other: with sibling fields "a_b" and "a" where "a"
// holds a nested "b", the wire remainder "a_b" always resolves to the field
// literally named "a_b". Schemas should avoid declaring a field whose name
// equals a sibling's name joined with a path through that sibling.
func ParseWire(namespace, wire string, s *schema.Schema) (Path, error) {
	prefix := namespace + "_"
	if !strings.HasPrefix(wire, prefix) {
		return nil, eris.Errorf("path: wire name %q not in namespace %q", wire, namespace)
	}
	rest := wire[len(prefix):]
	p, err := matchFields(s.Fields, rest, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "path: wire name %q", wire)
	}
	return p, nil
}

func matchFields(fields []schema.Field, rest string, prefix Path) (Path, error) {
	// Longest field name first so e.g. "other_addresses" beats "other".
	names := make([]string, len(fields))
	byName := make(map[string]*schema.Field, len(fields))
	for i := range fields {
		names[i] = fields[i].Name
		byName[fields[i].Name] = &fields[i]
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		if rest == name {
			return prefix.Child(Name(name)), nil
		}
		if strings.HasPrefix(rest, name+"_") {
			f := byName[name]
			return matchType(f.Type, rest[len(name)+1:], prefix.Child(Name(name)))
		}
	}
	return nil, eris.Errorf("no field matches %q", rest)
}

func matchType(t *schema.Type, rest string, prefix Path) (Path, error) {
	if rest == "" {
		return prefix, nil
	}
	switch schema.Classify(t).Kind {
	case schema.KindList:
		idx, remainder, err := consumeIndex(rest)
		if err != nil {
			return nil, err
		}
		return matchType(t.Elem, remainder, prefix.Child(Idx(idx)))
	case schema.KindRecord:
		return matchFields(t.Fields, rest, prefix)
	}
	return nil, eris.Errorf("trailing segments %q after scalar field", rest)
}

// consumeIndex takes a list index off the front of a wire remainder. The
// index is either a run of digits or a placeholder token (new_<digits>).
func consumeIndex(rest string) (idx, remainder string, err error) {
	candidate := rest
	if cut := strings.IndexByte(rest, '_'); cut >= 0 {
		candidate = rest[:cut]
	}
	if allDigits(candidate) {
		return candidate, trimJoint(rest[len(candidate):]), nil
	}
	if strings.HasPrefix(rest, PlaceholderPrefix) {
		tail := rest[len(PlaceholderPrefix):]
		digits := tail
		if cut := strings.IndexByte(tail, '_'); cut >= 0 {
			digits = tail[:cut]
		}
		if allDigits(digits) {
			idx = PlaceholderPrefix + digits
			return idx, trimJoint(rest[len(idx):]), nil
		}
	}
	return "", "", eris.Errorf("expected list index at %q", rest)
}

func trimJoint(s string) string {
	return strings.TrimPrefix(s, "_")
}
