// Package parse reconciles a flat form submission back into a nested value
// tree shaped by the schema. It is deliberately lenient: malformed scalars
// are preserved raw so a refresh never destroys in-progress edits, and
// validation is a separate pass.
package parse

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/schema/defaults"
)

// Parse rebuilds the nested value tree for a schema from a submission. The
// submission is the decoded form body; multi-select fields carry one value
// per selected pill under the same wire name.
//
// Precedence per field: submitted value, then initial value, then declared
// or synthesized default. Checkboxes are an exception: a rendered checkbox
// that is unchecked is simply absent from the submission, so absence of a
// non-excluded boolean means false. Hidden and excluded fields are never
// rendered and always resolve initial-then-default.
//
// List membership and order come entirely from the submitted wire names:
// persisted indices sort numerically, placeholder indices append after in
// creation order, and the result is re-packed densely.
func Parse(submission url.Values, s *schema.Schema, namespace string, initial map[string]any, exclude map[string]bool) (map[string]any, error) {
	if s == nil {
		return nil, eris.New("parse: nil schema")
	}
	if namespace == "" {
		return nil, eris.New("parse: empty namespace")
	}
	p := &parser{
		submission: submission,
		exclude:    exclude,
		clock:      defaults.RealClock{},
	}
	return p.record(namespace, "", s.Fields, initial), nil
}

type parser struct {
	submission url.Values
	exclude    map[string]bool
	clock      defaults.Clock
}

// record reconciles one record level. wire is the wire-name prefix for the
// level, notation its dot/bracket prefix ("" at the root).
func (p *parser) record(wire, notation string, fields []schema.Field, initial map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for i := range fields {
		f := &fields[i]
		fieldWire := wire + "_" + f.Name
		fieldNotation := f.Name
		if notation != "" {
			fieldNotation = notation + "." + f.Name
		}
		iv, ivOK := initialValue(initial, f.Name)
		out[f.Name] = p.value(fieldWire, fieldNotation, f, iv, ivOK)
	}
	return out
}

// value reconciles one field.
func (p *parser) value(wire, notation string, f *schema.Field, initial any, initialOK bool) any {
	cls := schema.ClassifyField(f)

	if cls.Kind == schema.KindHidden || p.excluded(notation, f.Name) {
		if initialOK {
			return initial
		}
		return defaults.ForField(f, p.clock)
	}

	switch cls.Kind {
	case schema.KindList:
		return p.list(wire, notation, f.Type, initial)
	case schema.KindRecord:
		im, _ := initial.(map[string]any)
		return p.record(wire, notation, f.Type.Fields, im)
	case schema.KindBoolean:
		vals, ok := p.submission[wire]
		if !ok || len(vals) == 0 {
			return false
		}
		return coerceCheckbox(vals[0])
	case schema.KindChoice:
		if f.Type.Multiple {
			if vals, ok := p.submission[wire]; ok {
				out := make([]string, len(vals))
				copy(out, vals)
				return out
			}
			if initialOK {
				return initial
			}
			return []string{}
		}
		fallthrough
	default:
		vals, ok := p.submission[wire]
		if !ok || len(vals) == 0 {
			if initialOK {
				return initial
			}
			return defaults.ForField(f, p.clock)
		}
		return coerceScalar(f.Type, vals[0])
	}
}

// list discovers item indices from submitted wire names, orders them, and
// reconciles each item recursively.
func (p *parser) list(wire, notation string, t *schema.Type, initial any) []any {
	indices := ListIndices(p.submission, wire)
	if len(indices) == 0 {
		return []any{}
	}

	initialItems, _ := initial.([]any)

	out := make([]any, 0, len(indices))
	for outIdx, idx := range indices {
		itemWire := wire + "_" + idx
		itemNotation := notation + "[" + strconv.Itoa(outIdx) + "]"

		// Persisted indices can line up with the initial tree; placeholder
		// items have no initial counterpart by definition.
		var itemInitial any
		var itemInitialOK bool
		if !path.IsPlaceholder(idx) {
			if n, err := strconv.Atoi(idx); err == nil && n >= 0 && n < len(initialItems) {
				itemInitial = initialItems[n]
				itemInitialOK = true
			}
		}

		itemField := schema.Field{Name: idx, Type: t.Elem}
		out = append(out, p.value(itemWire, itemNotation, &itemField, itemInitial, itemInitialOK))
	}
	return out
}

// ListIndices scans submitted wire names for direct children of a list
// prefix and returns the unique index tokens in canonical order: numeric
// ascending, then placeholders in creation order. The copy protocol uses
// this too, to resolve an index token to its list position.
func ListIndices(submission url.Values, wire string) []string {
	prefix := wire + "_"
	seen := map[string]bool{}
	var out []string
	for key := range submission {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		idx, ok := indexToken(key[len(prefix):])
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	path.SortIndices(out)
	return out
}

// indexToken extracts a leading list index from the remainder of a wire
// name: a run of digits, or the placeholder prefix followed by digits.
func indexToken(rest string) (string, bool) {
	tail := rest
	prefix := ""
	if strings.HasPrefix(rest, path.PlaceholderPrefix) {
		prefix = path.PlaceholderPrefix
		tail = rest[len(path.PlaceholderPrefix):]
	}
	end := 0
	for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
		end++
	}
	if end == 0 {
		return "", false
	}
	if end < len(tail) && tail[end] != '_' {
		return "", false
	}
	return prefix + tail[:end], true
}

func (p *parser) excluded(notation, name string) bool {
	return p.exclude[notation] || p.exclude[name]
}

// coerceScalar converts a raw submitted string to the canonical shape for
// its type. Values that do not convert are kept raw so nothing is lost on
// refresh.
func coerceScalar(t *schema.Type, raw string) any {
	switch schema.Classify(t).Kind {
	case schema.KindNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if t.Optional {
				return nil
			}
			return raw
		}
		if t.Float {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return f
			}
		} else if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		return raw
	case schema.KindDecimal:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if t.Optional {
				return nil
			}
			return raw
		}
		if d, err := decimal.NewFromString(trimmed); err == nil {
			return d
		}
		return raw
	case schema.KindChoice:
		if raw == "" && t.Optional {
			return nil
		}
		return raw
	case schema.KindString, schema.KindDate, schema.KindTime:
		if raw == "" && t.Optional {
			return nil
		}
		return raw
	}
	return raw
}

func coerceCheckbox(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// initialValue looks a field up in the initial tree, distinguishing an
// explicit nil from absence.
func initialValue(initial map[string]any, name string) (any, bool) {
	if initial == nil {
		return nil, false
	}
	v, ok := initial[name]
	return v, ok
}
