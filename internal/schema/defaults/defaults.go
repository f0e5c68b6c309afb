// Package defaults synthesizes fully-populated default value trees for
// schemas. It is the only place the schema package's unset sentinel is
// allowed to appear; nothing past this boundary ever sees it.
package defaults

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/schemaform/internal/schema"
)

// Clock supplies the current time for date and time defaults. Injected so
// tests are deterministic.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time { return time.Now() }

// ForType returns a type-appropriate default value for a bare type
// descriptor, with no field-level default declared.
func ForType(t *schema.Type, clock Clock) any {
	c := schema.Classify(t)
	if c.Optional {
		return nil
	}
	switch c.Kind {
	case schema.KindString, schema.KindHidden, schema.KindCustom:
		return ""
	case schema.KindNumber:
		if t.Float {
			return 0.0
		}
		return int64(0)
	case schema.KindDecimal:
		return decimal.Zero
	case schema.KindBoolean:
		return false
	case schema.KindDate:
		return clock.Now().Format(schema.DateLayout)
	case schema.KindTime:
		return "00:00"
	case schema.KindChoice:
		if t.Multiple {
			return []string{}
		}
		return t.Choices[0]
	case schema.KindList:
		return []any{}
	case schema.KindRecord:
		out := make(map[string]any, len(t.Fields))
		for i := range t.Fields {
			f := &t.Fields[i]
			out[f.Name] = ForField(f, clock)
		}
		return out
	}
	return nil
}

// ForField resolves a field's default with the layered policy: explicit
// default, then default func, then the type-appropriate value. The unset
// sentinel is normalized here and never escapes.
func ForField(f *schema.Field, clock Clock) any {
	if v := f.DeclaredDefault(); !schema.IsUnset(v) {
		return normalize(f.Type, v, clock)
	}
	return ForType(f.Type, clock)
}

// ForSchema synthesizes a complete default value tree for a schema.
func ForSchema(s *schema.Schema, clock Clock) map[string]any {
	out := make(map[string]any, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		out[f.Name] = ForField(f, clock)
	}
	return out
}

// normalize converts declared defaults into the canonical value shapes the
// form layer works with (e.g. YAML decodes lists as []any, ints as int).
func normalize(t *schema.Type, v any, clock Clock) any {
	if v == nil || schema.IsUnset(v) {
		return nil
	}
	switch schema.Classify(t).Kind {
	case schema.KindNumber:
		switch n := v.(type) {
		case int:
			if t.Float {
				return float64(n)
			}
			return int64(n)
		case float64:
			if !t.Float && n == float64(int64(n)) {
				return int64(n)
			}
		}
	case schema.KindDecimal:
		switch d := v.(type) {
		case string:
			if dec, err := decimal.NewFromString(d); err == nil {
				return dec
			}
		case float64:
			return decimal.NewFromFloat(d)
		case int:
			return decimal.NewFromInt(int64(d))
		}
	case schema.KindList:
		if items, ok := v.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = normalize(t.Elem, item, clock)
			}
			return out
		}
		if items, ok := v.([]string); ok {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = item
			}
			return out
		}
	case schema.KindRecord:
		if rec, ok := v.(map[string]any); ok {
			out := make(map[string]any, len(t.Fields))
			for i := range t.Fields {
				f := &t.Fields[i]
				if nv, present := rec[f.Name]; present {
					out[f.Name] = normalize(f.Type, nv, clock)
				} else {
					out[f.Name] = ForField(f, clock)
				}
			}
			return out
		}
	}
	return v
}
