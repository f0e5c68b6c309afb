package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout and TimeLayout are the canonical value formats for date and time
// fields throughout the form layer (ISO-8601 date, HH:MM time).
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FieldError is a validation failure located at one field path
// (dot/bracket notation, e.g. "entries[0].rating").
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// ErrorList collects per-field validation errors.
type ErrorList []FieldError

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate is the constraint-checking delegate: it coerces a reconciled value
// tree into typed values and reports every failure tagged with its field path.
// The form layer never performs this itself; reconciliation defers all scalar
// coercion here so errors land on precise paths.
func Validate(s *Schema, tree map[string]any) (map[string]any, ErrorList) {
	var errs ErrorList
	out := make(map[string]any, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		v, ok := tree[f.Name]
		out[f.Name] = validateValue(f.Name, f.Type, v, ok, &errs)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func validateValue(path string, t *Type, v any, present bool, errs *ErrorList) any {
	if !present || v == nil {
		if t.Optional || t.Kind == KindList {
			if t.Kind == KindList {
				return []any{}
			}
			return nil
		}
		errs.add(path, "is required")
		return nil
	}

	switch Classify(t).Kind {
	case KindString, KindHidden, KindCustom:
		return DisplayValue(v)
	case KindNumber:
		return coerceNumber(path, t, v, errs)
	case KindDecimal:
		return coerceDecimal(path, v, errs)
	case KindBoolean:
		return coerceBool(path, v, errs)
	case KindDate:
		return coerceDate(path, v, errs)
	case KindTime:
		return coerceTime(path, v, errs)
	case KindChoice:
		return coerceChoice(path, t, v, errs)
	case KindList:
		items, ok := v.([]any)
		if !ok {
			errs.add(path, "expected a list")
			return nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = validateValue(fmt.Sprintf("%s[%d]", path, i), t.Elem, item, true, errs)
		}
		return out
	case KindRecord:
		rec, ok := v.(map[string]any)
		if !ok {
			errs.add(path, "expected a record")
			return nil
		}
		out := make(map[string]any, len(t.Fields))
		for i := range t.Fields {
			nf := &t.Fields[i]
			nv, nok := rec[nf.Name]
			out[nf.Name] = validateValue(path+"."+nf.Name, nf.Type, nv, nok, errs)
		}
		return out
	}
	return v
}

func (l *ErrorList) add(path, msg string) {
	*l = append(*l, FieldError{Path: path, Message: msg})
}

func coerceNumber(path string, t *Type, v any, errs *ErrorList) any {
	switch n := v.(type) {
	case int:
		if t.Float {
			return float64(n)
		}
		return int64(n)
	case int64:
		if t.Float {
			return float64(n)
		}
		return n
	case float64:
		if t.Float {
			return n
		}
		if n == float64(int64(n)) {
			return int64(n)
		}
		errs.add(path, "must be an integer")
		return nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			if t.Optional {
				return nil
			}
			errs.add(path, "is required")
			return nil
		}
		if t.Float {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				errs.add(path, "must be a number")
				return nil
			}
			return f
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			errs.add(path, "must be an integer")
			return nil
		}
		return i
	}
	errs.add(path, "must be a number")
	return nil
}

func coerceDecimal(path string, v any, errs *ErrorList) any {
	switch d := v.(type) {
	case decimal.Decimal:
		return d
	case string:
		if strings.TrimSpace(d) == "" {
			errs.add(path, "is required")
			return nil
		}
		dec, err := decimal.NewFromString(strings.TrimSpace(d))
		if err != nil {
			errs.add(path, "must be a decimal number")
			return nil
		}
		return dec
	case float64:
		return decimal.NewFromFloat(d)
	case int:
		return decimal.NewFromInt(int64(d))
	case int64:
		return decimal.NewFromInt(d)
	}
	errs.add(path, "must be a decimal number")
	return nil
}

func coerceBool(path string, v any, errs *ErrorList) any {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on", "1", "yes":
			return true
		case "false", "off", "0", "no", "":
			return false
		}
	}
	errs.add(path, "must be a boolean")
	return nil
}

func coerceDate(path string, v any, errs *ErrorList) any {
	switch d := v.(type) {
	case time.Time:
		return d.Format(DateLayout)
	case string:
		if _, err := time.Parse(DateLayout, d); err != nil {
			errs.add(path, "must be a date in YYYY-MM-DD format")
			return nil
		}
		return d
	}
	errs.add(path, "must be a date")
	return nil
}

func coerceTime(path string, v any, errs *ErrorList) any {
	switch tv := v.(type) {
	case time.Time:
		return tv.Format(TimeLayout)
	case string:
		if _, err := time.Parse(TimeLayout, tv); err != nil {
			errs.add(path, "must be a time in HH:MM format")
			return nil
		}
		return tv
	}
	errs.add(path, "must be a time")
	return nil
}

func coerceChoice(path string, t *Type, v any, errs *ErrorList) any {
	if t.Multiple {
		var vals []string
		switch vv := v.(type) {
		case []string:
			vals = vv
		case []any:
			for _, item := range vv {
				vals = append(vals, DisplayValue(item))
			}
		case string:
			if vv != "" {
				vals = []string{vv}
			}
		default:
			errs.add(path, "expected a selection list")
			return nil
		}
		for _, val := range vals {
			if !containsChoice(t.Choices, val) {
				errs.add(path, fmt.Sprintf("%q is not a valid choice", val))
			}
		}
		return vals
	}

	val := DisplayValue(v)
	if val == "" && t.Optional {
		return nil
	}
	if !containsChoice(t.Choices, val) {
		errs.add(path, fmt.Sprintf("%q is not a valid choice", val))
		return nil
	}
	return val
}

func containsChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

// DisplayValue is the best-effort string form of any value. Booleans render
// as "true"/"false"; false never collapses to an empty string.
func DisplayValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case decimal.Decimal:
		return s.String()
	case time.Time:
		return s.Format(DateLayout)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
