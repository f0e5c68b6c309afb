package schema

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesStructure(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"duplicate field", []Field{
			{Name: "a", Type: &Type{Kind: KindString}},
			{Name: "a", Type: &Type{Kind: KindString}},
		}},
		{"unnamed field", []Field{
			{Type: &Type{Kind: KindString}},
		}},
		{"nil type", []Field{
			{Name: "a"},
		}},
		{"choice without choices", []Field{
			{Name: "a", Type: &Type{Kind: KindChoice}},
		}},
		{"list without elem", []Field{
			{Name: "a", Type: &Type{Kind: KindList}},
		}},
		{"record without fields", []Field{
			{Name: "a", Type: &Type{Kind: KindRecord}},
		}},
		{"custom without name", []Field{
			{Name: "a", Type: &Type{Kind: KindCustom}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("test", tc.fields)
			assert.Error(t, err)
		})
	}

	_, err := New("", []Field{{Name: "a", Type: &Type{Kind: KindString}}})
	assert.Error(t, err)
}

func TestFieldByName(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "name", Type: &Type{Kind: KindString}},
		{Name: "age", Type: &Type{Kind: KindNumber}},
	})
	require.NotNil(t, s.FieldByName("age"))
	assert.Equal(t, KindNumber, s.FieldByName("age").Type.Kind)
	assert.Nil(t, s.FieldByName("missing"))
}

func TestWalk(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "title", Type: &Type{Kind: KindString}},
		{Name: "entries", Type: &Type{
			Kind: KindList,
			Elem: &Type{Kind: KindRecord, Fields: []Field{
				{Name: "notes", Type: &Type{Kind: KindString}},
				{Name: "rating", Type: &Type{Kind: KindNumber}},
			}},
		}},
	})

	var visited []string
	s.Walk(func(notation string, f *Field) {
		visited = append(visited, notation)
	})
	assert.Equal(t, []string{"title", "entries", "entries.notes", "entries.rating"}, visited)
}

func TestClassify(t *testing.T) {
	c := Classify(&Type{Kind: KindString, Optional: true})
	assert.Equal(t, KindString, c.Kind)
	assert.True(t, c.Optional)
	assert.True(t, c.IsScalar())

	c = Classify(&Type{Kind: KindList, Elem: &Type{Kind: KindString}})
	assert.Equal(t, KindList, c.Kind)
	assert.False(t, c.IsScalar())

	// Nil descriptor falls back to string rather than failing a render.
	c = Classify(nil)
	assert.Equal(t, KindString, c.Kind)
}

func TestClassifyFieldHiddenWins(t *testing.T) {
	f := &Field{Name: "internal_id", Hidden: true, Type: &Type{Kind: KindNumber}}
	assert.Equal(t, KindHidden, ClassifyField(f).Kind)
}

func TestDeclaredDefault(t *testing.T) {
	f := &Field{Name: "a", Type: &Type{Kind: KindString}}
	assert.True(t, IsUnset(f.DeclaredDefault()))

	f.Default = "hello"
	assert.Equal(t, "hello", f.DeclaredDefault())

	f = &Field{Name: "b", Type: &Type{Kind: KindNumber}, DefaultFunc: func() any { return int64(7) }}
	assert.Equal(t, int64(7), f.DeclaredDefault())

	// Explicit nil default on an optional field is a real default, not unset.
	f = &Field{Name: "c", Type: &Type{Kind: KindString, Optional: true}, Default: nil}
	assert.True(t, IsUnset(f.DeclaredDefault()))
}

func TestLoadYAML(t *testing.T) {
	doc := `
name: review_form
fields:
  - name: title
    type: string
  - name: rating
    type: float
    optional: true
  - name: status
    type: choice
    choices: [draft, published]
    default: draft
  - name: entries
    type: list
    of:
      type: record
      fields:
        - name: notes
          type: string
        - name: score
          type: decimal
`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "review_form", s.Name)
	require.Len(t, s.Fields, 4)

	rating := s.FieldByName("rating")
	assert.Equal(t, KindNumber, rating.Type.Kind)
	assert.True(t, rating.Type.Float)
	assert.True(t, rating.Type.Optional)

	status := s.FieldByName("status")
	assert.Equal(t, []string{"draft", "published"}, status.Type.Choices)
	assert.Equal(t, "draft", status.Default)

	entries := s.FieldByName("entries")
	require.Equal(t, KindList, entries.Type.Kind)
	require.Equal(t, KindRecord, entries.Type.Elem.Kind)
	assert.Equal(t, KindDecimal, entries.Type.Elem.Fields[1].Type.Kind)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	doc := `
name: test
fields:
  - name: a
    type: string
    bogus: true
`
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestValidateCoercesTypedTree(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "title", Type: &Type{Kind: KindString}},
		{Name: "count", Type: &Type{Kind: KindNumber}},
		{Name: "rating", Type: &Type{Kind: KindNumber, Float: true}},
		{Name: "price", Type: &Type{Kind: KindDecimal}},
		{Name: "active", Type: &Type{Kind: KindBoolean}},
		{Name: "due", Type: &Type{Kind: KindDate}},
		{Name: "at", Type: &Type{Kind: KindTime}},
		{Name: "status", Type: &Type{Kind: KindChoice, Choices: []string{"draft", "final"}}},
	})

	typed, errs := Validate(s, map[string]any{
		"title":  "hello",
		"count":  "42",
		"rating": "3.5",
		"price":  "19.99",
		"active": "on",
		"due":    "2026-08-31",
		"at":     "09:15",
		"status": "final",
	})
	require.Empty(t, errs)

	assert.Equal(t, int64(42), typed["count"])
	assert.InDelta(t, 3.5, typed["rating"], 0.0001)
	assert.True(t, typed["price"].(decimal.Decimal).Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, true, typed["active"])
	assert.Equal(t, "2026-08-31", typed["due"])
	assert.Equal(t, "09:15", typed["at"])
	assert.Equal(t, "final", typed["status"])
}

func TestValidateLocatesErrorsByPath(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "entries", Type: &Type{
			Kind: KindList,
			Elem: &Type{Kind: KindRecord, Fields: []Field{
				{Name: "rating", Type: &Type{Kind: KindNumber}},
			}},
		}},
	})

	_, errs := Validate(s, map[string]any{
		"entries": []any{
			map[string]any{"rating": "5"},
			map[string]any{"rating": "not-a-number"},
		},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "entries[1].rating", errs[0].Path)
	assert.Contains(t, errs[0].Message, "integer")
}

func TestValidateRequiredAndOptional(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "required_title", Type: &Type{Kind: KindString}},
		{Name: "optional_note", Type: &Type{Kind: KindString, Optional: true}},
	})

	_, errs := Validate(s, map[string]any{"optional_note": nil})
	require.Len(t, errs, 1)
	assert.Equal(t, "required_title", errs[0].Path)
}

func TestValidateDecimalPrecision(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "amount", Type: &Type{Kind: KindDecimal}},
	})

	// A value float64 would mangle must survive exactly.
	typed, errs := Validate(s, map[string]any{"amount": "123456789.123456789123456789"})
	require.Empty(t, errs)
	assert.Equal(t, "123456789.123456789123456789", typed["amount"].(decimal.Decimal).String())
}

func TestValidateMultiChoiceMembership(t *testing.T) {
	s := MustNew("test", []Field{
		{Name: "tags", Type: &Type{Kind: KindChoice, Multiple: true, Choices: []string{"a", "b"}}},
	})

	typed, errs := Validate(s, map[string]any{"tags": []string{"a", "b"}})
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "b"}, typed["tags"])

	_, errs = Validate(s, map[string]any{"tags": []string{"a", "zzz"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "tags", errs[0].Path)
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "false", DisplayValue(false))
	assert.Equal(t, "true", DisplayValue(true))
	assert.Equal(t, "", DisplayValue(nil))
	assert.Equal(t, "1.50", DisplayValue(decimal.RequireFromString("1.50")))
	assert.Equal(t, "42", DisplayValue(int64(42)))
	assert.Equal(t, "plain", DisplayValue("plain"))
}
