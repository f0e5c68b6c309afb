package defaults

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schemaform/internal/schema"
)

// fixedClock pins Now for deterministic date defaults.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{t: time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)}

func TestForTypeScalars(t *testing.T) {
	tests := []struct {
		name string
		typ  *schema.Type
		want any
	}{
		{"string", &schema.Type{Kind: schema.KindString}, ""},
		{"int", &schema.Type{Kind: schema.KindNumber}, int64(0)},
		{"float", &schema.Type{Kind: schema.KindNumber, Float: true}, 0.0},
		{"decimal", &schema.Type{Kind: schema.KindDecimal}, decimal.Zero},
		{"bool", &schema.Type{Kind: schema.KindBoolean}, false},
		{"date", &schema.Type{Kind: schema.KindDate}, "2026-08-31"},
		{"time", &schema.Type{Kind: schema.KindTime}, "00:00"},
		{"choice", &schema.Type{Kind: schema.KindChoice, Choices: []string{"a", "b"}}, "a"},
		{"multi choice", &schema.Type{Kind: schema.KindChoice, Multiple: true, Choices: []string{"a"}}, []string{}},
		{"list", &schema.Type{Kind: schema.KindList, Elem: &schema.Type{Kind: schema.KindString}}, []any{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ForType(tc.typ, testClock))
		})
	}
}

func TestForTypeOptionalIsNil(t *testing.T) {
	assert.Nil(t, ForType(&schema.Type{Kind: schema.KindString, Optional: true}, testClock))
	assert.Nil(t, ForType(&schema.Type{Kind: schema.KindDate, Optional: true}, testClock))
}

func TestForTypeRecordRecurses(t *testing.T) {
	typ := &schema.Type{Kind: schema.KindRecord, Fields: []schema.Field{
		{Name: "street", Type: &schema.Type{Kind: schema.KindString}},
		{Name: "is_billing", Type: &schema.Type{Kind: schema.KindBoolean}},
	}}
	got := ForType(typ, testClock)
	assert.Equal(t, map[string]any{"street": "", "is_billing": false}, got)
}

func TestForFieldPrecedence(t *testing.T) {
	// Explicit default beats the synthesized value.
	f := &schema.Field{Name: "status", Default: "draft",
		Type: &schema.Type{Kind: schema.KindChoice, Choices: []string{"final", "draft"}}}
	assert.Equal(t, "draft", ForField(f, testClock))

	// DefaultFunc runs when no static default is declared.
	f = &schema.Field{Name: "note", DefaultFunc: func() any { return "generated" },
		Type: &schema.Type{Kind: schema.KindString}}
	assert.Equal(t, "generated", ForField(f, testClock))

	// Neither declared: type default.
	f = &schema.Field{Name: "count", Type: &schema.Type{Kind: schema.KindNumber}}
	assert.Equal(t, int64(0), ForField(f, testClock))
}

func TestForFieldNormalizesYAMLShapes(t *testing.T) {
	// YAML decodes integers as int; canonical shape is int64.
	f := &schema.Field{Name: "count", Default: 5, Type: &schema.Type{Kind: schema.KindNumber}}
	assert.Equal(t, int64(5), ForField(f, testClock))

	// Decimal defaults arrive as strings and keep full precision.
	f = &schema.Field{Name: "price", Default: "19.99", Type: &schema.Type{Kind: schema.KindDecimal}}
	got, ok := ForField(f, testClock).(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "19.99", got.String())
}

func TestForFieldRecordDefaultFillsMissingSubfields(t *testing.T) {
	f := &schema.Field{
		Name: "address",
		Type: &schema.Type{Kind: schema.KindRecord, Fields: []schema.Field{
			{Name: "street", Type: &schema.Type{Kind: schema.KindString}},
			{Name: "city", Type: &schema.Type{Kind: schema.KindString, Optional: true}},
			{Name: "zip", Type: &schema.Type{Kind: schema.KindString}},
		}},
		Default: map[string]any{"street": "123 Main St"},
	}
	got, ok := ForField(f, testClock).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "123 Main St", got["street"])
	assert.Nil(t, got["city"])
	assert.Equal(t, "", got["zip"])
}

func TestForSchema(t *testing.T) {
	s := schema.MustNew("test", []schema.Field{
		{Name: "title", Type: &schema.Type{Kind: schema.KindString}},
		{Name: "entries", Type: &schema.Type{
			Kind: schema.KindList,
			Elem: &schema.Type{Kind: schema.KindString},
		}},
	})
	got := ForSchema(s, testClock)
	assert.Equal(t, map[string]any{"title": "", "entries": []any{}}, got)
}

func TestListDefaultNormalizesItems(t *testing.T) {
	f := &schema.Field{
		Name:    "scores",
		Type:    &schema.Type{Kind: schema.KindList, Elem: &schema.Type{Kind: schema.KindNumber}},
		Default: []any{1, 2},
	}
	assert.Equal(t, []any{int64(1), int64(2)}, ForField(f, testClock))
}
