package path

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schemaform/internal/schema"
)

func TestWireName(t *testing.T) {
	p := Path{Name("entries"), NumIdx(0), Name("title")}
	assert.Equal(t, "form_entries_0_title", p.WireName("form"))

	p = Path{Name("entries"), Idx("new_173029"), Name("title")}
	assert.Equal(t, "form_entries_new_173029_title", p.WireName("form"))
}

func TestNotation(t *testing.T) {
	p := Path{Name("entries"), NumIdx(0), Name("notes"), NumIdx(1)}
	assert.Equal(t, "entries[0].notes[1]", p.Notation())

	p = Path{Name("entries"), Idx("new_500")}
	assert.Equal(t, "entries[new_500]", p.Notation())

	assert.Equal(t, "name", Path{Name("name")}.Notation())
}

func TestChildDoesNotMutateReceiver(t *testing.T) {
	base := Path{Name("entries")}
	a := base.Child(NumIdx(0))
	b := base.Child(NumIdx(1))

	assert.Equal(t, "entries[0]", a.Notation())
	assert.Equal(t, "entries[1]", b.Notation())
	assert.Equal(t, "entries", base.Notation())
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"entries[0]", "entries[0]"},
		{"entries[0].notes[1]", "entries[0].notes[1]"},
		{"entries[new_42].rating", "entries[new_42].rating"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParseNotation(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Notation())
		})
	}
}

func TestParseNotationRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "entries[", "entries[]", "entries[abc]", "a..b"} {
		_, err := ParseNotation(in)
		assert.Error(t, err, in)
	}
}

func TestParseWire(t *testing.T) {
	s := schema.MustNew("profile", []schema.Field{
		{Name: "name", Type: &schema.Type{Kind: schema.KindString}},
		{Name: "other_addresses", Type: &schema.Type{
			Kind: schema.KindList,
			Elem: &schema.Type{Kind: schema.KindRecord, Fields: []schema.Field{
				{Name: "street_line", Type: &schema.Type{Kind: schema.KindString}},
				{Name: "tags", Type: &schema.Type{
					Kind: schema.KindList,
					Elem: &schema.Type{Kind: schema.KindString},
				}},
			}},
		}},
	})

	tests := []struct {
		wire string
		want string
	}{
		{"form_name", "name"},
		{"form_other_addresses", "other_addresses"},
		{"form_other_addresses_0_street_line", "other_addresses[0].street_line"},
		{"form_other_addresses_new_99_street_line", "other_addresses[new_99].street_line"},
		{"form_other_addresses_1_tags_0", "other_addresses[1].tags[0]"},
	}
	for _, tc := range tests {
		t.Run(tc.wire, func(t *testing.T) {
			p, err := ParseWire("form", tc.wire, s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Notation())
		})
	}
}

func TestParseWireErrors(t *testing.T) {
	s := schema.MustNew("t", []schema.Field{
		{Name: "name", Type: &schema.Type{Kind: schema.KindString}},
	})

	_, err := ParseWire("form", "other_name", s)
	assert.Error(t, err)

	_, err = ParseWire("form", "form_unknown", s)
	assert.Error(t, err)

	_, err = ParseWire("form", "form_name_extra", s)
	assert.Error(t, err)
}

func TestSortIndices(t *testing.T) {
	indices := []string{"new_200", "2", "new_100", "0", "10", "1"}
	SortIndices(indices)
	assert.Equal(t, []string{"0", "1", "2", "10", "new_100", "new_200"}, indices)
}

func TestNextPlaceholderMonotonic(t *testing.T) {
	now := time.UnixMilli(5000)
	ts := NewTokenSourceAt(func() time.Time { return now })

	// Clock frozen: tokens must still strictly increase.
	assert.Equal(t, "new_5000", ts.NextPlaceholder())
	assert.Equal(t, "new_5001", ts.NextPlaceholder())
	assert.Equal(t, "new_5002", ts.NextPlaceholder())

	// Clock advancing past the counter resumes time-derived tokens.
	now = time.UnixMilli(9000)
	assert.Equal(t, "new_9000", ts.NextPlaceholder())
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder("new_123"))
	assert.False(t, IsPlaceholder("123"))
}
