package render

// Spacing selects the form's layout density.
type Spacing int

const (
	SpacingNormal Spacing = iota
	SpacingCompact
)

// ParseSpacing maps a config string onto a theme; unknown values fall back
// to normal.
func ParseSpacing(s string) Spacing {
	if s == "compact" {
		return SpacingCompact
	}
	return SpacingNormal
}

var spacingMap = map[Spacing]map[string]string{
	SpacingNormal: {
		"outer_margin":    "mb-4",
		"outer_margin_sm": "mb-2",
		"inner_gap":       "space-y-3",
		"inner_gap_small": "space-y-2",
		"stack_gap":       "space-y-4",
		"padding":         "p-4",
		"padding_sm":      "p-3",
		"padding_card":    "px-4 py-3",
		"card_border":     "border rounded-md",
	},
	SpacingCompact: {
		"outer_margin":    "mb-2",
		"outer_margin_sm": "mb-1",
		"inner_gap":       "space-y-1",
		"inner_gap_small": "space-y-1",
		"stack_gap":       "space-y-1",
		"padding":         "p-2",
		"padding_sm":      "p-1",
		"padding_card":    "px-2 py-1",
		"card_border":     "",
	},
}

// Class returns the utility class for a semantic spacing token.
func (sp Spacing) Class(token string) string {
	return spacingMap[sp][token]
}
