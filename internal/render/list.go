package render

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/metrics"
	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
)

// ListRenderer renders an ordered container of item cards with add, delete,
// insert-below and client-side move affordances. Deletion and insertion are
// DOM surgery against fragment endpoints: the server never re-renders the
// whole list for a mutation.
type ListRenderer struct{}

func (r ListRenderer) RenderLabel(c Context) g.Node { return renderLabel(c) }

// Render wraps the label with a refresh icon and makes it toggle all items.
func (r ListRenderer) Render(c Context) g.Node {
	containerID := c.WireName() + "_items_container"

	label := h.Div(
		h.Class("flex items-center cursor-pointer"),
		g.Attr("onclick", fmt.Sprintf("sfmToggleList(%q); return false;", containerID)),
		r.RenderLabel(c),
		h.Span(
			h.Class("sfm-list-refresh ml-1 cursor-pointer text-gray-500 hover:text-blue-600"),
			g.Attr("onclick", fmt.Sprintf("event.stopPropagation(); sfmRefresh(%q, %q); return false;", c.refreshURL(), c.Namespace)),
			g.Attr("title", "Refresh form display to update item summaries"),
			g.Text("⟳"),
		),
		g.If(c.CopyTarget != "", copyButton(c)),
	)

	block := h.Div(
		h.Class(c.Spacing.Class("outer_margin")),
		g.Attr("data-field-container", c.Notation()),
		label,
		r.RenderInput(c),
	)
	return metrics.Decorate(block, c.Metric(), c.MetricScope)
}

func (r ListRenderer) RenderInput(c Context) g.Node {
	items, _ := c.Value.([]any)
	containerID := c.WireName() + "_items_container"

	cards := make([]g.Node, 0, len(items))
	for idx, item := range items {
		cards = append(cards, r.itemCard(c, item, path.NumIdx(idx)))
	}

	var empty g.Node
	if len(items) == 0 {
		empty = h.Div(
			h.Class("sfm-list-empty text-sm text-gray-500 p-2"),
			g.Text("No items in this list. Click 'Add Item' to create one."),
		)
	}

	addButton := h.Button(
		h.Type("button"),
		h.Class("sfm-list-add uk-button-primary uk-button-small mt-2"),
		g.Attr("onclick", fmt.Sprintf("sfmListAdd(%q, %q); return false;", c.addURL(), containerID)),
		g.If(c.Disabled, h.Disabled()),
		g.Text("Add Item"),
	)

	return h.Div(
		h.Class("sfm-list "+c.Spacing.Class("outer_margin")+" "+c.Spacing.Class("card_border")+" "+c.Spacing.Class("padding")),
		h.Ul(
			h.ID(containerID),
			h.Class("sfm-list-items list-none "+c.Spacing.Class("inner_gap_small")),
			g.Group(cards),
		),
		empty,
		addButton,
	)
}

// ItemCard renders one list item keyed by its index segment. Exposed for the
// list mutation engine, which renders a single fresh card on add.
func (r ListRenderer) ItemCard(c Context, item any, idx path.Segment) g.Node {
	return r.itemCard(c, item, idx)
}

func (r ListRenderer) itemCard(c Context, item any, idx path.Segment) g.Node {
	elem := c.Field.Type.Elem
	ic := c.child(c.Field, item, idx)
	cardID := ic.WireName() + "_card"

	var content g.Node
	switch schema.Classify(elem).Kind {
	case schema.KindRecord:
		content = RecordFields(ic, elem, item)
	default:
		// Scalar item: a bare input named for the item itself.
		itemField := &schema.Field{Name: c.Field.Name, Label: " ", Type: elem}
		sc := ic
		sc.Field = itemField
		content = h.Div(c.Registry.For(elem).RenderInput(sc))
	}

	summary := itemSummary(c, elem, item, idx)

	actions := h.Div(
		h.Class("flex justify-between w-full mt-3 pt-3 "+c.Spacing.Class("inner_gap_small")),
		h.Div(
			h.Class("flex items-center"),
			h.Button(
				h.Type("button"),
				h.Class("sfm-item-delete uk-button-danger uk-button-small"),
				g.Attr("onclick", fmt.Sprintf("sfmListDelete(%q, %q, %q); return false;", c.deleteURL(), cardID, idx.String())),
				g.Attr("title", "Delete this item"),
				g.If(c.Disabled, h.Disabled()),
				g.Text("Delete"),
			),
			h.Button(
				h.Type("button"),
				h.Class("sfm-item-insert uk-button-secondary uk-button-small ml-2"),
				g.Attr("onclick", fmt.Sprintf("sfmListAddAfter(%q, %q); return false;", c.addURL(), cardID)),
				g.Attr("title", "Insert new item below"),
				g.If(c.Disabled, h.Disabled()),
				g.Text("Add Below"),
			),
		),
		h.Div(
			h.Class("flex items-center space-x-1"),
			h.Button(
				h.Type("button"),
				h.Class("sfm-item-up uk-button-link"),
				g.Attr("onclick", "sfmMoveItem(this, 'up'); return false;"),
				g.Attr("title", "Move up"),
				g.If(c.Disabled, h.Disabled()),
				g.Text("↑"),
			),
			h.Button(
				h.Type("button"),
				h.Class("sfm-item-down uk-button-link ml-2"),
				g.Attr("onclick", "sfmMoveItem(this, 'down'); return false;"),
				g.Attr("title", "Move down"),
				g.If(c.Disabled, h.Disabled()),
				g.Text("↓"),
			),
		),
	)

	open := c.Open || path.IsPlaceholder(idx.String())

	// A list item cannot take Decorate's block wrapper inside the ul, so
	// item-level metric entries apply their indicators to the card itself.
	entry := ic.Metric()
	var entryStyle, entryTitle g.Node
	var entryBadge g.Node
	if entry != nil {
		if st := entry.BorderStyle(); st != "" && (c.MetricScope == metrics.ScopeBorder || c.MetricScope == metrics.ScopeBoth) {
			entryStyle = h.Style(st)
		}
		if entry.Comment != "" {
			entryTitle = g.Attr("title", entry.Comment)
		}
		if c.MetricScope == metrics.ScopeBullet || c.MetricScope == metrics.ScopeBoth {
			entryBadge = metrics.Badge(entry)
		}
	}

	return h.Li(
		h.ID(cardID),
		h.Class("sfm-list-item "+c.Spacing.Class("card_border")+" "+c.Spacing.Class("outer_margin_sm")),
		entryStyle,
		entryTitle,
		h.Details(
			g.If(open, g.Attr("open")),
			h.Summary(
				h.Class("cursor-pointer select-none text-gray-700 font-medium flex items-center justify-between "+c.Spacing.Class("padding_card")),
				h.Span(g.Text(summary), entryBadge),
				g.If(ic.CopyTarget != "", copyButton(ic)),
			),
			h.Div(
				h.Class(c.Spacing.Class("padding_card")+" "+c.Spacing.Class("inner_gap")),
				content,
				actions,
			),
		),
	)
}

// itemSummary builds the accordion title for an item: the first non-empty
// scalar display value for records, the display value itself for scalars.
func itemSummary(c Context, elem *schema.Type, item any, idx path.Segment) string {
	label := labelText(c.Field)
	if schema.Classify(elem).Kind == schema.KindRecord {
		if rec, ok := item.(map[string]any); ok {
			for i := range elem.Fields {
				f := &elem.Fields[i]
				if !schema.Classify(f.Type).IsScalar() {
					continue
				}
				if v := schema.DisplayValue(rec[f.Name]); v != "" {
					return fmt.Sprintf("%s: %s", label, v)
				}
			}
		}
		return fmt.Sprintf("%s item %s", label, idx.String())
	}
	if v := schema.DisplayValue(item); v != "" {
		return v
	}
	return fmt.Sprintf("%s item %s", label, idx.String())
}

// listRoute is the slash-joined path used by list mutation endpoints, e.g.
// "other_addresses/1/tags".
func (c Context) listRoute() string {
	parts := make([]string, len(c.Path))
	for i, s := range c.Path {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

func (c Context) addURL() string {
	return fmt.Sprintf("/form/%s/list/add/%s", c.Namespace, c.listRoute())
}

func (c Context) deleteURL() string {
	return fmt.Sprintf("/form/%s/list/delete/%s", c.Namespace, c.listRoute())
}

func (c Context) refreshURL() string {
	if c.RefreshURL != "" {
		return c.RefreshURL
	}
	return fmt.Sprintf("/form/%s/refresh", c.Namespace)
}
