package render

import (
	"fmt"
	"strings"
)

// RenderOne formats a single item as markdown: a heading combining display
// name and identifier, then one bold-label line per labeled attr in item
// order. Unlabeled attrs and absent values produce no line.
func RenderOne(item Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (ID: %s)", item.Name, item.ID)

	for _, a := range item.Attrs {
		if a.Label == "" {
			continue
		}
		text := a.Text
		if text == "" {
			text = fmt.Sprintf("%v", a.Value)
		}
		fmt.Fprintf(&b, "\n**%s**: %s", a.Label, text)
	}

	return b.String()
}

// RenderMany formats an ordered item sequence under a title heading with a
// count summary, each item block separated by a blank line, and a trailing
// next-page hint when more items remain. An empty sequence yields the title
// and a zero count, never an error.
func RenderMany(items []Item, title string, page PageResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if page.Offset > 0 || page.HasMore {
		fmt.Fprintf(&b, "Showing %d of %d (offset: %d)\n", page.Returned, page.Total, page.Offset)
	} else {
		fmt.Fprintf(&b, "Found %d item(s)\n", page.Returned)
	}

	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(RenderOne(item))
		b.WriteString("\n")
	}

	if page.HasMore && page.NextOffset != nil {
		fmt.Fprintf(&b, "\n*More items available. Use offset=%d for the next page.*\n", *page.NextOffset)
	}

	return b.String()
}
