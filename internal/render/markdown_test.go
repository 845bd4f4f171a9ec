package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItem() Item {
	return Item{
		ID:   "jupiter",
		Name: "Jupiter",
		Attrs: []Attr{
			{Key: "bodyType", Label: "Type", Value: "Planet"},
			{Key: "gravity", Label: "Surface Gravity", Value: 24.79, Text: "24.79 m/s²"},
			{Key: "raw", Value: map[string]any{"x": 1}}, // JSON-only, no markdown line
		},
	}
}

func TestRenderOne(t *testing.T) {
	out := RenderOne(sampleItem())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "## Jupiter (ID: jupiter)", lines[0])
	assert.Equal(t, "**Type**: Planet", lines[1])
	assert.Equal(t, "**Surface Gravity**: 24.79 m/s²", lines[2])
}

func TestRenderOneNoOptionalFields(t *testing.T) {
	out := RenderOne(Item{ID: "x", Name: "X"})
	assert.Equal(t, "## X (ID: x)", out)
}

func TestRenderManyUnpaginated(t *testing.T) {
	items := []Item{sampleItem(), {ID: "io", Name: "Io"}}
	page := ComputePage(20, 0, 2, 2)

	out := RenderMany(items, "Search Results", page)
	assert.True(t, strings.HasPrefix(out, "# Search Results\n\nFound 2 item(s)\n"))
	assert.Contains(t, out, "## Jupiter (ID: jupiter)")
	assert.Contains(t, out, "## Io (ID: io)")
	assert.NotContains(t, out, "More items available")
}

func TestRenderManyPaginated(t *testing.T) {
	items := []Item{sampleItem()}
	page := ComputePage(1, 20, 57, 1)

	out := RenderMany(items, "Solar System Bodies", page)
	assert.Contains(t, out, "Showing 1 of 57 (offset: 20)")
	assert.Contains(t, out, "*More items available. Use offset=21 for the next page.*")
}

func TestRenderManyEmpty(t *testing.T) {
	page := ComputePage(20, 0, 0, 0)
	out := RenderMany(nil, "Moons of Mercure", page)
	assert.Contains(t, out, "# Moons of Mercure")
	assert.Contains(t, out, "Found 0 item(s)")
	assert.NotContains(t, out, "##")
}

func TestRenderManyDeterministic(t *testing.T) {
	items := []Item{sampleItem(), {ID: "io", Name: "Io"}}
	page := ComputePage(20, 0, 57, 2)
	assert.Equal(t, RenderMany(items, "T", page), RenderMany(items, "T", page))
}

func TestRenderManyPreservesInputOrder(t *testing.T) {
	// Duplicate display names keep fetch order; no re-sorting happens.
	items := []Item{{ID: "b", Name: "Same"}, {ID: "a", Name: "Same"}}
	out := RenderMany(items, "T", ComputePage(20, 0, 2, 2))
	assert.Less(t, strings.Index(out, "(ID: b)"), strings.Index(out, "(ID: a)"))
}
