package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/qsnap/internal/adapters/markdown"
	"go.trai.ch/qsnap/internal/core/domain"
)

const host = "q.uiver.app"

func TestInventory_Links(t *testing.T) {
	t.Parallel()

	doc := "# Notes\n\n" +
		"First [![diagram](.qsnap/artifacts/notes-0011223344556677.png)](https://q.uiver.app/#q=WzAsMl0)\n\n" +
		"- item [![square](img/sq.svg)](https://q.uiver.app/#q=WzAsM10=) here\n\n" +
		"A plain link [editor](https://q.uiver.app/#q=WzAsNF0) has no image.\n\n" +
		"An image link to elsewhere [![x](a.png)](https://example.com/#q=WzAsMl0).\n\n" +
		"```\n[![diagram](code.png)](https://q.uiver.app/#q=WzAsMl0)\n```\n\n" +
		"Raw https://q.uiver.app/#q=WzAsNV0 stays raw.\n"

	got := markdown.NewInventory().Links(doc, host)

	assert.Equal(t, []domain.DiagramLink{
		{URL: "https://q.uiver.app/#q=WzAsMl0", ImagePath: ".qsnap/artifacts/notes-0011223344556677.png"},
		{URL: "https://q.uiver.app/#q=WzAsM10=", ImagePath: "img/sq.svg"},
	}, got)
}

func TestInventory_CustomHost(t *testing.T) {
	t.Parallel()

	doc := "[![d](a.png)](https://q.uiver.app/#q=WzAsMl0) [![d](b.png)](https://diagrams.local/#q=WzAsMl0)"

	got := markdown.NewInventory().Links(doc, "diagrams.local")

	assert.Equal(t, []domain.DiagramLink{
		{URL: "https://diagrams.local/#q=WzAsMl0", ImagePath: "b.png"},
	}, got)
}

func TestInventory_EmptyPayloadIgnored(t *testing.T) {
	t.Parallel()

	got := markdown.NewInventory().Links("[![d](a.png)](https://q.uiver.app/#q=)", host)

	assert.Empty(t, got)
}

func TestInventory_EscapedSpaces(t *testing.T) {
	t.Parallel()

	got := markdown.NewInventory().Links("[![diagram](my%20notes-1.png)](https://q.uiver.app/#q=WzAsMl0)", host)

	assert.Equal(t, []domain.DiagramLink{
		{URL: "https://q.uiver.app/#q=WzAsMl0", ImagePath: "my%20notes-1.png"},
	}, got)
}
