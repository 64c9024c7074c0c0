// Package markdown lists the diagram links already spliced into Markdown documents.
package markdown

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
)

var _ ports.LinkInventory = (*Inventory)(nil)

// Inventory finds `[![alt](image)](url)` links whose url is a diagram reference.
// Links inside code spans and fenced blocks are not links in the AST and are
// therefore never reported.
type Inventory struct {
	once sync.Once
	md   goldmark.Markdown
}

// NewInventory creates a new Inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

func (i *Inventory) parser() goldmark.Markdown {
	i.once.Do(func() {
		i.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return i.md
}

// Links returns the diagram links in text in document order.
func (i *Inventory) Links(source, host string) []domain.DiagramLink {
	prefix := domain.ReferenceURL(host, "")
	src := []byte(source)
	doc := i.parser().Parser().Parse(text.NewReader(src))

	var links []domain.DiagramLink
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if !strings.HasPrefix(dest, prefix) || len(dest) == len(prefix) {
			return ast.WalkSkipChildren, nil
		}
		for child := link.FirstChild(); child != nil; child = child.NextSibling() {
			if img, ok := child.(*ast.Image); ok {
				links = append(links, domain.DiagramLink{
					URL:       dest,
					ImagePath: string(img.Destination),
				})
				break
			}
		}
		return ast.WalkSkipChildren, nil
	})

	return links
}
