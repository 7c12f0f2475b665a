package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. The whole file is a
// single page; every top-level block, headings included, becomes one block.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{ID: filename}
	page := doc.AddPage()

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		var t string
		if h, ok := n.(*ast.Heading); ok {
			t = strings.TrimSpace(string(h.Text(src)))
		} else {
			t = extractText(n, src)
		}
		if t != "" {
			page.Blocks = append(page.Blocks, t)
		}
	}

	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// such as code blocks only carry raw lines; everything else is rebuilt from
// its children so paragraph text is not read twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		// Recurse for nested inlines and list items.
		if s := extractText(c, src); s != "" {
			if buf.Len() > 0 && c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			buf.WriteString(s)
		}
	}
	return strings.TrimSpace(buf.String())
}
