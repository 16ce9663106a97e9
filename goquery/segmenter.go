// Package goquery provides a goquery-based implementation of
// nexus.Segmenter that splits HTML documents into typed content blocks.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nexus"
	"golang.org/x/net/html"
)

// Ensure Segmenter implements nexus.Segmenter at compile time.
var _ nexus.Segmenter = (*Segmenter)(nil)

// chromeSelector matches elements that are stripped before
// classification. They never become blocks, not even placeholders.
const chromeSelector = "script, style, nav, footer, header, aside, iframe, svg, noscript, form"

// adMarkers identify boilerplate containers by class or id substring.
var adMarkers = []string{"advert", "adsbygoogle", "banner", "sponsor", "cookie", "consent", "promo"}

// Segmenter splits HTML into an ordered sequence of content blocks.
// It is stateless and safe for concurrent use.
type Segmenter struct{}

// NewSegmenter creates a new Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment parses rawHTML and walks the tag tree top-down in document
// order. Chrome and ad-marker elements are removed first; remaining
// leaf-bearing elements map to exactly one block variant by tag
// identity. Whitespace is collapsed in header and paragraph text and
// preserved verbatim in code blocks. Elements whose text normalizes to
// empty are dropped.
func (s *Segmenter) Segment(rawHTML string) ([]nexus.ContentBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nexus.Errorf(nexus.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(chromeSelector).Remove()
	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		if isAdContainer(sel) {
			sel.Remove()
		}
	})

	var blocks []nexus.ContentBlock
	for _, n := range doc.Find("body").Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, &blocks)
		}
	}
	return blocks, nil
}

// isAdContainer checks class and id attributes for ad and banner markers.
func isAdContainer(sel *goquery.Selection) bool {
	for _, attr := range []string{"class", "id"} {
		val, exists := sel.Attr(attr)
		if !exists {
			continue
		}
		val = strings.ToLower(val)
		for _, marker := range adMarkers {
			if strings.Contains(val, marker) {
				return true
			}
		}
		// "ad"/"ads" only as whole class tokens to avoid matching
		// words like "download" or "readme".
		for _, token := range strings.Fields(val) {
			if token == "ad" || token == "ads" {
				return true
			}
		}
	}
	return false
}

// walk classifies n and its subtree into blocks in document order.
func walk(n *html.Node, blocks *[]nexus.ContentBlock) {
	if n.Type != html.ElementNode {
		return
	}

	name := strings.ToLower(n.Data)
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if text := collapse(textContent(n)); text != "" {
			*blocks = append(*blocks, nexus.ContentBlock{
				Kind:  nexus.BlockHeader,
				Level: int(name[1] - '0'),
				Text:  text,
			})
		}
	case "pre", "code":
		// A <code> reached here is outside <pre>: pre subtrees are not
		// descended into, and code inside paragraphs is swallowed by
		// the paragraph case below.
		emitCode(n, blocks)
	case "tr":
		if cells, ok := rowCells(n); ok {
			*blocks = append(*blocks, nexus.ContentBlock{
				Kind:  nexus.BlockTableRow,
				Cells: cells,
			})
		}
	case "p", "li", "blockquote", "dt", "dd", "figcaption", "summary":
		// A prose element wrapping block structure (a <pre> or nested
		// list inside <li>) is a container, not a leaf: descend so the
		// nested blocks keep their own kind and whitespace.
		if hasBlockDescendant(n) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, blocks)
			}
			return
		}
		if text := collapse(textContent(n)); text != "" {
			*blocks = append(*blocks, nexus.ContentBlock{
				Kind: nexus.BlockParagraph,
				Text: text,
			})
		}
	default:
		// A block-level container with no block-level descendants is
		// leaf-bearing: its text becomes a paragraph. Anything else is
		// descended into.
		if isBlockLevel(name) && !hasBlockDescendant(n) {
			if text := collapse(textContent(n)); text != "" {
				*blocks = append(*blocks, nexus.ContentBlock{
					Kind: nexus.BlockParagraph,
					Text: text,
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, blocks)
		}
	}
}

// emitCode appends a code block for n, preserving internal whitespace.
func emitCode(n *html.Node, blocks *[]nexus.ContentBlock) {
	text := textContent(n)
	if strings.TrimSpace(text) == "" {
		return
	}
	*blocks = append(*blocks, nexus.ContentBlock{
		Kind:     nexus.BlockCode,
		Language: languageHint(n),
		Text:     strings.Trim(text, "\n"),
	})
}

// languageHint reads a language from class attributes of n or a nested
// <code> element. Recognizes language-*, lang-*, and highlight-* tokens.
func languageHint(n *html.Node) string {
	if hint := classLanguage(n); hint != "" {
		return hint
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "code") {
			if hint := classLanguage(c); hint != "" {
				return hint
			}
		}
	}
	return ""
}

func classLanguage(n *html.Node) string {
	for _, attr := range n.Attr {
		if !strings.EqualFold(attr.Key, "class") {
			continue
		}
		for _, token := range strings.Fields(strings.ToLower(attr.Val)) {
			for _, prefix := range []string{"language-", "lang-", "highlight-"} {
				if rest := strings.TrimPrefix(token, prefix); rest != token && rest != "" {
					return rest
				}
			}
		}
	}
	return ""
}

// rowCells collects th/td cell text in column order. Empty cells keep
// their position; a row whose cells are all empty is dropped.
func rowCells(n *html.Node) ([]string, bool) {
	var cells []string
	nonEmpty := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		name := strings.ToLower(c.Data)
		if name != "td" && name != "th" {
			continue
		}
		text := collapse(textContent(c))
		if text != "" {
			nonEmpty = true
		}
		cells = append(cells, text)
	}
	return cells, nonEmpty
}

// blockLevelTags are containers whose direct text may form a paragraph
// when no block-level structure exists beneath them.
var blockLevelTags = map[string]bool{
	"div":     true,
	"section": true,
	"article": true,
	"main":    true,
	"figure":  true,
	"details": true,
}

func isBlockLevel(name string) bool {
	return blockLevelTags[name]
}

// blockStructureTags mark a subtree as structured rather than leaf-bearing.
var blockStructureTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "pre": true, "table": true, "tr": true, "ul": true, "ol": true,
	"dl": true, "li": true, "blockquote": true, "div": true, "section": true,
	"article": true, "main": true, "figure": true, "details": true,
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if blockStructureTags[strings.ToLower(c.Data)] {
				return true
			}
			if hasBlockDescendant(c) {
				return true
			}
		}
	}
	return false
}

// textContent returns the concatenated text of n's subtree verbatim.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// collapse normalizes consecutive whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
