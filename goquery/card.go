// Package goquery implements card parsing and field lookup over rendered
// HTML using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.Card       = (*Card)(nil)
	_ harvest.CardParser = (*Parser)(nil)
)

// Card wraps a single-element selection.
type Card struct {
	sel *goquery.Selection
}

// NewCard wraps sel. Only the first element of sel is used.
func NewCard(sel *goquery.Selection) *Card {
	return &Card{sel: sel.First()}
}

// Find returns the first descendant matching selector.
func (c *Card) Find(selector string) (harvest.Card, bool) {
	found := c.sel.Find(selector)
	if found.Length() == 0 {
		return nil, false
	}
	return &Card{sel: found.First()}, true
}

// Text returns the element's text content, including descendants.
func (c *Card) Text() string {
	return c.sel.Text()
}

// Attr returns the value of the named attribute.
func (c *Card) Attr(name string) (string, bool) {
	return c.sel.Attr(name)
}

// Raw returns the element's outer HTML. Serialization failures yield the
// text content so marker checks still see something.
func (c *Card) Raw() string {
	html, err := goquery.OuterHtml(c.sel)
	if err != nil {
		return c.sel.Text()
	}
	return html
}

// Parser splits HTML documents into cards.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseCards returns the elements matching containerSelector in document
// order, capped at max (zero means no cap). Nested matches are kept; a card
// inside another card is a separate card.
func (p *Parser) ParseCards(html string, containerSelector string, max int) ([]harvest.Card, error) {
	if strings.TrimSpace(containerSelector) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "container selector required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var cards []harvest.Card
	doc.Find(containerSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if max > 0 && len(cards) >= max {
			return false
		}
		cards = append(cards, &Card{sel: sel})
		return true
	})
	return cards, nil
}
