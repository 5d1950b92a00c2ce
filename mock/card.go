package mock

import "github.com/fwojciec/harvest"

// Compile-time interface verification.
var (
	_ harvest.Card       = (*Card)(nil)
	_ harvest.CardParser = (*CardParser)(nil)
)

// Card is a mock implementation of harvest.Card.
type Card struct {
	FindFn func(selector string) (harvest.Card, bool)
	TextFn func() string
	AttrFn func(name string) (string, bool)
	RawFn  func() string
}

func (c *Card) Find(selector string) (harvest.Card, bool) {
	return c.FindFn(selector)
}

func (c *Card) Text() string {
	return c.TextFn()
}

func (c *Card) Attr(name string) (string, bool) {
	return c.AttrFn(name)
}

func (c *Card) Raw() string {
	return c.RawFn()
}

// CardParser is a mock implementation of harvest.CardParser.
type CardParser struct {
	ParseCardsFn func(html string, containerSelector string, max int) ([]harvest.Card, error)
}

func (p *CardParser) ParseCards(html string, containerSelector string, max int) ([]harvest.Card, error) {
	return p.ParseCardsFn(html, containerSelector, max)
}
