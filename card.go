package harvest

import "strings"

// Card is an opaque handle to one DOM subtree representing a single article
// teaser. Cards are only valid for one extraction pass over one page.
type Card interface {
	// Find returns the first descendant matching the CSS selector.
	Find(selector string) (Card, bool)

	// Text returns the combined text content of the element.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Raw returns the element's outer HTML.
	Raw() string
}

// CardParser splits a rendered page into cards.
type CardParser interface {
	// ParseCards returns the elements matching containerSelector in
	// document order, capped at max. A max of zero means no cap.
	ParseCards(html string, containerSelector string, max int) ([]Card, error)
}

// Selector is one strategy in a field's fallback chain.
type Selector struct {
	// CSS selects a descendant of the card. Empty selects the card itself.
	CSS string `yaml:"css"`

	// Attr reads an attribute instead of the element text.
	Attr string `yaml:"attr"`

	// Limit truncates the value to its first Limit characters.
	Limit int `yaml:"limit"`
}

// FieldSelectors holds the ordered fallback chain for every field.
type FieldSelectors struct {
	Title   []Selector `yaml:"title"`
	Link    []Selector `yaml:"link"`
	Date    []Selector `yaml:"date"`
	Summary []Selector `yaml:"summary"`
	Author  []Selector `yaml:"author"`
}

// IsZero reports whether no chain is configured.
func (f FieldSelectors) IsZero() bool {
	return len(f.Title) == 0 && len(f.Link) == 0 && len(f.Date) == 0 &&
		len(f.Summary) == 0 && len(f.Author) == 0
}

// DefaultFieldSelectors returns chains that fit most blog listing markup:
// a heading or anchor for the title, the first anchor for the link and a
// time element for the date.
func DefaultFieldSelectors() FieldSelectors {
	return FieldSelectors{
		Title: []Selector{
			{CSS: "h1, h2, h3"},
			{CSS: "a"},
		},
		Link: []Selector{
			{CSS: "a[href]", Attr: "href"},
			{Attr: "href"},
		},
		Date: []Selector{
			{CSS: "time[datetime]", Attr: "datetime", Limit: 10},
			{CSS: "time"},
		},
		Summary: []Selector{
			{CSS: "p"},
		},
		Author: []Selector{
			{CSS: "[rel=author]"},
			{CSS: ".author"},
			{CSS: ".byline"},
		},
	}
}

// Fields is the loosely-typed result of extraction. An empty string means
// the field was not found.
type Fields struct {
	Title   string
	Link    string
	Date    string
	Summary string
	Author  string
}

// ExtractFields resolves every field of the card through its selector
// chain. A field whose chain finds nothing is left empty; the other fields
// are still extracted.
func ExtractFields(card Card, sel FieldSelectors) Fields {
	return Fields{
		Title:   resolve(card, sel.Title),
		Link:    resolve(card, sel.Link),
		Date:    resolve(card, sel.Date),
		Summary: resolve(card, sel.Summary),
		Author:  resolve(card, sel.Author),
	}
}

// resolve returns the first non-blank value produced by the chain.
func resolve(card Card, chain []Selector) string {
	for _, s := range chain {
		if v := s.apply(card); v != "" {
			return v
		}
	}
	return ""
}

func (s Selector) apply(card Card) string {
	el := card
	if s.CSS != "" {
		found, ok := card.Find(s.CSS)
		if !ok {
			return ""
		}
		el = found
	}

	var v string
	if s.Attr == "" {
		v = el.Text()
	} else {
		v, _ = el.Attr(s.Attr)
	}
	v = strings.TrimSpace(v)

	if s.Limit > 0 {
		if r := []rune(v); len(r) > s.Limit {
			v = string(r[:s.Limit])
		}
	}
	return v
}
