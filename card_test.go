package harvest_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, html string) harvest.Card {
	t.Helper()
	cards, err := goquery.NewParser().ParseCards(html, "article", 1)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	return cards[0]
}

func TestExtractFields(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field with default chains", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article>
			<h2>  Bynder acquires Webdam </h2>
			<a href="/news/bynder-webdam">Read more</a>
			<time datetime="2025-07-29T09:30:00Z">Jul 29</time>
			<p>The deal closes next quarter.</p>
			<span class="author">Jane Doe</span>
		</article>`)

		f := harvest.ExtractFields(card, harvest.DefaultFieldSelectors())

		assert.Equal(t, harvest.Fields{
			Title:   "Bynder acquires Webdam",
			Link:    "/news/bynder-webdam",
			Date:    "2025-07-29",
			Summary: "The deal closes next quarter.",
			Author:  "Jane Doe",
		}, f)
	})

	t.Run("falls back to anchor text for title", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><a href="/a">Anchor title</a></article>`)

		f := harvest.ExtractFields(card, harvest.DefaultFieldSelectors())

		assert.Equal(t, "Anchor title", f.Title)
	})

	t.Run("skips blank heading in favour of next strategy", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><h3>   </h3><a href="/a">Anchor title</a></article>`)

		f := harvest.ExtractFields(card, harvest.DefaultFieldSelectors())

		assert.Equal(t, "Anchor title", f.Title)
	})

	t.Run("falls back to time text when datetime attribute is missing", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><a href="/a">x</a><time>July 4, 2025</time></article>`)

		f := harvest.ExtractFields(card, harvest.DefaultFieldSelectors())

		assert.Equal(t, "July 4, 2025", f.Date)
	})

	t.Run("missing fields resolve to empty without affecting others", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><p>Only a summary.</p></article>`)

		f := harvest.ExtractFields(card, harvest.DefaultFieldSelectors())

		assert.Empty(t, f.Title)
		assert.Empty(t, f.Link)
		assert.Empty(t, f.Date)
		assert.Empty(t, f.Author)
		assert.Equal(t, "Only a summary.", f.Summary)
	})

	t.Run("reads attribute of the card itself", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewParser().ParseCards(`<div><a class="item" href="/x"><span>Card link</span></a></div>`, "a.item", 0)
		require.NoError(t, err)
		require.Len(t, cards, 1)

		f := harvest.ExtractFields(cards[0], harvest.FieldSelectors{
			Link: []harvest.Selector{{Attr: "href"}},
		})

		assert.Equal(t, "/x", f.Link)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><span data-date="2025-01-02 10:00">x</span></article>`)

		f := harvest.ExtractFields(card, harvest.FieldSelectors{
			Date: []harvest.Selector{{CSS: "[data-date]", Attr: "data-date", Limit: 10}},
		})

		assert.Equal(t, "2025-01-02", f.Date)
	})

	t.Run("empty chains resolve to empty", func(t *testing.T) {
		t.Parallel()

		card := parseOne(t, `<article><h2>Title</h2></article>`)

		f := harvest.ExtractFields(card, harvest.FieldSelectors{})

		assert.Equal(t, harvest.Fields{}, f)
	})
}

func TestFieldSelectors_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, harvest.FieldSelectors{}.IsZero())
	assert.False(t, harvest.DefaultFieldSelectors().IsZero())
}
