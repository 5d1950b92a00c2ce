package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<!DOCTYPE html>
<html>
<body>
<header><a href="/">Home</a></header>
<main>
	<article class="post">
		<h2><a href="/articles/one">First post</a></h2>
		<time datetime="2025-07-01T10:00:00Z">July 1</time>
		<p>First teaser.</p>
	</article>
	<article class="post">
		<h2><a href="/articles/two">Second post</a></h2>
	</article>
	<article class="post">
		<h2><a href="/articles/three">Third post</a></h2>
	</article>
</main>
</body>
</html>`

func TestParser_ParseCards(t *testing.T) {
	t.Parallel()

	t.Run("returns cards in document order", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewParser().ParseCards(listingHTML, "article", 0)

		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Contains(t, cards[0].Text(), "First post")
		assert.Contains(t, cards[1].Text(), "Second post")
		assert.Contains(t, cards[2].Text(), "Third post")
	})

	t.Run("caps number of cards", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewParser().ParseCards(listingHTML, "article.post", 2)

		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Contains(t, cards[1].Text(), "Second post")
	})

	t.Run("returns no cards when selector matches nothing", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewParser().ParseCards(listingHTML, ".listing-item", 5)

		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("rejects empty container selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().ParseCards(listingHTML, " ", 5)

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestCard(t *testing.T) {
	t.Parallel()

	cards, err := goquery.NewParser().ParseCards(listingHTML, "article", 1)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	card := cards[0]

	t.Run("finds first matching descendant", func(t *testing.T) {
		t.Parallel()

		link, ok := card.Find("a[href]")
		require.True(t, ok)
		href, ok := link.Attr("href")
		require.True(t, ok)
		assert.Equal(t, "/articles/one", href)
	})

	t.Run("reports missing descendant", func(t *testing.T) {
		t.Parallel()

		_, ok := card.Find(".author")
		assert.False(t, ok)
	})

	t.Run("reports missing attribute", func(t *testing.T) {
		t.Parallel()

		_, ok := card.Attr("data-missing")
		assert.False(t, ok)
	})

	t.Run("raw returns outer html", func(t *testing.T) {
		t.Parallel()

		raw := card.Raw()
		assert.True(t, strings.HasPrefix(raw, `<article class="post">`))
		assert.Contains(t, raw, "First teaser.")
	})
}
