package sources_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourcesYAML = `
sources:
  - name: Example News
    url: https://example.com/news/
    topic: Digital Asset Management
    container: li.post
    max_cards: 8
    columns: 7
    boilerplate:
      - "Sponsored:"
    requires_js: true
    timeout: 30s
    settle:
      delay: 5s
      selector: li.post
    fields:
      title:
        - css: h2
      link:
        - css: a[href]
          attr: href
  - name: Minimal
    url: https://minimal.example.org/blog
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("decodes adapters and applies defaults", func(t *testing.T) {
		t.Parallel()

		got, err := sources.Parse([]byte(sourcesYAML))
		require.NoError(t, err)
		require.Len(t, got, 2)

		first := got[0]
		assert.Equal(t, "Example News", first.Name)
		assert.Equal(t, "https://example.com", first.Origin)
		assert.Equal(t, "li.post", first.ContainerSelector)
		assert.Equal(t, 8, first.MaxCards)
		assert.Equal(t, harvest.NarrowColumns, first.Columns)
		assert.Equal(t, []string{"Sponsored:"}, first.Boilerplate)
		assert.Equal(t, 30*time.Second, first.Timeout)
		assert.Equal(t, 5*time.Second, first.Settle.Delay)
		assert.Equal(t, "li.post", first.Settle.Selector)
		assert.Equal(t, []harvest.Selector{{CSS: "h2"}}, first.Fields.Title)
		assert.Equal(t, []harvest.Selector{{CSS: "a[href]", Attr: "href"}}, first.Fields.Link)
		assert.Equal(t, []string{harvest.DefaultSponsoredTerm}, first.SponsoredMarkers)

		minimal := got[1]
		assert.Equal(t, "https://minimal.example.org", minimal.Origin)
		assert.Equal(t, harvest.DefaultContainer, minimal.ContainerSelector)
		assert.Equal(t, harvest.FullColumns, minimal.Columns)
		assert.Equal(t, harvest.DefaultFetchTimeout, minimal.Timeout)
		assert.Equal(t, harvest.DefaultFieldSelectors(), minimal.Fields)
		assert.Equal(t, harvest.DefaultTable, minimal.Table)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Parse([]byte("sources:\n  - name: A\n    url: https://a.example.com\n    contianer: div\n"))

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Parse(nil)

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects invalid adapter", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Parse([]byte("sources:\n  - name: A\n    url: /relative\n"))

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Parse([]byte("sources:\n  - name: A\n    url: https://a.example.com\n  - name: a\n    url: https://b.example.com\n"))

		require.Error(t, err)
		assert.Contains(t, harvest.ErrorMessage(err), "duplicate")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sourcesYAML), 0644))

		got, err := sources.Load(path)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})
}

func TestSelect(t *testing.T) {
	t.Parallel()

	all := sources.Builtin()

	t.Run("no names selects all", func(t *testing.T) {
		t.Parallel()

		got, err := sources.Select(all, nil)
		require.NoError(t, err)
		assert.Len(t, got, len(all))
	})

	t.Run("keeps requested order", func(t *testing.T) {
		t.Parallel()

		got, err := sources.Select(all, []string{"Brandfolder Blog", "cmswire"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Brandfolder Blog", got[0].Name)
		assert.Equal(t, "CMSWire", got[1].Name)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		t.Parallel()

		_, err := sources.Select(all, []string{"Nope"})
		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})
}
