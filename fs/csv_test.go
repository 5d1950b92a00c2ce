package fs_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   string
		want    string
		wantErr bool
	}{
		{
			name:  "simple name",
			table: "Research",
			want:  "Research.csv",
		},
		{
			name:  "spaces become underscores",
			table: " DAM  Research ",
			want:  "DAM_Research.csv",
		},
		{
			name:    "empty name",
			table:   "  ",
			wantErr: true,
		},
		{
			name:    "path separator",
			table:   "../Research",
			wantErr: true,
		},
		{
			name:    "dot dot",
			table:   "..",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.TableToPath(tt.table)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVSink_Append(t *testing.T) {
	t.Parallel()

	t.Run("creates file with header then rows", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sink := fs.NewCSVSink(dir)
		rec := harvest.ArticleRecord{
			Title:         "Five DAM trends, ranked",
			URL:           "https://example.com/a",
			PublishedDate: "2025-07-01",
			Summary:       "No summary",
			Source:        "Example",
			Topic:         "Digital Asset Management",
		}
		row := rec.Row(harvest.FullColumns)

		err := sink.Append(context.Background(), "Research", "A:J", [][]string{row})
		require.NoError(t, err)

		records := readCSV(t, filepath.Join(dir, "Research.csv"))
		require.Len(t, records, 2)
		assert.Equal(t, harvest.Columns, records[0])
		assert.Equal(t, row, records[1])
	})

	t.Run("narrow rows get narrow header", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sink := fs.NewCSVSink(dir)
		row := []string{"t", "u", "d", "s", "a", "", "src"}

		require.NoError(t, sink.Append(context.Background(), "Research", "A:G", [][]string{row}))

		records := readCSV(t, filepath.Join(dir, "Research.csv"))
		require.Len(t, records, 2)
		assert.Equal(t, harvest.Columns[:harvest.NarrowColumns], records[0])
	})

	t.Run("appends without repeating header", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sink := fs.NewCSVSink(dir)
		ctx := context.Background()

		require.NoError(t, sink.Append(ctx, "Research", "A:B", [][]string{{"a", "1"}}))
		require.NoError(t, sink.Append(ctx, "Research", "A:B", [][]string{{"b", "2"}, {"c", "3"}}))

		records := readCSV(t, filepath.Join(dir, "Research.csv"))
		require.Len(t, records, 4)
		assert.Equal(t, []string{"title", "url"}, records[0])
		assert.Equal(t, []string{"c", "3"}, records[3])
	})

	t.Run("creates base directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "out")
		sink := fs.NewCSVSink(dir)

		require.NoError(t, sink.Append(context.Background(), "Research", "A:A", [][]string{{"a"}}))

		_, err := os.Stat(filepath.Join(dir, "Research.csv"))
		require.NoError(t, err)
	})

	t.Run("empty batch creates no file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sink := fs.NewCSVSink(dir)

		require.NoError(t, sink.Append(context.Background(), "Research", "A:J", nil))

		_, err := os.Stat(filepath.Join(dir, "Research.csv"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects invalid table", func(t *testing.T) {
		t.Parallel()

		err := fs.NewCSVSink(t.TempDir()).Append(context.Background(), "a/b", "A:J", [][]string{{"a"}})

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
