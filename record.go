package harvest

import (
	"net/url"
	"unicode/utf8"
)

// Placeholders substituted for fields that could not be extracted.
const (
	UntitledPlaceholder  = "Untitled"
	NoSummaryPlaceholder = "No summary"
)

// DateLayout is the calendar-date format of ArticleRecord.PublishedDate.
const DateLayout = "2006-01-02"

// Column widths of the destination schema.
const (
	// NarrowColumns is the early seven-column layout ending at source.
	NarrowColumns = 7

	// FullColumns is the complete layout ending at aiScore.
	FullColumns = 10
)

// Columns lists the destination columns in their fixed order.
var Columns = []string{
	"title",
	"url",
	"publishedDate",
	"summary",
	"author",
	"notes",
	"source",
	"topic",
	"tags",
	"aiScore",
}

// ArticleRecord is one normalized article teaser as written to the sink.
type ArticleRecord struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	PublishedDate string `json:"publishedDate"`
	Summary       string `json:"summary"`
	Author        string `json:"author"`

	// Notes, Tags and AIScore are reserved for downstream curation and
	// are always empty at extraction time.
	Notes   string `json:"notes"`
	Source  string `json:"source"`
	Topic   string `json:"topic"`
	Tags    string `json:"tags"`
	AIScore string `json:"aiScore"`
}

// Validate returns an error if the record breaks a schema invariant.
func (r *ArticleRecord) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "record url required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "record url %q is not absolute", r.URL)
	}
	if utf8.RuneCountInString(r.PublishedDate) != len(DateLayout) {
		return Errorf(EINVALID, "record published date %q must have %d characters", r.PublishedDate, len(DateLayout))
	}
	return nil
}

// Row flattens the record into the destination column order, keeping the
// first width columns. Width is clamped to [1, FullColumns].
func (r *ArticleRecord) Row(width int) []string {
	row := []string{
		r.Title,
		r.URL,
		r.PublishedDate,
		r.Summary,
		r.Author,
		r.Notes,
		r.Source,
		r.Topic,
		r.Tags,
		r.AIScore,
	}
	if width < 1 {
		width = 1
	}
	if width > len(row) {
		width = len(row)
	}
	return row[:width]
}

// AssembleRecord maps sanitized fields and the source constants into a
// record. Reserved columns are left empty.
func AssembleRecord(f Fields, src *Source) ArticleRecord {
	return ArticleRecord{
		Title:         f.Title,
		URL:           f.Link,
		PublishedDate: f.Date,
		Summary:       f.Summary,
		Author:        f.Author,
		Source:        src.Name,
		Topic:         src.Topic,
	}
}

// Rows flattens records for a sink append.
func Rows(records []ArticleRecord, width int) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].Row(width))
	}
	return rows
}
