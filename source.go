package harvest

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Source defaults.
const (
	DefaultTable          = "Research"
	DefaultFetchTimeout   = 60 * time.Second
	DefaultSettleDelay    = 3 * time.Second
	DefaultSponsoredTerm  = "sponsored"
	DefaultContainer      = "article"
	DefaultSettleInterval = 500 * time.Millisecond
	DefaultSettleRounds   = 3
)

// Source is a source adapter: the site-specific constants and selector
// chains that parametrize the pipeline for one origin site.
type Source struct {
	// Name identifies the adapter and fills the record's source column.
	Name string `yaml:"name"`

	// URL is the listing page to harvest.
	URL string `yaml:"url"`

	// Origin is prefixed to relative links, e.g. "https://example.com".
	// Defaults to the scheme and host of URL.
	Origin string `yaml:"origin"`

	// Topic fills the record's topic column.
	Topic string `yaml:"topic"`

	// ContainerSelector matches one card per article teaser.
	ContainerSelector string `yaml:"container"`

	// MaxCards caps the number of cards taken from the page. Zero means no cap.
	MaxCards int `yaml:"max_cards"`

	Fields FieldSelectors `yaml:"fields"`

	// Boilerplate phrases are removed from titles.
	Boilerplate []string `yaml:"boilerplate"`

	// SponsoredMarkers flag sponsored cards (case-insensitive).
	SponsoredMarkers []string `yaml:"sponsored_markers"`

	// Columns is the destination width: NarrowColumns or FullColumns.
	Columns int `yaml:"columns"`

	// Table is the destination sheet tab.
	Table string `yaml:"table"`

	// RequiresJS selects the browser fetcher over plain HTTP.
	RequiresJS bool `yaml:"requires_js"`

	Timeout time.Duration `yaml:"timeout"`
	Settle  Settle        `yaml:"settle"`
}

// ApplyDefaults fills unset optional fields.
func (s *Source) ApplyDefaults() {
	if s.Origin == "" {
		if u, err := url.Parse(s.URL); err == nil && u.Host != "" {
			s.Origin = u.Scheme + "://" + u.Host
		}
	}
	if s.ContainerSelector == "" {
		s.ContainerSelector = DefaultContainer
	}
	if s.Fields.IsZero() {
		s.Fields = DefaultFieldSelectors()
	}
	if s.SponsoredMarkers == nil {
		s.SponsoredMarkers = []string{DefaultSponsoredTerm}
	}
	if s.Columns == 0 {
		s.Columns = FullColumns
	}
	if s.Table == "" {
		s.Table = DefaultTable
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultFetchTimeout
	}
	if s.RequiresJS && s.Settle.Delay == 0 {
		s.Settle.Delay = DefaultSettleDelay
	}
}

// Validate returns an error if the adapter cannot drive a run.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source %q url required", s.Name)
	}
	if u, err := url.Parse(s.URL); err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "source %q url %q is not absolute", s.Name, s.URL)
	}
	if u, err := url.Parse(s.Origin); err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "source %q origin %q is not an origin", s.Name, s.Origin)
	}
	if s.ContainerSelector == "" {
		return Errorf(EINVALID, "source %q container selector required", s.Name)
	}
	if s.MaxCards < 0 {
		return Errorf(EINVALID, "source %q max cards must be non-negative", s.Name)
	}
	if s.Columns != NarrowColumns && s.Columns != FullColumns {
		return Errorf(EINVALID, "source %q columns must be %d or %d", s.Name, NarrowColumns, FullColumns)
	}
	if len(s.Fields.Link) == 0 {
		return Errorf(EINVALID, "source %q link selectors required", s.Name)
	}
	return nil
}

// ColumnRange returns the destination column range for the adapter's
// width, e.g. "A:J".
func (s *Source) ColumnRange() string {
	width := s.Columns
	if width < 1 || width > FullColumns {
		width = FullColumns
	}
	return fmt.Sprintf("A:%c", 'A'+rune(width-1))
}

// Host returns the host of the listing URL.
func (s *Source) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
