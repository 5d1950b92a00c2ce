package harvest

import "strings"

// IsSponsored reports whether raw card content contains any marker term,
// ignoring case.
func IsSponsored(raw string, markers []string) bool {
	raw = strings.ToLower(raw)
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" && strings.Contains(raw, m) {
			return true
		}
	}
	return false
}

// Deduplicator tracks canonical URLs already accepted in the current run.
// The zero value is not usable; use NewDeduplicator.
type Deduplicator struct {
	seen map[string]struct{}
}

// NewDeduplicator returns an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Accept records url and returns true the first time it is seen.
// It returns false for every repeat.
func (d *Deduplicator) Accept(url string) bool {
	if _, ok := d.seen[url]; ok {
		return false
	}
	d.seen[url] = struct{}{}
	return true
}

// Seen reports whether url was already accepted.
func (d *Deduplicator) Seen(url string) bool {
	_, ok := d.seen[url]
	return ok
}

// Len returns the number of accepted URLs.
func (d *Deduplicator) Len() int {
	return len(d.seen)
}
