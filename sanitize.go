package harvest

import (
	"net/url"
	"strings"
	"time"
)

// dateLayouts are tried on date strings whose first ten characters are not
// already a calendar date.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2006/01/02",
}

// CanonicalizeLink rewrites a relative link to an absolute URL on origin.
// Links that already start with http:// or https:// are returned unchanged.
// An empty link stays empty.
func CanonicalizeLink(link, origin string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", nil
	}

	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return link, nil
	}
	if strings.HasPrefix(link, "//") {
		return "https:" + link, nil
	}

	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", Errorf(EINVALID, "invalid origin %q", origin)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", Errorf(EINVALID, "invalid link %q: %v", link, err)
	}
	if ref.Scheme != "" {
		return "", Errorf(EINVALID, "unsupported link scheme %q", ref.Scheme)
	}
	return base.ResolveReference(ref).String(), nil
}

// CleanTitle removes every boilerplate phrase from the title and collapses
// whitespace. Removal repeats until no phrase is left, including phrases
// formed by a previous removal. An empty result becomes UntitledPlaceholder.
func CleanTitle(title string, boilerplate []string) string {
	title = collapseSpace(title)
	for {
		prev := title
		for _, phrase := range boilerplate {
			if phrase == "" {
				continue
			}
			title = strings.ReplaceAll(title, phrase, " ")
		}
		title = collapseSpace(title)
		if title == prev {
			break
		}
	}
	if title == "" {
		return UntitledPlaceholder
	}
	return title
}

// NormalizeDate returns raw as a YYYY-MM-DD calendar date. The first ten
// characters are used when they already form a date; a few common layouts
// are tried on the whole string otherwise. Anything else, including an
// empty string, yields now in the same format.
func NormalizeDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(DateLayout)
	}

	if len(raw) >= len(DateLayout) {
		head := raw[:len(DateLayout)]
		if _, err := time.Parse(DateLayout, head); err == nil {
			return head
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return now.Format(DateLayout)
}

// CleanSummary collapses whitespace. An empty summary becomes
// NoSummaryPlaceholder.
func CleanSummary(summary string) string {
	summary = collapseSpace(summary)
	if summary == "" {
		return NoSummaryPlaceholder
	}
	return summary
}

// CleanAuthor collapses whitespace. An absent author stays empty.
func CleanAuthor(author string) string {
	return collapseSpace(author)
}

// Sanitize applies every cleanup rule of the source to the extracted fields.
// The returned error reports a link that cannot be made absolute.
func Sanitize(f Fields, src *Source, now time.Time) (Fields, error) {
	link, err := CanonicalizeLink(f.Link, src.Origin)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Title:   CleanTitle(f.Title, src.Boilerplate),
		Link:    link,
		Date:    NormalizeDate(f.Date, now),
		Summary: CleanSummary(f.Summary),
		Author:  CleanAuthor(f.Author),
	}, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
