// Package sources holds the built-in source adapters and loads adapters
// from YAML files.
package sources

import (
	"time"

	"github.com/fwojciec/harvest"
)

// Topic is the subject category shared by the built-in adapters.
const Topic = "Digital Asset Management"

// Builtin returns fresh copies of the built-in adapters with defaults
// applied.
func Builtin() []*harvest.Source {
	all := []*harvest.Source{
		cmsWire(),
		damNews(),
		brandfolderBlog(),
	}
	for _, src := range all {
		src.ApplyDefaults()
	}
	return all
}

// cmsWire renders a JS listing and strips the section label that prefixes
// every headline.
func cmsWire() *harvest.Source {
	return &harvest.Source{
		Name:              "CMSWire",
		URL:               "https://www.cmswire.com/digital-asset-management/",
		Topic:             Topic,
		ContainerSelector: "article",
		MaxCards:          10,
		Boilerplate:       []string{"Digital Asset Management"},
		SponsoredMarkers:  []string{"sponsored", "partner content"},
		RequiresJS:        true,
		Settle: harvest.Settle{
			Delay:    6 * time.Second,
			Selector: "article",
		},
	}
}

// damNews is the early static adapter writing the seven-column layout.
func damNews() *harvest.Source {
	return &harvest.Source{
		Name:              "DAM News",
		URL:               "https://digitalassetmanagementnews.org/",
		Topic:             Topic,
		ContainerSelector: "article",
		MaxCards:          5,
		Columns:           harvest.NarrowColumns,
		Fields: harvest.FieldSelectors{
			Title: []harvest.Selector{
				{CSS: ".entry-title"},
				{CSS: "h2"},
			},
			Link: []harvest.Selector{
				{CSS: ".entry-title a[href]", Attr: "href"},
				{CSS: "a[href]", Attr: "href"},
			},
			Date: []harvest.Selector{
				{CSS: "time.entry-date", Attr: "datetime", Limit: 10},
				{CSS: "time"},
			},
			Summary: []harvest.Selector{
				{CSS: ".entry-summary p"},
				{CSS: ".entry-content p"},
			},
			Author: []harvest.Selector{
				{CSS: ".author a"},
				{CSS: ".author"},
			},
		},
	}
}

func brandfolderBlog() *harvest.Source {
	return &harvest.Source{
		Name:              "Brandfolder Blog",
		URL:               "https://brandfolder.com/resources/blog/",
		Topic:             Topic,
		ContainerSelector: ".resource-card",
		MaxCards:          12,
		RequiresJS:        true,
		Fields: harvest.FieldSelectors{
			Title: []harvest.Selector{
				{CSS: ".resource-card__title"},
				{CSS: "h3"},
				{CSS: "a"},
			},
			Link: []harvest.Selector{
				{CSS: "a[href]", Attr: "href"},
				{Attr: "href"},
			},
			Date: []harvest.Selector{
				{CSS: "time", Attr: "datetime", Limit: 10},
				{CSS: ".resource-card__date"},
			},
			Summary: []harvest.Selector{
				{CSS: ".resource-card__excerpt"},
				{CSS: "p"},
			},
			Author: []harvest.Selector{
				{CSS: ".resource-card__author"},
			},
		},
		Settle: harvest.Settle{
			Delay:    4 * time.Second,
			Selector: ".resource-card",
			Rounds:   2,
		},
	}
}
