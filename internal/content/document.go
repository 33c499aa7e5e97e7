package content

import "strings"

// Document is one GOV.UK content item: a default body plus the named
// parts a guide-style page is split into.
type Document struct {
	Title   string `json:"title"`
	Details struct {
		Body  string `json:"body"`
		Parts []Part `json:"parts"`
	} `json:"details"`
}

// Part is one named sub-section of a guide document.
type Part struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Section returns the body to scrape: the named part when the slug
// exists, otherwise the concatenation of all parts, otherwise the
// default body.
func (d *Document) Section(slug string) string {
	if slug != "" {
		for _, part := range d.Details.Parts {
			if part.Slug == slug {
				return part.Body
			}
		}
	}
	if len(d.Details.Parts) > 0 {
		bodies := make([]string, 0, len(d.Details.Parts))
		for _, part := range d.Details.Parts {
			bodies = append(bodies, part.Body)
		}
		return strings.Join(bodies, "\n")
	}
	return d.Details.Body
}
