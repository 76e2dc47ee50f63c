package model

import "time"

// Pages holding editable content.
var Pages = []string{"inicio", "sobre", "servicos", "portfolio", "contato"}

func ValidPage(p string) bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

// ValidContentType reports whether t is text, image or html.
func ValidContentType(t string) bool {
	return t == "text" || t == "image" || t == "html"
}

// PageContent is one editable section of a public page.
type PageContent struct {
	ID           int64     `json:"id"`
	PageName     string    `json:"page_name"`
	SectionKey   string    `json:"section_key"`
	ContentType  string    `json:"content_type"`
	ContentValue string    `json:"content_value"`
	OrderIndex   int       `json:"order_index"`
	UpdatedAt    time.Time `json:"updated_at"`
}
