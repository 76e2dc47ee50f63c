package model

import "time"

// ProjectCategories lists the portfolio categories in display order.
var ProjectCategories = []string{"calhas", "rufos", "colarinhos", "chamines", "coifas", "condutores"}

// ValidProjectCategory reports whether c is a known category.
func ValidProjectCategory(c string) bool {
	for _, known := range ProjectCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	MaterialThickness string    `json:"material_thickness"`
	Location          string    `json:"location"`
	Images            []string  `json:"images"`
	Featured          bool      `json:"featured"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProjectListOptions filters the portfolio list.
type ProjectListOptions struct {
	Category     string
	Search       string
	FeaturedOnly bool
}
