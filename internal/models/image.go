package models

import "strings"

// CategoryAll disables category filtering.
const CategoryAll = "All Images"

// Categories lists the browsable catalog sections in display order.
var Categories = []string{
	CategoryAll,
	"Match Highlights",
	"Player Portraits",
	"Stadium Views",
	"Team Celebrations",
	"Vintage Classics",
}

// Image is a catalog entry. Free images have IsPremium=false and Price=0.
type Image struct {
	ID        int64
	Title     string
	ImageURL  string
	IsPremium bool
	Price     float64
	Category  string
}

// ImageFilter narrows a catalog listing. Zero values disable each criterion;
// MaxPrice <= 0 means no upper bound.
type ImageFilter struct {
	Category    string
	Search      string
	OnlyFree    bool
	OnlyPremium bool
	MinPrice    float64
	MaxPrice    float64
}

// Match reports whether img passes every criterion of f.
func (f ImageFilter) Match(img Image) bool {
	if f.Category != "" && f.Category != CategoryAll && !strings.EqualFold(f.Category, img.Category) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(img.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.OnlyFree && img.IsPremium {
		return false
	}
	if f.OnlyPremium && !img.IsPremium {
		return false
	}
	if img.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && img.Price > f.MaxPrice {
		return false
	}
	return true
}

// CategorySlug turns "Stadium Views" into "stadium-views".
func CategorySlug(category string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "-")
}

// CategoryBySlug resolves a slug produced by CategorySlug back to its
// display name.
func CategoryBySlug(slug string) (string, bool) {
	for _, c := range Categories {
		if CategorySlug(c) == strings.ToLower(slug) {
			return c, true
		}
	}
	return "", false
}
