// Package catalog holds the static site data and the pure filter, search and
// naming rules applied to categories, services and portfolio items.
package catalog

import (
	"strings"

	"riseadvertising/internal/model"
)

// CategoryTag is the tag string that marks a service as a member of c.
func CategoryTag(c model.ServiceCategory) string {
	return c.Letter + ". " + c.Title
}

// HasTag reports whether tags contains tag exactly.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// BelongsTo reports whether the service is tagged with the category's exact tag
// string. Case and spacing must match.
func BelongsTo(s model.Service, c model.ServiceCategory) bool {
	return HasTag(s.Tags, CategoryTag(c))
}

// ProductsInCategory returns the services that belong to c, preserving order.
func ProductsInCategory(products []model.Service, c model.ServiceCategory) []model.Service {
	out := make([]model.Service, 0)
	for _, p := range products {
		if BelongsTo(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// FindCategoryByLetter returns the first category with the given letter.
func FindCategoryByLetter(categories []model.ServiceCategory, letter string) (model.ServiceCategory, bool) {
	for _, c := range categories {
		if c.Letter == letter {
			return c, true
		}
	}
	return model.ServiceCategory{}, false
}

// FilterServicesByLetter keeps services tagged with the category identified by
// letter. An empty letter keeps everything; an unknown letter keeps nothing.
func FilterServicesByLetter(products []model.Service, categories []model.ServiceCategory, letter string) []model.Service {
	if letter == "" {
		return products
	}
	c, ok := FindCategoryByLetter(categories, letter)
	if !ok {
		return []model.Service{}
	}
	return ProductsInCategory(products, c)
}

// FilterPortfolioByTag keeps items carrying tag exactly. An empty tag keeps everything.
func FilterPortfolioByTag(items []model.PortfolioItem, tag string) []model.PortfolioItem {
	if tag == "" {
		return items
	}
	out := make([]model.PortfolioItem, 0)
	for _, it := range items {
		if HasTag(it.Tags, tag) {
			out = append(out, it)
		}
	}
	return out
}

// ResolveCategoryImage picks the image shown for a category card: its own
// image, else the image of its first member service, else the placeholder.
func ResolveCategoryImage(c model.ServiceCategory, products []model.Service) string {
	if c.ImageURL != "" {
		return c.ImageURL
	}
	tag := CategoryTag(c)
	for _, p := range products {
		if HasTag(p.Tags, tag) {
			if p.ImageURL != "" {
				return p.ImageURL
			}
			break
		}
	}
	return PlaceholderImage
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// SearchProducts returns services whose title, short description or any tag
// contains q, ignoring case. A blank query returns every service.
func SearchProducts(q string, products []model.Service) []model.Service {
	query := strings.ToLower(strings.TrimSpace(q))
	if query == "" {
		return products
	}
	out := make([]model.Service, 0)
	for _, p := range products {
		if matchesProduct(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func matchesProduct(p model.Service, lowerQuery string) bool {
	if containsFold(p.Title, lowerQuery) || containsFold(p.ShortDescription, lowerQuery) {
		return true
	}
	for _, t := range p.Tags {
		if containsFold(t, lowerQuery) {
			return true
		}
	}
	return false
}

// SearchCategories returns categories whose title or description contains q,
// ignoring case. A blank query returns every category.
func SearchCategories(q string, categories []model.ServiceCategory) []model.ServiceCategory {
	query := strings.ToLower(strings.TrimSpace(q))
	if query == "" {
		return categories
	}
	out := make([]model.ServiceCategory, 0)
	for _, c := range categories {
		if containsFold(c.Title, query) || containsFold(c.Description, query) {
			out = append(out, c)
		}
	}
	return out
}
