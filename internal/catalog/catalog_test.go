package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riseadvertising/internal/model"
)

func TestBelongsTo(t *testing.T) {
	signs := model.ServiceCategory{Letter: "A", Title: "Signs"}

	tests := []struct {
		name     string
		tags     []string
		expected bool
	}{
		{name: "exact tag", tags: []string{"A. Signs"}, expected: true},
		{name: "tag not first", tags: []string{"Outdoor", "A. Signs"}, expected: true},
		{name: "different case", tags: []string{"a. signs"}, expected: false},
		{name: "missing space", tags: []string{"A.Signs"}, expected: false},
		{name: "prefix only", tags: []string{"A. Signs & More"}, expected: false},
		{name: "no tags", tags: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BelongsTo(model.Service{Tags: tt.tags}, signs))
		})
	}
}

func TestSearch(t *testing.T) {
	categories := []model.ServiceCategory{
		{Letter: "A", Title: "Large Format Printing", Description: "Banners and backdrops"},
		{Letter: "B", Title: "Signage & Neon & LED Signs", Description: "Shop signs"},
	}
	products := []model.Service{
		{Title: "Roll-up Banner", ShortDescription: "Portable display", Tags: []string{"A. Large Format Printing"}},
		{Title: "Channel Letters", ShortDescription: "Illuminated NEON look", Tags: []string{"B. Signage & Neon & LED Signs"}},
		{Title: "Mugs", ShortDescription: "Ceramic", Tags: []string{"D. Promotional Items", "kitchen"}},
	}

	t.Run("category title matches case-insensitively", func(t *testing.T) {
		got := SearchCategories("neon", categories)
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Letter)
	})

	t.Run("category description matches", func(t *testing.T) {
		got := SearchCategories("BACKDROPS", categories)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Letter)
	})

	t.Run("product matches title description or tag", func(t *testing.T) {
		assert.Len(t, SearchProducts("banner", products), 1)
		assert.Len(t, SearchProducts("neon", products), 1)
		assert.Len(t, SearchProducts("KITCHEN", products), 1)
		assert.Len(t, SearchProducts("printing", products), 1)
	})

	t.Run("blank query returns everything", func(t *testing.T) {
		assert.Len(t, SearchProducts("   ", products), 3)
		assert.Len(t, SearchCategories("", categories), 2)
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		got := SearchProducts("zzz", products)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestResolveCategoryImage(t *testing.T) {
	cat := model.ServiceCategory{Letter: "C", Title: "Vehicle Branding"}
	member := model.Service{Tags: []string{"C. Vehicle Branding"}, ImageURL: "https://cdn/wrap.jpg"}
	other := model.Service{Tags: []string{"A. Large Format Printing"}, ImageURL: "https://cdn/banner.jpg"}

	withOwn := cat
	withOwn.ImageURL = "https://cdn/own.jpg"

	assert.Equal(t, "https://cdn/own.jpg", ResolveCategoryImage(withOwn, []model.Service{member}))
	assert.Equal(t, "https://cdn/wrap.jpg", ResolveCategoryImage(cat, []model.Service{other, member}))
	assert.Equal(t, PlaceholderImage, ResolveCategoryImage(cat, []model.Service{other}))
	assert.Equal(t, PlaceholderImage, ResolveCategoryImage(cat, []model.Service{{Tags: []string{"C. Vehicle Branding"}}, member}))
}

func TestBrowse(t *testing.T) {
	categories := []model.ServiceCategory{
		{Letter: "A", Title: "Large Format Printing"},
		{Letter: "B", Title: "Signage & Neon & LED Signs"},
	}
	products := []model.Service{
		{Title: "Roll-up Banner", Tags: []string{"A. Large Format Printing"}},
		{Title: "Light Box", Tags: []string{"B. Signage & Neon & LED Signs"}},
	}

	t.Run("grid when nothing selected", func(t *testing.T) {
		v := Browse(categories, products, "", "")
		assert.Equal(t, ModeGrid, v.Mode)
		assert.Len(t, v.Categories, 2)
		assert.False(t, v.Empty)
	})

	t.Run("category drill-down", func(t *testing.T) {
		v := Browse(categories, products, "", "B")
		assert.Equal(t, ModeCategory, v.Mode)
		require.NotNil(t, v.Selected)
		assert.Equal(t, "B", v.Selected.Letter)
		require.Len(t, v.Products, 1)
		assert.Equal(t, "Light Box", v.Products[0].Title)
	})

	t.Run("query overrides selection", func(t *testing.T) {
		v := Browse(categories, products, "banner", "B")
		assert.Equal(t, ModeSearch, v.Mode)
		assert.Nil(t, v.Selected)
		require.Len(t, v.Products, 1)
		assert.Equal(t, "Roll-up Banner", v.Products[0].Title)
	})

	t.Run("unknown selection falls back to grid", func(t *testing.T) {
		v := Browse(categories, products, "", "Z")
		assert.Equal(t, ModeGrid, v.Mode)
	})

	t.Run("empty category is flagged", func(t *testing.T) {
		v := Browse(append(categories, model.ServiceCategory{Letter: "C", Title: "Vehicle Branding"}), products, "", "C")
		assert.Equal(t, ModeCategory, v.Mode)
		assert.True(t, v.Empty)
	})

	t.Run("search without results is flagged", func(t *testing.T) {
		v := Browse(categories, products, "embroidery", "")
		assert.True(t, v.Empty)
	})
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"VIP Signage @ Lebu Mall!": "vip-signage-lebu-mall",
		"  Roll-up   Banner  ":     "roll-up-banner",
		"LED & Neon -- Signs":      "led-neon-signs",
		"2024 Expo":                "2024-expo",
		"!!!":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}

	assert.Equal(t, "custom", SlugOrDefault("  custom ", "Ignored Title"))
	assert.Equal(t, "from-title", SlugOrDefault("", "From Title"))
}

func TestNextCategoryLetter(t *testing.T) {
	assert.Equal(t, "A", NextCategoryLetter(0))
	assert.Equal(t, "D", NextCategoryLetter(3))
	assert.Equal(t, "Z", NextCategoryLetter(25))
	assert.Equal(t, "AA", NextCategoryLetter(26))

	// With A, B, C present and B deleted the count is 2, so the draft letter is C
	// again even though C is still taken.
	assert.Equal(t, "C", NextCategoryLetter(2))
}

func TestFilters(t *testing.T) {
	categories := []model.ServiceCategory{{Letter: "A", Title: "Signs"}}
	products := []model.Service{
		{Title: "one", Tags: []string{"A. Signs"}},
		{Title: "two", Tags: []string{"B. Other"}},
	}
	assert.Len(t, FilterServicesByLetter(products, categories, ""), 2)
	assert.Len(t, FilterServicesByLetter(products, categories, "A"), 1)
	assert.Empty(t, FilterServicesByLetter(products, categories, "Q"))

	items := []model.PortfolioItem{
		{Title: "x", Tags: []string{"Banners"}},
		{Title: "y", Tags: []string{"Events", "Banners"}},
		{Title: "z", Tags: []string{"Signage"}},
	}
	assert.Len(t, FilterPortfolioByTag(items, "Banners"), 2)
	assert.Len(t, FilterPortfolioByTag(items, ""), 3)
	assert.Empty(t, FilterPortfolioByTag(items, "banners"))
}
