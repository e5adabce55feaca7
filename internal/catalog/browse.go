package catalog

import (
	"strings"

	"riseadvertising/internal/model"
)

// ViewMode is the state of the catalog browser.
type ViewMode string

const (
	ModeGrid     ViewMode = "grid"
	ModeCategory ViewMode = "category"
	ModeSearch   ViewMode = "search"
)

// CategoryCard is a category with the image it is displayed with.
type CategoryCard struct {
	model.ServiceCategory
	DisplayImage string `json:"display_image"`
	Tag          string `json:"tag"`
}

// View is what the catalog page renders for a given query and selection.
type View struct {
	Mode       ViewMode               `json:"mode"`
	Query      string                 `json:"query,omitempty"`
	Selected   *model.ServiceCategory `json:"selected,omitempty"`
	Categories []CategoryCard         `json:"categories"`
	Products   []model.Service        `json:"products"`
	Empty      bool                   `json:"empty"`
}

// Cards decorates categories with their resolved display image.
func Cards(categories []model.ServiceCategory, products []model.Service) []CategoryCard {
	cards := make([]CategoryCard, 0, len(categories))
	for _, c := range categories {
		cards = append(cards, CategoryCard{
			ServiceCategory: c,
			DisplayImage:    ResolveCategoryImage(c, products),
			Tag:             CategoryTag(c),
		})
	}
	return cards
}

// Browse builds the catalog view. A non-blank query always wins over a
// selected category; a selection that matches no category falls back to the
// top-level grid.
func Browse(categories []model.ServiceCategory, products []model.Service, query, selectedLetter string) View {
	if q := strings.TrimSpace(query); q != "" {
		cats := SearchCategories(q, categories)
		prods := SearchProducts(q, products)
		return View{
			Mode:       ModeSearch,
			Query:      q,
			Categories: Cards(cats, products),
			Products:   prods,
			Empty:      len(cats) == 0 && len(prods) == 0,
		}
	}

	if selectedLetter != "" {
		if c, ok := FindCategoryByLetter(categories, selectedLetter); ok {
			prods := ProductsInCategory(products, c)
			return View{
				Mode:       ModeCategory,
				Selected:   &c,
				Categories: []CategoryCard{},
				Products:   prods,
				Empty:      len(prods) == 0,
			}
		}
	}

	return View{
		Mode:       ModeGrid,
		Categories: Cards(categories, products),
		Products:   []model.Service{},
		Empty:      len(categories) == 0,
	}
}
