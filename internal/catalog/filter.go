package catalog

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yungbote/storefront-backend/internal/types"
)

// Sort keys accepted by the storefront.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortRating    = "rating"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// FilterCriteria is the user-chosen projection over the product list.
// The zero value matches everything under the featured ordering.
type FilterCriteria struct {
	Category   string  `form:"category" json:"category"`
	SearchText string  `form:"search" json:"search"`
	PriceMin   float64 `form:"price_min" json:"price_min"`
	PriceMax   float64 `form:"price_max" json:"price_max"`
	SortKey    string  `form:"sort" json:"sort"`
}

// Normalized fills the zero-value defaults: empty category means all, a zero
// PriceMax means unbounded.
func (f FilterCriteria) Normalized() FilterCriteria {
	if strings.TrimSpace(f.Category) == "" {
		f.Category = CategoryAll
	}
	if f.PriceMax == 0 {
		f.PriceMax = math.MaxFloat64
	}
	if f.SortKey == "" {
		f.SortKey = SortFeatured
	}
	return f
}

// Apply filters and sorts products by criteria, returning a new slice. The
// input is never mutated, sorting is stable, and an empty result is an empty
// slice rather than nil or an error. Apply is a pure function: re-running
// with the same inputs yields the same output.
func Apply(products []types.Product, criteria FilterCriteria) []types.Product {
	criteria = criteria.Normalized()

	out := make([]types.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(criteria.SearchText))
	for _, p := range products {
		if criteria.Category != CategoryAll && p.CategoryID != criteria.Category {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if p.Price < criteria.PriceMin || p.Price > criteria.PriceMax {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, criteria.SortKey)
	return out
}

func matchesSearch(p types.Product, loweredSearch string) bool {
	return strings.Contains(strings.ToLower(p.Name), loweredSearch) ||
		strings.Contains(strings.ToLower(p.Description), loweredSearch)
}

func sortProducts(products []types.Product, sortKey string) {
	switch sortKey {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortName:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return coll.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// Featured ordering: featured products first, rating descending
		// within each group, input order on ties.
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Featured != products[j].Featured {
				return products[i].Featured
			}
			return products[i].Rating > products[j].Rating
		})
	}
}
