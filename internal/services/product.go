package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/catalog"
	"github.com/yungbote/storefront-backend/internal/logger"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// FilterMetadata is the storefront's filter panel data: category counts, the
// overall price range, and availability counts.
type FilterMetadata struct {
	Categories   []CategoryCount `json:"categories"`
	PriceRange   PriceRange      `json:"price_range"`
	Availability Availability    `json:"availability"`
}

type CategoryCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Availability struct {
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
}

type ProductService interface {
	ListProducts(ctx context.Context, criteria catalog.FilterCriteria) ([]types.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	ListCategories(ctx context.Context) ([]*types.Category, error)
	GetFilterMetadata(ctx context.Context) (*FilterMetadata, error)
}

type productService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	categoryRepo repos.CategoryRepo

	// Last successfully fetched product list. Served when the database read
	// fails so a transient outage degrades to stale data instead of an
	// empty storefront.
	mu        sync.RWMutex
	lastKnown []types.Product
	hasKnown  bool
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, categoryRepo repos.CategoryRepo) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (ps *productService) ListProducts(ctx context.Context, criteria catalog.FilterCriteria) ([]types.Product, error) {
	products, err := ps.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, criteria), nil
}

func (ps *productService) fetchAll(ctx context.Context) ([]types.Product, error) {
	rows, err := ps.productRepo.List(ctx, nil)
	if err != nil {
		ps.mu.RLock()
		defer ps.mu.RUnlock()
		if ps.hasKnown {
			ps.log.Warn("Product list fetch failed, serving last-known list", "error", err)
			out := make([]types.Product, len(ps.lastKnown))
			copy(out, ps.lastKnown)
			return out, nil
		}
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	products := make([]types.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, *r)
	}
	ps.mu.Lock()
	ps.lastKnown = products
	ps.hasKnown = true
	ps.mu.Unlock()
	out := make([]types.Product, len(products))
	copy(out, products)
	return out, nil
}

func (ps *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	found, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: product %s", errs.ErrNotFound, productID)
	}
	return found[0], nil
}

func (ps *productService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	return ps.categoryRepo.List(ctx, nil)
}

func (ps *productService) GetFilterMetadata(ctx context.Context) (*FilterMetadata, error) {
	products, err := ps.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := ps.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	meta := &FilterMetadata{}
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.CategoryID]++
		if p.InStock() {
			meta.Availability.InStock++
		} else {
			meta.Availability.OutOfStock++
		}
		if meta.PriceRange.Min == 0 || p.Price < meta.PriceRange.Min {
			meta.PriceRange.Min = p.Price
		}
		if p.Price > meta.PriceRange.Max {
			meta.PriceRange.Max = p.Price
		}
	}
	for _, c := range categories {
		meta.Categories = append(meta.Categories, CategoryCount{
			ID:    c.ID,
			Name:  c.Name,
			Count: counts[c.ID],
		})
	}
	return meta, nil
}
