package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/catalog"
	"github.com/yungbote/storefront-backend/internal/types"
)

// flakyProductRepo serves a fixed list until tripped, then fails every read.
type flakyProductRepo struct {
	fakeProductRepo
	failing bool
}

func (f *flakyProductRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	if f.failing {
		return nil, errors.New("connection refused")
	}
	return f.fakeProductRepo.List(ctx, tx)
}

func TestListProductsFallsBackToLastKnownList(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "lamp", Price: 10, Stock: 3}
	repo := &flakyProductRepo{fakeProductRepo: *newFakeProductRepo(p)}
	svc := NewProductService(nil, testLogger(t), repo, &fakeCategoryRepo{known: map[string]bool{}})

	first, err := svc.ListProducts(ctx, catalog.FilterCriteria{})
	if err != nil {
		t.Fatalf("initial list: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("initial list: want 1 product got=%d", len(first))
	}

	repo.failing = true
	stale, err := svc.ListProducts(ctx, catalog.FilterCriteria{})
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != p.ID {
		t.Fatalf("stale list: got=%+v", stale)
	}
}

func TestListProductsFailsWithNoKnownList(t *testing.T) {
	repo := &flakyProductRepo{fakeProductRepo: *newFakeProductRepo(), failing: true}
	svc := NewProductService(nil, testLogger(t), repo, &fakeCategoryRepo{known: map[string]bool{}})

	if _, err := svc.ListProducts(context.Background(), catalog.FilterCriteria{}); err == nil {
		t.Fatal("expected error when no last-known list exists")
	}
}

func TestGetFilterMetadata(t *testing.T) {
	ctx := context.Background()
	products := []types.Product{
		{ID: uuid.New(), Name: "a", CategoryID: "home", Price: 5, Stock: 2},
		{ID: uuid.New(), Name: "b", CategoryID: "home", Price: 50, Stock: 0},
		{ID: uuid.New(), Name: "c", CategoryID: "audio", Price: 20, Stock: 1},
	}
	repo := newFakeProductRepo(products...)
	cats := &fakeCategoryRepo{known: map[string]bool{}}
	if err := cats.Upsert(ctx, nil, []*types.Category{{ID: "home"}, {ID: "audio"}}); err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	svc := NewProductService(nil, testLogger(t), repo, cats)

	meta, err := svc.GetFilterMetadata(ctx)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.PriceRange.Min != 5 || meta.PriceRange.Max != 50 {
		t.Fatalf("price range: got=%+v", meta.PriceRange)
	}
	if meta.Availability.InStock != 2 || meta.Availability.OutOfStock != 1 {
		t.Fatalf("availability: got=%+v", meta.Availability)
	}
}
