package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/types"
)

type fakeCategoryRepo struct {
	known map[string]bool
}

func (f *fakeCategoryRepo) Upsert(ctx context.Context, tx *gorm.DB, categories []*types.Category) error {
	for _, c := range categories {
		f.known[c.ID] = true
	}
	return nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Exists(ctx context.Context, tx *gorm.DB, categoryID string) (bool, error) {
	return f.known[categoryID], nil
}

func newTestAdminService(t *testing.T) *adminService {
	t.Helper()
	return &adminService{
		log:          testLogger(t),
		categoryRepo: &fakeCategoryRepo{known: map[string]bool{"home": true}},
	}
}

func TestValidateProductInput(t *testing.T) {
	lower := 5.0
	cases := []struct {
		name    string
		input   ProductInput
		wantErr bool
	}{
		{
			name:  "valid",
			input: ProductInput{Name: "Lamp", CategoryID: "home", Price: 10, Rating: 4.5, Stock: 3},
		},
		{
			name:  "trims and lowercases category",
			input: ProductInput{Name: "  Lamp  ", CategoryID: " HOME ", Price: 10},
		},
		{
			name:    "missing name",
			input:   ProductInput{CategoryID: "home", Price: 10},
			wantErr: true,
		},
		{
			name:    "negative price",
			input:   ProductInput{Name: "Lamp", CategoryID: "home", Price: -1},
			wantErr: true,
		},
		{
			name:    "original price below price",
			input:   ProductInput{Name: "Lamp", CategoryID: "home", Price: 10, OriginalPrice: &lower},
			wantErr: true,
		},
		{
			name:    "rating above five",
			input:   ProductInput{Name: "Lamp", CategoryID: "home", Price: 10, Rating: 5.5},
			wantErr: true,
		},
		{
			name:    "negative reviews",
			input:   ProductInput{Name: "Lamp", CategoryID: "home", Price: 10, Reviews: -1},
			wantErr: true,
		},
		{
			name:    "negative stock",
			input:   ProductInput{Name: "Lamp", CategoryID: "home", Price: 10, Stock: -2},
			wantErr: true,
		},
		{
			name:    "unknown category",
			input:   ProductInput{Name: "Lamp", CategoryID: "toys", Price: 10},
			wantErr: true,
		},
	}
	svc := newTestAdminService(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.validateProductInput(context.Background(), &tc.input)
			if tc.wantErr {
				if !errors.Is(err, errs.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got=%v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateProductInputNormalizesFields(t *testing.T) {
	svc := newTestAdminService(t)
	input := ProductInput{Name: "  Desk Lamp  ", CategoryID: " Home ", Price: 10}

	if err := svc.validateProductInput(context.Background(), &input); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if input.Name != "Desk Lamp" {
		t.Fatalf("name not trimmed: %q", input.Name)
	}
	if input.CategoryID != "home" {
		t.Fatalf("category not normalized: %q", input.CategoryID)
	}
}
