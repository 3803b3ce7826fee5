package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	Revenue      float64 `json:"revenue"`
	OrderCount   int64   `json:"order_count"`
	ProductCount int64   `json:"product_count"`
	UserCount    int64   `json:"user_count"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CategoryID    string   `json:"category_id"`
	ImageURL      string   `json:"image_url"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Currency      string   `json:"currency"`
	Featured      bool     `json:"featured"`
	Bestseller    bool     `json:"bestseller"`
	New           bool     `json:"new"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Stock         int      `json:"stock"`
}

type AdminService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	ListOrders(ctx context.Context) ([]*types.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error
	ListUsers(ctx context.Context) ([]*types.User, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	categoryRepo repos.CategoryRepo
	orderRepo    repos.OrderRepo
	userRepo     repos.UserRepo
}

func NewAdminService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, categoryRepo repos.CategoryRepo, orderRepo repos.OrderRepo, userRepo repos.UserRepo) AdminService {
	serviceLog := log.With("service", "AdminService")
	return &adminService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
	}
}

func (as *adminService) validateProductInput(ctx context.Context, input *ProductInput) error {
	input.Name = normalization.TrimInputString(input.Name)
	input.CategoryID = normalization.ParseInputString(input.CategoryID)
	if input.Name == "" {
		return fmt.Errorf("%w: product name is required", errs.ErrInvalidArgument)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", errs.ErrInvalidArgument)
	}
	if input.OriginalPrice != nil && *input.OriginalPrice < input.Price {
		return fmt.Errorf("%w: original price must be >= price", errs.ErrInvalidArgument)
	}
	if input.Rating < 0 || input.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", errs.ErrInvalidArgument)
	}
	if input.Reviews < 0 {
		return fmt.Errorf("%w: review count must be non-negative", errs.ErrInvalidArgument)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", errs.ErrInvalidArgument)
	}
	exists, err := as.categoryRepo.Exists(ctx, nil, input.CategoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: unknown category %q", errs.ErrInvalidArgument, input.CategoryID)
	}
	return nil
}

func applyProductInput(p *types.Product, input ProductInput) {
	p.Name = input.Name
	p.Description = input.Description
	p.CategoryID = input.CategoryID
	p.ImageURL = input.ImageURL
	p.Price = input.Price
	p.OriginalPrice = input.OriginalPrice
	if input.Currency != "" {
		p.Currency = input.Currency
	}
	p.Featured = input.Featured
	p.Bestseller = input.Bestseller
	p.New = input.New
	p.Rating = input.Rating
	p.Reviews = input.Reviews
	p.Stock = input.Stock
}

func (as *adminService) CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error) {
	if err := as.validateProductInput(ctx, &input); err != nil {
		return nil, err
	}
	product := &types.Product{ID: uuid.New(), Currency: "$"}
	applyProductInput(product, input)
	if _, err := as.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	as.log.Info("Product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

func (as *adminService) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error) {
	if err := as.validateProductInput(ctx, &input); err != nil {
		return nil, err
	}
	found, err := as.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: product %s", errs.ErrNotFound, productID)
	}
	product := found[0]
	applyProductInput(product, input)
	if err := as.productRepo.Update(ctx, nil, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (as *adminService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return as.productRepo.Delete(ctx, nil, productID)
}

func (as *adminService) ListOrders(ctx context.Context) ([]*types.Order, error) {
	return as.orderRepo.List(ctx, nil)
}

var validOrderStatuses = map[string]bool{
	types.OrderStatusPending:   true,
	types.OrderStatusPaid:      true,
	types.OrderStatusShipped:   true,
	types.OrderStatusDelivered: true,
	types.OrderStatusCancelled: true,
}

func (as *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	status = normalization.ParseInputString(status)
	if !validOrderStatuses[status] {
		return fmt.Errorf("%w: unknown order status %q", errs.ErrInvalidArgument, status)
	}
	found, err := as.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("%w: order %s", errs.ErrNotFound, orderID)
	}
	return as.orderRepo.UpdateStatus(ctx, nil, orderID, status)
}

func (as *adminService) ListUsers(ctx context.Context) ([]*types.User, error) {
	return as.userRepo.List(ctx, nil)
}

// GetDashboardStats runs the four aggregate queries concurrently; they are
// independent reads.
func (as *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		revenue, err := as.orderRepo.SumTotalPrice(gctx, nil)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		stats.Revenue = revenue
		return nil
	})
	g.Go(func() error {
		count, err := as.orderRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		stats.OrderCount = count
		return nil
	})
	g.Go(func() error {
		count, err := as.productRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		stats.ProductCount = count
		return nil
	})
	g.Go(func() error {
		count, err := as.userRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		stats.UserCount = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
