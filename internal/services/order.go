package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/cart"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/observability"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// ShippingAddress is free-form enough for display; no carrier integration.
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Region   string `json:"region,omitempty"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, shipping ShippingAddress) (*types.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*types.Order, error)
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   repos.OrderRepo
	productRepo repos.ProductRepo
	cartService CartService
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo, productRepo repos.ProductRepo, cartService CartService) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:          db,
		log:         serviceLog,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartService: cartService,
	}
}

// PlaceOrder turns the user's persisted cart into an immutable order. Stock
// is re-validated under row locks inside the transaction, so a concurrent
// checkout of the last unit fails here rather than over-committing. The
// persisted cart is cleared only after the transaction commits.
func (os *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, shipping ShippingAddress) (*types.Order, error) {
	ctx, span := observability.Tracer().Start(ctx, "order.place")
	defer span.End()

	view, err := os.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, errs.ErrCartEmpty
	}

	shippingJSON, err := json.Marshal(shipping)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping address: %w", err)
	}

	order := &types.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          types.OrderStatusPending,
		ShippingAddress: datatypes.JSON(shippingJSON),
	}

	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currency := "$"
		for _, line := range view.Lines {
			locked, lErr := os.productRepo.GetByIDForUpdate(ctx, tx, line.Product.ID)
			if lErr != nil {
				return fmt.Errorf("lock product %s: %w", line.Product.ID, lErr)
			}
			if line.Quantity > locked.Stock {
				return &errs.OutOfStockError{
					ProductID: locked.ID.String(),
					Requested: line.Quantity,
					Available: locked.Stock,
				}
			}
			if dErr := os.productRepo.DecrementStock(ctx, tx, locked.ID, line.Quantity); dErr != nil {
				return fmt.Errorf("decrement stock for %s: %w", locked.ID, dErr)
			}
			order.Items = append(order.Items, types.OrderItem{
				ID:          uuid.New(),
				OrderID:     order.ID,
				ProductID:   locked.ID,
				ProductName: locked.Name,
				UnitPrice:   locked.Price,
				Quantity:    line.Quantity,
			})
			order.TotalItems += line.Quantity
			order.TotalPrice += locked.Price * float64(line.Quantity)
			currency = locked.Currency
		}
		order.Currency = currency
		if _, cErr := os.orderRepo.Create(ctx, tx, []*types.Order{order}); cErr != nil {
			return fmt.Errorf("create order: %w", cErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID.String()),
		attribute.Int("order.total_items", order.TotalItems),
		attribute.Float64("order.total_price", order.TotalPrice),
	)

	// Committed; clearing the cart is best-effort. A leftover cart just
	// shows stale lines, never a duplicate order.
	if cErr := os.cartService.ClearCart(ctx, userID); cErr != nil {
		os.log.Warn("Failed to clear cart after order placement", "user_id", userID, "error", cErr)
	}

	os.log.Info("Order placed", "order_id", order.ID, "user_id", userID, "total_price", order.TotalPrice)
	return order, nil
}

func (os *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error) {
	return os.orderRepo.ListByUserID(ctx, nil, userID)
}

func (os *orderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*types.Order, error) {
	found, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, fmt.Errorf("%w: order %s", errs.ErrNotFound, orderID)
	}
	return found[0], nil
}

// computeTotals derives the item count and price sum for a set of cart
// lines.
func computeTotals(lines []cart.Line) (items int, total float64) {
	for _, l := range lines {
		items += l.Quantity
		total += l.LineTotal()
	}
	return items, total
}
