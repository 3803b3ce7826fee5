package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		log:          log.With("handler", "OrderHandler"),
		orderService: orderService,
	}
}

func (oh *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Shipping services.ShippingAddress `json:"shipping"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	order, err := oh.orderService.PlaceOrder(c.Request.Context(), userID, req.Shipping)
	if err != nil {
		oh.log.Error("PlaceOrder failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}

func (oh *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orders, err := oh.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"orders": orders})
}

func (oh *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	order, err := oh.orderService.GetForUser(c.Request.Context(), userID, orderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}
