package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/services"
)

type CartHandler struct {
	log         *logger.Logger
	cartService services.CartService
}

func NewCartHandler(log *logger.Logger, cartService services.CartService) *CartHandler {
	return &CartHandler{
		log:         log.With("handler", "CartHandler"),
		cartService: cartService,
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (ch *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	view, err := ch.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		ch.log.Error("GetCart failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	view, err := ch.cartService.AddItem(c.Request.Context(), userID, productID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	view, err := ch.cartService.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	view, err := ch.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (ch *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := ch.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "cart cleared"})
}
