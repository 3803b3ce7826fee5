package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/services"
)

type WishlistHandler struct {
	wishlistService services.WishlistService
}

func NewWishlistHandler(wishlistService services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (wh *WishlistHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := wh.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func (wh *WishlistHandler) Add(c *gin.Context) {
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
	if err := wh.wishlistService.Add(c.Request.Context(), userID, productID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (wh *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := wh.wishlistService.Remove(c.Request.Context(), userID, productID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
