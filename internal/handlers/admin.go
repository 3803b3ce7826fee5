package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type AdminHandler struct {
	log          *logger.Logger
	adminService services.AdminService
}

func NewAdminHandler(log *logger.Logger, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		log:          log.With("handler", "AdminHandler"),
		adminService: adminService,
	}
}

func (ah *AdminHandler) CreateProduct(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	product, err := ah.adminService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ah *AdminHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	product, err := ah.adminService.UpdateProduct(c.Request.Context(), productID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ah *AdminHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := ah.adminService.DeleteProduct(c.Request.Context(), productID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ah *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := ah.adminService.ListOrders(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"orders": orders})
}

func (ah *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ah.adminService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.adminService.ListUsers(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

func (ah *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := ah.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		ah.log.Error("GetDashboardStats failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
