package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/catalog"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

// ListProducts accepts FilterCriteria as query params:
// ?category=apparel&search=linen&price_min=10&price_max=100&sort=price_asc
func (ph *ProductHandler) ListProducts(c *gin.Context) {
	var criteria catalog.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	products, err := ph.productService.ListProducts(c.Request.Context(), criteria)
	if err != nil {
		ph.log.Error("ListProducts failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"products": products, "count": len(products)})
}

func (ph *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	product, err := ph.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := ph.productService.ListCategories(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"categories": categories})
}

func (ph *ProductHandler) GetFilterMetadata(c *gin.Context) {
	meta, err := ph.productService.GetFilterMetadata(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, meta)
}
