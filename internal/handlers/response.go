package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the error taxonomy onto status codes: validation
// problems are 400s, missing resources 404s, auth failures 401/403, stock
// conflicts 409, everything else a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errs.IsOutOfStock(err):
		RespondError(c, http.StatusConflict, "out_of_stock", err)
	case errors.Is(err, errs.ErrCartEmpty):
		RespondError(c, http.StatusBadRequest, "cart_empty", err)
	case errors.Is(err, errs.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, errs.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, errs.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
