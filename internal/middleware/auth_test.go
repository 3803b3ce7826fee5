package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

func newTestContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestExtractTokenPrefersBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart?token=querytoken", nil)
	req.Header.Set("Authorization", "Bearer headertoken")
	c, _ := newTestContext(t, req)

	if got := extractToken(c); got != "headertoken" {
		t.Fatalf("token: want=headertoken got=%q", got)
	}
}

func TestExtractTokenFallsBackToQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart?token=querytoken", nil)
	c, _ := newTestContext(t, req)

	if got := extractToken(c); got != "querytoken" {
		t.Fatalf("token: want=querytoken got=%q", got)
	}
}

func TestExtractTokenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	c, _ := newTestContext(t, req)

	if got := extractToken(c); got != "" {
		t.Fatalf("token: want empty got=%q", got)
	}
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	am := &AuthMiddleware{}
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	ctx := requestdata.WithRequestData(req.Context(), &requestdata.RequestData{
		UserID: uuid.New(),
		Role:   types.RoleAdmin,
	})
	c, w := newTestContext(t, req.WithContext(ctx))

	am.RequireAdmin()(c)

	if c.IsAborted() {
		t.Fatalf("admin request aborted: status=%d", w.Code)
	}
}

func TestRequireAdminRejectsCustomerRole(t *testing.T) {
	am := &AuthMiddleware{}
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	ctx := requestdata.WithRequestData(req.Context(), &requestdata.RequestData{
		UserID: uuid.New(),
		Role:   types.RoleCustomer,
	})
	c, w := newTestContext(t, req.WithContext(ctx))

	am.RequireAdmin()(c)

	if !c.IsAborted() {
		t.Fatal("customer request not aborted")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: want=403 got=%d", w.Code)
	}
}

func TestRequireAdminRejectsMissingRequestData(t *testing.T) {
	am := &AuthMiddleware{}
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	c, w := newTestContext(t, req)

	am.RequireAdmin()(c)

	if !c.IsAborted() {
		t.Fatal("anonymous request not aborted")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: want=403 got=%d", w.Code)
	}
}
