package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/config"
	"github.com/ovenbird/bakehouse/internal/handlers"
	httpserver "github.com/ovenbird/bakehouse/internal/transport/http"
)

func newRouter(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	secret := []byte("test-secret")
	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		DB:              db,
		JWTSecret:       secret,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: secret},
		ProductHandler:  &handlers.ProductHandler{DB: db},
		CategoryHandler: &handlers.CategoryHandler{DB: db},
		OrderHandler:    &handlers.OrderHandler{DB: db},
		InquiryHandler:  &handlers.InquiryHandler{DB: db},
		AttachmentHandler: &handlers.AttachmentHandler{
			DB: db, Dir: t.TempDir(), MaxBytes: 1 << 20, MaxFiles: 3,
		},
		ReviewHandler: &handlers.ReviewHandler{DB: db},
		SearchHandler: handlers.NewSearchHandler(nil),
	})
	return e, db
}

func doRequest(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, e *echo.Echo, db *gorm.DB) string {
	t.Helper()
	require.NoError(t, handlers.EnsureAdmin(db, "baker", "flour-power"))

	rec := doRequest(e, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": "baker", "password": "flour-power",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAdminGroupRequiresToken(t *testing.T) {
	e, _ := newRouter(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/admin/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/admin/products/1/reviews", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicReviewsHideUnmoderated(t *testing.T) {
	e, db := newRouter(t)
	token := adminToken(t, e, db)

	rec := doRequest(e, http.MethodPost, "/api/v1/admin/products", token, map[string]any{
		"name": "scone", "price": 2.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, rating := range []int{5, 2} {
		rec = doRequest(e, http.MethodPost, "/api/v1/products/1/reviews", "", map[string]any{
			"email": "r@example.com", "rating": rating,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec = doRequest(e, http.MethodPatch, "/api/v1/admin/reviews/1/status", token, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	// anonymous callers see approved only, with or without query tricks
	for _, path := range []string{"/api/v1/products/1/reviews", "/api/v1/products/1/reviews?all=1"} {
		rec = doRequest(e, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var reviews []struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
		require.Len(t, reviews, 1)
		require.Equal(t, "approved", reviews[0].Status)
	}

	// the full queue needs the bearer token
	rec = doRequest(e, http.MethodGet, "/api/v1/admin/products/1/reviews", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
	require.Len(t, queue, 2)
}
