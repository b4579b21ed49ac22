package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/config"
	"github.com/ovenbird/bakehouse/internal/handlers"
	"github.com/ovenbird/bakehouse/internal/models"
)

type testEnv struct {
	T           *testing.T
	E           *echo.Echo
	DB          *gorm.DB
	Auth        *handlers.AuthHandler
	Products    *handlers.ProductHandler
	Categories  *handlers.CategoryHandler
	Orders      *handlers.OrderHandler
	Inquiries   *handlers.InquiryHandler
	Attachments *handlers.AttachmentHandler
	Reviews     *handlers.ReviewHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	secret := []byte("test-secret")

	return &testEnv{
		T:          t,
		E:          echo.New(),
		DB:         db,
		Auth:       &handlers.AuthHandler{DB: db, JWTSecret: secret},
		Products:   &handlers.ProductHandler{DB: db},
		Categories: &handlers.CategoryHandler{DB: db},
		Orders:     &handlers.OrderHandler{DB: db},
		Inquiries:  &handlers.InquiryHandler{DB: db},
		Attachments: &handlers.AttachmentHandler{
			DB:           db,
			Dir:          t.TempDir(),
			MaxBytes:     1 << 20,
			MaxFiles:     3,
			AllowedTypes: []string{"image/png", "image/jpeg", "application/pdf"},
		},
		Reviews: &handlers.ReviewHandler{DB: db},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createProduct(name string, price float64, available bool) models.Product {
	p := models.Product{Name: name, Price: price, Available: available}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeBody[handlers.Response](t, rec)
	return resp.Message
}
