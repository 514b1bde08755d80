package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/config"
	"github.com/wicaksana/tokokasir/internal/models"
	"github.com/wicaksana/tokokasir/internal/pos/menu"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return &testEnv{T: t, E: echo.New(), DB: db}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser fakes what the auth middleware puts on the context.
func asUser(c echo.Context, id uint, role menu.Role) {
	c.Set("userID", id)
	c.Set("role", string(role))
}

func seedProducts(t *testing.T, db *gorm.DB) []models.Product {
	t.Helper()

	products := []models.Product{
		{Name: "Beras Premium 5kg", Category: "Sembako", Price: 75000, Stock: 20, Barcode: "1234567890123"},
		{Name: "Minyak Goreng 1L", Category: "Sembako", Price: 18000, Stock: 15, Barcode: "1234567890124"},
		{Name: "Gula Pasir 1kg", Category: "Sembako", Price: 14000, Stock: 0, Barcode: "1234567890125"},
		{Name: "Indomie Goreng", Category: "Makanan Instan", Price: 3500, Stock: 100, Barcode: "1234567890126"},
		{Name: "Teh Botol Sosro", Category: "Minuman", Price: 4000, Stock: 50, Barcode: "1234567890127"},
		{Name: "Sabun Mandi Lifebuoy", Category: "Kebersihan", Price: 8500, Stock: 30, Barcode: "1234567890128"},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return products
}

func httpCode(t *testing.T, err error) int {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
