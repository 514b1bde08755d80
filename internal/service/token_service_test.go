package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/config"
	"github.com/wicaksana/tokokasir/internal/models"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func issueRefresh(t *testing.T, svc *TokenService, userID uint, role string) string {
	t.Helper()

	token, err := SignRefreshToken(userID, role, svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, token, userID, role))
	return token
}

func TestRotateToken(t *testing.T) {
	svc := newTokenService(t)
	refresh := issueRefresh(t, svc, 42, "kasir")

	access, newRefresh, err := svc.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, newRefresh)
	assert.NotEqual(t, refresh, newRefresh)

	// the rotated refresh token is persisted and usable
	claims, err := ValidateRefresh(newRefresh, svc.RefreshSecret, svc.DB)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "kasir", claims["role"])

	// the new access token carries the same identity
	parsed, err := jwt.Parse(access, func(j *jwt.Token) (interface{}, error) {
		return svc.JWTSecret, nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, parsed.Claims.(jwt.MapClaims)["sub"])
}

func TestRotateToken_Revoked(t *testing.T) {
	svc := newTokenService(t)
	refresh := issueRefresh(t, svc, 42, "kasir")
	require.NoError(t, svc.RevokeRefresh(refresh))

	_, _, err := svc.RotateToken(refresh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}

func TestRotateToken_Unknown(t *testing.T) {
	svc := newTokenService(t)

	// signed correctly but never stored
	stray, err := SignRefreshToken(7, "kasir", svc.RefreshSecret)
	require.NoError(t, err)

	_, _, err = svc.RotateToken(stray)
	require.Error(t, err)
}

func TestValidateRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTokenService(t)

	access, err := SignAccessToken(42, "kasir", svc.RefreshSecret)
	require.NoError(t, err)

	_, err = ValidateRefresh(access, svc.RefreshSecret, svc.DB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a refresh token")
}

func TestValidateRefresh_WrongSecret(t *testing.T) {
	svc := newTokenService(t)
	refresh := issueRefresh(t, svc, 42, "kasir")

	_, err := ValidateRefresh(refresh, []byte("other-secret"), svc.DB)
	require.Error(t, err)
}

func TestValidateRefresh_Expired(t *testing.T) {
	svc := newTokenService(t)
	refresh := issueRefresh(t, svc, 42, "kasir")

	// age the stored record past its expiry
	require.NoError(t, svc.DB.Model(&models.RefreshToken{}).
		Where("token=?", refresh).
		Update("expires_at", time.Now().Add(-time.Hour).Unix()).Error)

	_, err := ValidateRefresh(refresh, svc.RefreshSecret, svc.DB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func runMiddleware(svc *TokenService, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := svc.AutoRefreshMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAutoRefreshMiddleware_ValidAccessToken(t *testing.T) {
	svc := newTokenService(t)

	access, err := SignAccessToken(42, "pemilik", svc.JWTSecret)
	require.NoError(t, err)

	rec, c, err := runMiddleware(svc, &http.Cookie{Name: "accessToken", Value: access})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, c.Get("userID"))
	assert.Equal(t, "pemilik", c.Get("role"))
}

func TestAutoRefreshMiddleware_ExpiredAccessRotates(t *testing.T) {
	svc := newTokenService(t)
	refresh := issueRefresh(t, svc, 42, "kasir")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  42,
		"role": "kasir",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	expiredStr, err := expired.SignedString(svc.JWTSecret)
	require.NoError(t, err)

	rec, c, err := runMiddleware(svc,
		&http.Cookie{Name: "accessToken", Value: expiredStr},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, c.Get("userID"))

	// fresh cookies issued to the client
	names := make([]string, 0, 2)
	for _, ck := range rec.Result().Cookies() {
		names = append(names, ck.Name)
	}
	assert.Contains(t, names, "accessToken")
	assert.Contains(t, names, "refreshToken")
}

func TestAutoRefreshMiddleware_NoTokens(t *testing.T) {
	svc := newTokenService(t)

	_, _, err := runMiddleware(svc)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestPemilikOnly(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "pemilik")
	require.NoError(t, PemilikOnly(next)(c))

	c = e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "kasir")
	err := PemilikOnly(next)(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
