package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	testSecret = "test-secret"
	testUserID = "550e8400-e29b-41d4-a716-446655440000"
)

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	tokenString, err := jwt.NewWithClaims(method, claims).SignedString(key)
	assert.NoError(t, err)
	return tokenString
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub,
		"email": "maker@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func runMiddleware(t *testing.T, path, authHeader string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	config := JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health"},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTMiddleware(config)(handler)(c)
	assert.NoError(t, err) // Middleware handles the error response
	return rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	token := signToken(t, validClaims(testUserID), jwt.SigningMethodHS256, []byte(testSecret))

	rec := runMiddleware(t, "/api/v1/products/p/revenue", "Bearer "+token, func(c echo.Context) error {
		user, err := GetUserFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, user.UserID)
		assert.Equal(t, "maker@example.com", user.Email)
		assert.Equal(t, "authenticated", user.Role)
		assert.Equal(t, testUserID, GetUserID(c))
		assert.Equal(t, testUserID, c.Get("user_id"))
		return okHandler(c)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	expired := validClaims(testUserID)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noExp := validClaims(testUserID)
	delete(noExp, "exp")

	noSub := validClaims(testUserID)
	delete(noSub, "sub")

	tests := []struct {
		name       string
		authHeader string
		wantCode   string
	}{
		{"missing header", "", "MISSING_AUTH_HEADER"},
		{"not bearer", "Basic abc", "INVALID_AUTH_FORMAT"},
		{"garbage token", "Bearer not.a.jwt", "INVALID_TOKEN"},
		{"wrong secret", "Bearer " + signToken(t, validClaims(testUserID), jwt.SigningMethodHS256, []byte("other")), "INVALID_TOKEN"},
		{"expired", "Bearer " + signToken(t, expired, jwt.SigningMethodHS256, []byte(testSecret)), "INVALID_TOKEN"},
		{"no expiry", "Bearer " + signToken(t, noExp, jwt.SigningMethodHS256, []byte(testSecret)), "INVALID_TOKEN"},
		{"unsigned", "Bearer " + signToken(t, validClaims(testUserID), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), "INVALID_TOKEN"},
		{"no subject", "Bearer " + signToken(t, noSub, jwt.SigningMethodHS256, []byte(testSecret)), "MISSING_SUBJECT"},
		{"subject not uuid", "Bearer " + signToken(t, validClaims("user-1"), jwt.SigningMethodHS256, []byte(testSecret)), "INVALID_SUBJECT_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runMiddleware(t, "/api/v1/products/p/revenue", tt.authHeader, func(c echo.Context) error {
				t.Fatal("handler must not run")
				return nil
			})

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	rec := runMiddleware(t, "/health", "", func(c echo.Context) error {
		assert.Equal(t, "", GetUserID(c))
		return okHandler(c)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}
