package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flynext/config"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.AccessTokenSecret = testAccessSecret
	config.AppConfig.RefreshTokenSecret = testRefreshSecret
}

func expiredToken(t *testing.T, secret string) string {
	t.Helper()
	past := time.Now().Add(-time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u1", "email": "ada@example.com", "role": "USER", "exp": past, "expiresAt": past,
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newRouter(roles ...string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuthMiddleware()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(utils.ContextUserID)})
	})
	r.GET("/private", handlers...)
	return r
}

func serve(r *gin.Engine, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter()

	valid, err := utils.GenerateAccessToken("u1", "ada@example.com", "USER")
	require.NoError(t, err)
	refresh, err := utils.GenerateRefreshToken("u1", "ada@example.com", "USER")
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		w := serve(r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		w := serve(r, &http.Cookie{Name: utils.AccessTokenCookie, Value: valid})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":"u1"}`, w.Body.String())
	})

	t.Run("expired access with live refresh", func(t *testing.T) {
		w := serve(r,
			&http.Cookie{Name: utils.AccessTokenCookie, Value: expiredToken(t, testAccessSecret)},
			&http.Cookie{Name: utils.RefreshTokenCookie, Value: refresh},
		)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Token expired"}`, w.Body.String())
	})

	t.Run("both expired", func(t *testing.T) {
		w := serve(r,
			&http.Cookie{Name: utils.AccessTokenCookie, Value: expiredToken(t, testAccessSecret)},
			&http.Cookie{Name: utils.RefreshTokenCookie, Value: expiredToken(t, testRefreshSecret)},
		)
		assert.Equal(t, utils.StatusSessionExpired, w.Code)
		assert.JSONEq(t, `{"message":"Session expired"}`, w.Body.String())
	})

	t.Run("expired access without refresh", func(t *testing.T) {
		w := serve(r, &http.Cookie{Name: utils.AccessTokenCookie, Value: expiredToken(t, testAccessSecret)})
		assert.Equal(t, utils.StatusSessionExpired, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := newRouter("HOTEL_OWNER")

	user, err := utils.GenerateAccessToken("u1", "ada@example.com", "USER")
	require.NoError(t, err)
	w := serve(r, &http.Cookie{Name: utils.AccessTokenCookie, Value: user})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Access Denied"}`, w.Body.String())

	owner, err := utils.GenerateAccessToken("o1", "owner@example.com", "HOTEL_OWNER")
	require.NoError(t, err)
	w = serve(r, &http.Cookie{Name: utils.AccessTokenCookie, Value: owner})
	assert.Equal(t, http.StatusOK, w.Code)
}
