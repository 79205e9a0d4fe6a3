package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mentorwise/mentorwise-api/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupProtectedRouter(tm *jwt.TokenManager) *gin.Engine {
	router := gin.New()
	router.GET("/protected", SessionAuthMiddleware(tm), func(c *gin.Context) {
		claims, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	return router
}

func TestSessionAuthMiddleware_MissingToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorwise-api", 168)
	router := setupProtectedRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"No token provided. Please login."}`, w.Body.String())
}

func TestSessionAuthMiddleware_MalformedHeader(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorwise-api", 168)
	router := setupProtectedRouter(tm)

	token, err := tm.GenerateToken("user-id", "user@example.com")
	assert.NoError(t, err)

	// token without the Bearer prefix is treated as missing
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"No token provided. Please login."}`, w.Body.String())
}

func TestSessionAuthMiddleware_InvalidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorwise-api", 168)
	router := setupProtectedRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid or expired token. Please login again."}`, w.Body.String())
}

func TestSessionAuthMiddleware_ExpiredTokenSameMessage(t *testing.T) {
	expired := jwt.NewTokenManager("test-secret", "mentorwise-api", -1)
	router := setupProtectedRouter(jwt.NewTokenManager("test-secret", "mentorwise-api", 168))

	token, err := expired.GenerateToken("user-id", "user@example.com")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// expired and malformed tokens are indistinguishable to the caller
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid or expired token. Please login again."}`, w.Body.String())
}

func TestSessionAuthMiddleware_ValidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "mentorwise-api", 168)
	router := setupProtectedRouter(tm)

	token, err := tm.GenerateToken("64a1f0c2e13e4a5b6c7d8e9f", "user@example.com")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"64a1f0c2e13e4a5b6c7d8e9f"}`, w.Body.String())
}
