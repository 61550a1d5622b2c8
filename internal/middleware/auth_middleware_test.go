package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/jcloud/bookstore-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "middleware-test-secret"

func setupAuthMiddlewareTest(t *testing.T) (*AuthMiddleware, *gin.Engine, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "mw@example.com",
		PasswordHash: "hash",
		Name:         "Middleware User",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	userRepo := repository.NewUserRepository(testDB)
	authMiddleware := NewAuthMiddleware(testJWTSecret, userRepo)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/admin", authMiddleware.Authenticate(), authMiddleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return authMiddleware, router, user, testDB
}

func doAuthRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router, user, _ := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, 30*time.Minute)
	require.NoError(t, err)

	w := doAuthRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, router, _, _ := setupAuthMiddlewareTest(t)

	w := doAuthRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	_, router, user, _ := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, 30*time.Minute)
	require.NoError(t, err)

	w := doAuthRequest(router, "/protected", "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	_, router, user, _ := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, -1*time.Minute)
	require.NoError(t, err)

	w := doAuthRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	_, router, user, _ := setupAuthMiddlewareTest(t)

	refresh, err := util.GenerateRefreshToken(user.ID, testJWTSecret, 24*time.Hour)
	require.NoError(t, err)

	// Refresh tokens must not grant API access
	w := doAuthRequest(router, "/protected", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_DeactivatedUser(t *testing.T) {
	_, router, user, testDB := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, 30*time.Minute)
	require.NoError(t, err)

	testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false)

	w := doAuthRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	_, router, user, testDB := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, 30*time.Minute)
	require.NoError(t, err)

	testDB.Delete(&model.User{}, user.ID)

	w := doAuthRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	_, router, user, testDB := setupAuthMiddlewareTest(t)

	token, err := util.GenerateAccessToken(user.ID, string(user.Role), testJWTSecret, 30*time.Minute)
	require.NoError(t, err)

	w := doAuthRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Role comes from the database row, promoting works with the old token
	testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("role", model.RoleAdmin)

	w = doAuthRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
