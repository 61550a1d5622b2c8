package service

import (
	"testing"
	"time"

	"github.com/jcloud/bookstore-backend/config"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/jcloud/bookstore-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	jwtCfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  30 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(userRepo, jwtCfg), testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:    "reader@example.com",
		Password: "password123",
		Name:     "독서가",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	// Password must be stored hashed
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "dup@example.com",
		Password: "password123",
		Name:     "First",
	})
	require.NoError(t, err)

	_, err = authService.Register(RegisterInput{
		Email:    "dup@example.com",
		Password: "password456",
		Name:     "Second",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "login@example.com",
		Password: "password123",
		Name:     "Login User",
	})
	require.NoError(t, err)

	pair, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "wrong@example.com",
		Password: "password123",
		Name:     "User",
	})
	require.NoError(t, err)

	_, err = authService.Login("wrong@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:    "inactive@example.com",
		Password: "password123",
		Name:     "Inactive",
	})
	require.NoError(t, err)

	testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false)

	_, err = authService.Login("inactive@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_Refresh(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "refresh@example.com",
		Password: "password123",
		Name:     "Refresher",
	})
	require.NoError(t, err)

	pair, err := authService.Login("refresh@example.com", "password123")
	require.NoError(t, err)

	newPair, err := authService.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	// The refresh token is not rotated
	assert.Equal(t, pair.RefreshToken, newPair.RefreshToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "access@example.com",
		Password: "password123",
		Name:     "User",
	})
	require.NoError(t, err)

	pair, err := authService.Login("access@example.com", "password123")
	require.NoError(t, err)

	_, err = authService.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:    "promoted@example.com",
		Password: "password123",
		Name:     "Promoted",
	})
	require.NoError(t, err)

	pair, err := authService.Login("promoted@example.com", "password123")
	require.NoError(t, err)

	testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("role", model.RoleAdmin)

	newPair, err := authService.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := util.ValidateToken(newPair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
