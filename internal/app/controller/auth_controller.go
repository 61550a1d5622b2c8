package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type SignupRequest struct {
	Email       string        `json:"email" binding:"required,email"`
	Password    string        `json:"password" binding:"required,min=8"`
	Name        string        `json:"name" binding:"required"`
	BirthDate   *string       `json:"birth_date"`
	Gender      *model.Gender `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Address     string        `json:"address"`
	PhoneNumber string        `json:"phone_number"`
}

// LoginRequest is bound from a form body, the token endpoint is
// form-encoded rather than JSON.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Signup registers a new user
// POST /api/v1/users/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	user, err := ctrl.authService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.Conflict(c, "이미 사용 중인 이메일입니다")
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		// Unique violations a concurrent signup slipped past the
		// service-level check still map to 409 here.
		apperrors.ParseAndRespond(c, err, "user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a token pair
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "아이디와 비밀번호를 입력해주세요")
		return
	}

	pair, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.Unauthorized(c, "이메일 또는 비밀번호가 올바르지 않습니다")
		case errors.Is(err, service.ErrUserInactive):
			apperrors.Forbidden(c, "비활성화된 계정입니다")
		default:
			log.Error("Failed to login", err, map[string]interface{}{
				"email": req.Username,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh issues a new access token from a refresh token
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "리프레시 토큰이 필요합니다")
		return
	}

	pair, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			apperrors.Unauthorized(c, "유효하지 않은 리프레시 토큰입니다")
		case errors.Is(err, service.ErrUserInactive):
			apperrors.Forbidden(c, "비활성화된 계정입니다")
		default:
			log.Error("Failed to refresh token", err)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout acknowledges a logout. Tokens are stateless so the client
// simply discards them.
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	log := middleware.GetLoggerFromContext(c)
	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "로그아웃되었습니다",
	})
}
