package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type UpdateProfileRequest struct {
	Name        *string       `json:"name"`
	Password    *string       `json:"password" binding:"omitempty,min=8"`
	BirthDate   *string       `json:"birth_date"`
	Gender      *model.Gender `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Address     *string       `json:"address"`
	PhoneNumber *string       `json:"phone_number"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// GetMe returns the authenticated user's profile
// GET /api/v1/users/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "사용자를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the authenticated user's profile
// PATCH /api/v1/users/me
func (ctrl *UserController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid profile update request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	user, err := ctrl.userService.UpdateProfile(userID, service.UpdateProfileInput{
		Name:        req.Name,
		Password:    req.Password,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "사용자를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe deletes the authenticated user's account
// DELETE /api/v1/users/me
func (ctrl *UserController) DeleteMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.userService.DeleteAccount(userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "사용자를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete account", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "계정이 삭제되었습니다",
	})
}

// ListUsers returns a paginated user list (admin only)
// GET /api/v1/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	users, total, err := ctrl.userService.ListUsers(page, size)
	if err != nil {
		log.Error("Failed to list users", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// SetUserStatus activates or deactivates a user (admin only)
// PATCH /api/v1/users/:id/status
func (ctrl *UserController) SetUserStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 사용자 ID입니다")
		return
	}

	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	user, err := ctrl.userService.SetUserStatus(uint(targetID), *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "사용자를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to change user status", err, map[string]interface{}{
			"target_user_id": targetID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}
