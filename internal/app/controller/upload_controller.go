package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
	"github.com/jcloud/bookstore-backend/internal/storage"
)

type UploadController struct {
	s3Storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		s3Storage: s3Storage,
	}
}

type PresignCoverRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// PresignBookCover issues a pre-signed upload URL for a book cover (admin only)
// POST /api/v1/uploads/book-cover
func (ctrl *UploadController) PresignBookCover(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	if err := ctrl.s3Storage.ValidateFileSize(req.FileSize, storage.MaxCoverImageSize); err != nil {
		apperrors.BadRequest(c, "파일 크기는 5MB를 초과할 수 없습니다")
		return
	}

	resp, err := ctrl.s3Storage.PresignCoverUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to presign cover upload", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, "업로드 URL을 생성할 수 없습니다")
		return
	}

	c.JSON(http.StatusOK, resp)
}
