package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell/src/app/http/response"
	"inkwell/src/app/middleware"
	"inkwell/src/infra/config"
)

// UploadHandler stores featured-image uploads on local disk and hands
// back the public URL they are served under.
type UploadHandler struct {
	cfg config.UploadConfig
}

func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// Upload handles POST /api/posts/upload. The file arrives as the
// multipart field "image"; it is stored under a random name with the
// original extension kept.
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}
	requestID := middleware.GetRequestID(c)

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required", requestID)
		return
	}
	if file.Size > h.cfg.MaxBytes {
		response.BadRequest(c, fmt.Sprintf("file exceeds %d bytes", h.cfg.MaxBytes), requestID)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		response.BadRequest(c, "unsupported image type", requestID)
		return
	}

	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Dir, name)); err != nil {
		response.InternalError(c, requestID)
		return
	}

	response.OK(c, gin.H{"imageUrl": "/uploads/" + name})
}
