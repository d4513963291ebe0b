package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/photobook/user-image-service/internal/application"
	"github.com/photobook/user-image-service/pkg/response"
)

type ImageHandler struct {
	Svc    *userapp.ImageService
	Logger *logrus.Logger
}

func NewImageHandler(svc *userapp.ImageService, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{Svc: svc, Logger: logger}
}

// Upload stores the "image" part of a multipart body for the user in the path
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No image uploaded", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		serverError(c, h.Logger, "open image upload failed", err)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		serverError(c, h.Logger, "read image upload failed", err)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	img, err := h.Svc.Upload(c.Request.Context(), c.Param("uuid"), contentType, data)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		serverError(c, h.Logger, "store image failed", err)
		return
	}
	response.Success(c, http.StatusCreated, "Image uploaded successfully", response.Fields{"image": newImageView(img)})
}

// Download writes the stored bytes with their original content type
func (h *ImageHandler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Image not found", nil)
		return
	}
	img, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userapp.ErrImageNotFound) {
			response.Error(c, http.StatusNotFound, "Image not found", nil)
			return
		}
		serverError(c, h.Logger, "load image failed", err)
		return
	}
	c.Header("X-Content-Type-Options", "nosniff")
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="image-%d"`, img.ID))
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
