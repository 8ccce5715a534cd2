package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/media"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/storage"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// AssetHandlers handles image uploads, the trusted-by collection and
// the image proxy.
type AssetHandlers struct {
	assetService *services.AssetService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewAssetHandlers creates a new asset handlers instance
func NewAssetHandlers(assetService *services.AssetService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AssetHandlers {
	return &AssetHandlers{
		assetService: assetService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

var errMissingFile = errors.New("missing file")

// readUploadedFile pulls the multipart "file" part into memory,
// enforcing the configured size cap before buffering.
func readUploadedFile(c *gin.Context) (filename, mimeType string, data []byte, err error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", nil, errMissingFile
	}
	if fileHeader.Size > config.MaxUploadBytes {
		return "", "", nil, media.ErrTooLarge
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer file.Close()
	data, err = io.ReadAll(io.LimitReader(file, config.MaxUploadBytes+1))
	if err != nil {
		return "", "", nil, err
	}
	if int64(len(data)) > config.MaxUploadBytes {
		return "", "", nil, media.ErrTooLarge
	}
	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, nil
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrUnsupportedType), errors.Is(err, errMissingFile):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UploadImage handles POST /api/images. An optional "target" form field
// pins the object name so re-uploads overwrite it.
func (h *AssetHandlers) UploadImage(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_image_request")
	defer marker.Complete()
	h.logger.Storage().Debug("Received image upload request", "method", c.Request.Method, "path", c.Request.URL.Path)

	filename, mimeType, data, err := readUploadedFile(c)
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	result, err := h.assetService.UploadImage(c.Request.Context(), filename, mimeType, data, c.PostForm("target"))
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"name":      result.Object,
		"publicUrl": result.PublicURL,
		"width":     result.Width,
		"height":    result.Height,
	})
}

// ImageProxy handles GET /api/image-proxy?file=<object>
func (h *AssetHandlers) ImageProxy(c *gin.Context) {
	marker := h.perfTracker.StartOperation("image_proxy_request")
	defer marker.Complete()

	object := c.Query("file")
	if object == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing file parameter"})
		return
	}

	asset, err := h.assetService.ProxyImage(c.Request.Context(), object)
	if err != nil {
		marker.SetError(err)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch image"})
		return
	}

	marker.SetSuccess(true)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", config.ImageProxyCacheMaxAge))
	c.Data(http.StatusOK, asset.ContentType, asset.Data)
}

// ListTrustedBy handles GET /api/trusted-by. The response body is the
// bare logo array; clients index into it directly.
func (h *AssetHandlers) ListTrustedBy(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_trusted_by_request")
	defer marker.Complete()

	logos, err := h.assetService.ListTrustedBy(c.Request.Context())
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, []services.TrustedByLogo{})
		return
	}
	if logos == nil {
		logos = []services.TrustedByLogo{}
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, logos)
}

// UploadTrustedBy handles POST /api/trusted-by
func (h *AssetHandlers) UploadTrustedBy(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_trusted_by_request")
	defer marker.Complete()
	h.logger.Storage().Debug("Received trusted-by upload request", "method", c.Request.Method, "path", c.Request.URL.Path)

	filename, mimeType, data, err := readUploadedFile(c)
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	result, err := h.assetService.UploadTrustedBy(c.Request.Context(), filename, mimeType, data)
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"name":      result.Object,
		"publicUrl": result.PublicURL,
	})
}

// DeleteTrustedBy handles DELETE /api/trusted-by
func (h *AssetHandlers) DeleteTrustedBy(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_trusted_by_request")
	defer marker.Complete()

	var req struct {
		Key string `json:"key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing key"})
		return
	}

	if err := h.assetService.DeleteTrustedBy(c.Request.Context(), req.Key); err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
