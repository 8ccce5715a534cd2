package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
)

// EditorHandlers exposes the admin editor over HTTP. Every route is
// mounted behind the admin auth middleware.
type EditorHandlers struct {
	editorService *services.EditorService
	hub           *messaging.Hub
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewEditorHandlers creates a new editor handlers instance
func NewEditorHandlers(editorService *services.EditorService, hub *messaging.Hub, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EditorHandlers {
	return &EditorHandlers{
		editorService: editorService,
		hub:           hub,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetState handles GET /api/admin/editor
func (h *EditorHandlers) GetState(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_editor_state_request")
	defer marker.Complete()

	state := h.editorService.Load(c.Request.Context())
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, state)
}

// PutField handles PUT /api/admin/editor/field
func (h *EditorHandlers) PutField(c *gin.Context) {
	marker := h.perfTracker.StartOperation("put_editor_field_request")
	defer marker.Complete()

	// A mutating call before any GET still works on a loaded copy.
	h.editorService.Load(c.Request.Context())

	var req struct {
		Path  []string `json:"path" binding:"required"`
		Value any      `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Path is required"})
		return
	}

	if err := h.editorService.SetField(req.Value, req.Path...); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.editorService.State())
}

// PostItem handles POST /api/admin/editor/sections/:section/items
func (h *EditorHandlers) PostItem(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_editor_item_request")
	defer marker.Complete()

	h.editorService.Load(c.Request.Context())

	var req struct {
		Ar map[string]any `json:"ar"`
		En map[string]any `json:"en"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid item payload"})
		return
	}

	if err := h.editorService.InsertItem(c.Param("section"), req.Ar, req.En); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.editorService.State())
}

// DeleteItem handles DELETE /api/admin/editor/sections/:section/items/:index
func (h *EditorHandlers) DeleteItem(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_editor_item_request")
	defer marker.Complete()

	h.editorService.Load(c.Request.Context())

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid item index"})
		return
	}

	if err := h.editorService.RemoveItem(c.Param("section"), index); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.editorService.State())
}

// MoveItem handles POST /api/admin/editor/sections/:section/items/:index/move
func (h *EditorHandlers) MoveItem(c *gin.Context) {
	marker := h.perfTracker.StartOperation("move_editor_item_request")
	defer marker.Complete()

	h.editorService.Load(c.Request.Context())

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid item index"})
		return
	}

	var req struct {
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Direction != "up" && req.Direction != "down") {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Direction must be up or down"})
		return
	}

	if err := h.editorService.MoveItem(c.Param("section"), index, req.Direction == "up"); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.editorService.State())
}

// PutRaw handles PUT /api/admin/editor/raw
func (h *EditorHandlers) PutRaw(c *gin.Context) {
	marker := h.perfTracker.StartOperation("put_editor_raw_request")
	defer marker.Complete()

	h.editorService.Load(c.Request.Context())

	var req struct {
		JSON string `json:"json"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid payload"})
		return
	}

	valid := h.editorService.SetRawJSON(req.JSON)
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"valid": valid, "state": h.editorService.State()})
}

// GetExport handles GET /api/admin/editor/export
func (h *EditorHandlers) GetExport(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_editor_export_request")
	defer marker.Complete()

	h.editorService.Load(c.Request.Context())

	raw, err := h.editorService.Export()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Disposition", `attachment; filename="content.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// PostImport handles POST /api/admin/editor/import. Accepts either a
// multipart "file" part or a raw JSON body.
func (h *EditorHandlers) PostImport(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_editor_import_request")
	defer marker.Complete()

	var raw []byte
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read file"})
			return
		}
		raw, err = io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read file"})
			return
		}
	} else {
		var err error
		raw, err = io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read body"})
			return
		}
	}

	if err := h.editorService.Import(raw); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.editorService.State())
}

// PostReset handles POST /api/admin/editor/reset
func (h *EditorHandlers) PostReset(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_editor_reset_request")
	defer marker.Complete()

	state := h.editorService.Reset()
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, state)
}

// PostSave handles POST /api/admin/editor/save
func (h *EditorHandlers) PostSave(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_editor_save_request")
	defer marker.Complete()
	h.logger.Editor().Debug("Received save request", "method", c.Request.Method, "path", c.Request.URL.Path)

	h.editorService.Load(c.Request.Context())
	result := h.editorService.Save(c.Request.Context())
	marker.SetSuccess(result.Status == services.SaveStatusSaved)
	c.JSON(http.StatusOK, result)
}

// PostProfileImage handles POST /api/admin/editor/profile-image
func (h *EditorHandlers) PostProfileImage(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_profile_image_request")
	defer marker.Complete()
	h.logger.Editor().Debug("Received profile image request", "method", c.Request.Method, "path", c.Request.URL.Path)

	_, mimeType, data, err := readUploadedFile(c)
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	result, err := h.editorService.UploadProfileImage(c.Request.Context(), mimeType, data)
	if err != nil {
		marker.SetError(err)
		c.JSON(uploadErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// GetWS handles GET /api/admin/ws, upgrading to a websocket that
// receives the same events as the SSE stream.
func (h *EditorHandlers) GetWS(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
