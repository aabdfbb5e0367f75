package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/cotizador/backend/internal/application/catalog"
	"github.com/cotizador/backend/internal/interfaces/http/dto"
)

// AttachmentHandler handles quote attachment endpoints
type AttachmentHandler struct {
	BaseHandler
	attachmentService *appcatalog.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService *appcatalog.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Create handles POST /quote-attachment (multipart form)
func (h *AttachmentHandler) Create(c *gin.Context) {
	upload, ok := h.bindUpload(c, true)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.CreateAttachment(c.Request.Context(), upload)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, attachment)
}

// Update handles PUT /quote-attachment/:id (multipart form, file optional)
func (h *AttachmentHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	upload, ok := h.bindUpload(c, false)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.UpdateAttachment(c.Request.Context(), id, upload)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attachment)
}

// List handles GET /quote-attachment
func (h *AttachmentHandler) List(c *gin.Context) {
	var isActive *bool
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "isActive must be true or false")
			return
		}
		isActive = &parsed
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), c.Query("search"), isActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.BaseHandler.List(c, attachments, len(attachments))
}

// Get handles GET /quote-attachment/:id
func (h *AttachmentHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.GetAttachment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attachment)
}

// Download handles GET /quote-attachment/download/:id
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	attachment, content, err := h.attachmentService.DownloadAttachment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	filename := attachment.Name + filepath.Ext(attachment.FileKey)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// ToggleActive handles POST /quote-attachment/toggle-active/:id
func (h *AttachmentHandler) ToggleActive(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.ToggleAttachmentActive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attachment)
}

// Delete handles DELETE /quote-attachment/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// bindUpload reads the multipart form fields into an AttachmentUpload.
// The file part is required on create and optional on update.
func (h *AttachmentHandler) bindUpload(c *gin.Context, fileRequired bool) (appcatalog.AttachmentUpload, bool) {
	var upload appcatalog.AttachmentUpload

	upload.Name = c.PostForm("name")
	if upload.Name == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "name is required")
		return upload, false
	}

	attachmentType, err := strconv.Atoi(c.PostForm("attachmentType"))
	if err != nil || attachmentType < 1 || attachmentType > 3 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "attachmentType must be 1, 2 or 3")
		return upload, false
	}
	upload.AttachmentType = attachmentType

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if !fileRequired {
			return upload, true
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "file is required")
		return upload, false
	}

	content, err := readMultipartFile(fileHeader)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Could not read uploaded file")
		return upload, false
	}

	upload.Filename = fileHeader.Filename
	upload.ContentType = fileHeader.Header.Get("Content-Type")
	upload.Content = content
	return upload, true
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
