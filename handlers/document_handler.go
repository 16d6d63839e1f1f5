package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketflowai/ticketflow/config"
	"github.com/ticketflowai/ticketflow/dto"
	"github.com/ticketflowai/ticketflow/response"
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/utils"
)

type DocumentHandler struct {
	documents *services.DocumentService
	push      *services.PushService
	catalog   *services.CatalogService
}

func NewDocumentHandler(documents *services.DocumentService, push *services.PushService, catalog *services.CatalogService) *DocumentHandler {
	return &DocumentHandler{documents: documents, push: push, catalog: catalog}
}

// List godoc
// @Summary List all documents with their tickets
// @Tags documents
// @Produce json
// @Success 200 {array} models.Document
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documents.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get godoc
// @Summary Get a document with its tickets
// @Tags documents
// @Produce json
// @Success 200 {object} models.Document
// @Failure 404 {object} response.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	doc, err := h.documents.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Upload accepts a multipart file, stores it and starts ingestion. The
// document comes back UNPROCESSED; processing completes in the background.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "No file provided"})
		return
	}
	if fileHeader.Size > config.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{Error: "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.documents.Upload(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.UploadResponse{
		ID:         doc.ID,
		Message:    "Document uploaded successfully",
		JiraStatus: string(doc.JiraStatus),
	})
}

// View streams the stored file back for display.
func (h *DocumentHandler) View(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	reader, size, contentType, err := h.documents.View(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer reader.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}

// Push godoc
// @Summary Push a document's tickets to Jira and GitLab
// @Tags documents
// @Accept json
// @Produce json
// @Success 200 {object} response.PushResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /documents/{id}/push-to-jira [post]
func (h *DocumentHandler) Push(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input dto.PushDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	_, err = h.push.Push(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelectionIncomplete):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Document not found"})
		case errors.Is(err, services.ErrPushNotAllowed), errors.Is(err, services.ErrPushPreviouslyFailed):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response.PushResponse{
		Status:  "success",
		Message: "Successfully pushed to Jira and GitLab",
	})
}

// JiraProjects returns the Jira project selector options.
func (h *DocumentHandler) JiraProjects(c *gin.Context) {
	options, err := h.catalog.JiraProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}

// GitLabProjects returns the GitLab project selector options.
func (h *DocumentHandler) GitLabProjects(c *gin.Context) {
	options, err := h.catalog.GitLabProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}
