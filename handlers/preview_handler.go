package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-craft/helper"
	"journal-craft/models"
	"journal-craft/services"
)

type PreviewHandler struct {
	previewService services.PreviewService
	httpHelper     *helper.HTTPHelper
}

func NewPreviewHandler(previewService services.PreviewService, httpHelper *helper.HTTPHelper) *PreviewHandler {
	return &PreviewHandler{previewService: previewService, httpHelper: httpHelper}
}

// Preview renders the HTML approximation of the typeset article. Layout is
// best-effort; this endpoint exists for instant feedback without running
// the engine.
func (h *PreviewHandler) Preview(c *gin.Context) {
	var req models.CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.httpHelper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Article == nil {
		h.httpHelper.SendBadRequest(c, "Article data is required", "missing article field in request body")
		return
	}

	if messages := h.httpHelper.ValidateStruct(req.Article); len(messages) > 0 {
		h.httpHelper.SendValidationError(c, messages)
		return
	}

	page, err := h.previewService.RenderHTML(req.Article)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Preview rendering failed", Details: err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
