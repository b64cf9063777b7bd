package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-craft/helper"
	"journal-craft/models"
	"journal-craft/services"
)

type CompileHandler struct {
	compileService services.CompileService
	httpHelper     *helper.HTTPHelper
	exposeLog      bool
}

func NewCompileHandler(compileService services.CompileService, httpHelper *helper.HTTPHelper, exposeLog bool) *CompileHandler {
	return &CompileHandler{
		compileService: compileService,
		httpHelper:     httpHelper,
		exposeLog:      exposeLog,
	}
}

// Compile validates the posted article, runs the typesetting pipeline and
// streams the PDF back as an attachment named after the Turkish title.
func (h *CompileHandler) Compile(c *gin.Context) {
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

	result, err := h.compileService.Compile(c.Request.Context(), req.Article)
	if err != nil {
		h.httpHelper.SendCompileError(c, err, h.exposeLog)
		return
	}

	filename := services.ExportFilename(req.Article)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, filename))
	if result.Pages > 0 {
		c.Header("X-Pdf-Pages", fmt.Sprintf("%d", result.Pages))
	}
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
