package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-craft/helper"
	"journal-craft/models"
	"journal-craft/services"
)

// maxImportSize caps draft import payloads at 5MB, matching the editor's
// own file-size check.
const maxImportSize = 5 << 20

type DraftHandler struct {
	store      *services.ArticleStore
	httpHelper *helper.HTTPHelper
}

func NewDraftHandler(store *services.ArticleStore, httpHelper *helper.HTTPHelper) *DraftHandler {
	return &DraftHandler{store: store, httpHelper: httpHelper}
}

// Get returns the working draft, falling back to a fresh default article.
func (h *DraftHandler) Get(c *gin.Context) {
	article, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Loading draft failed", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Put stores the posted article as the working draft (debounced).
func (h *DraftHandler) Put(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		h.httpHelper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	h.store.Save(&article)
	c.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
}

// Reset discards the draft and returns a fresh default article.
func (h *DraftHandler) Reset(c *gin.Context) {
	article, err := h.store.Reset()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Resetting draft failed", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Import accepts a raw article JSON export. The structural shape is checked
// before the payload replaces the draft.
func (h *DraftHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize+1))
	if err != nil {
		h.httpHelper.SendBadRequest(c, "Reading upload failed", err.Error())
		return
	}
	if len(data) > maxImportSize {
		h.httpHelper.SendBadRequest(c, "File too large", "draft imports are capped at 5MB")
		return
	}

	article, err := h.store.ImportArticle(data)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArticleShape) {
			h.httpHelper.SendBadRequest(c, "Invalid article format", err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Importing draft failed", Details: err.Error()})
		return
	}

	h.store.Save(article)
	c.JSON(http.StatusOK, article)
}

// Export downloads the current draft as a standalone JSON file.
func (h *DraftHandler) Export(c *gin.Context) {
	h.store.Flush()
	article, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Loading draft failed", Details: err.Error()})
		return
	}

	filename := services.ExportFilename(article)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, filename))
	c.JSON(http.StatusOK, article)
}
