package helper

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"

	"journal-craft/models"
)

// HTTPHelper owns the request validator and the uniform error responses.
// All failures funnel through here so handlers only distinguish bad input
// (400) from processing failure (500).
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() (*HTTPHelper, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &HTTPHelper{Validate: validate, Translator: trans}, nil
}

// ValidateStruct runs the schema validation and returns one message per
// violated field, each prefixed with the field's path within the article.
func (h *HTTPHelper) ValidateStruct(s interface{}) []string {
	err := h.Validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	translations := validationErrors.Translate(h.Translator)
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Namespace(), translations[fieldErr.Namespace()]))
	}
	return messages
}

// SendBadRequest responds 400 with the error summary and joined details.
func (h *HTTPHelper) SendBadRequest(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// SendValidationError responds 400 joining every violated field message.
func (h *HTTPHelper) SendValidationError(c *gin.Context, messages []string) {
	h.SendBadRequest(c, "Article validation failed", strings.Join(messages, "; "))
}

// SendCompileError responds 500. The engine log is attached only when
// includeLog is set (non-production), so internal paths never leak to
// production clients.
func (h *HTTPHelper) SendCompileError(c *gin.Context, err error, includeLog bool) {
	resp := models.ErrorResponse{
		Error:   "LaTeX compilation failed",
		Details: err.Error(),
	}
	if compileErr, ok := err.(*models.CompileError); ok && includeLog {
		resp.Log = compileErr.EngineLog
	}
	c.JSON(http.StatusInternalServerError, resp)
}
