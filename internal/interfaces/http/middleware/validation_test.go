package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylater/backend/internal/interfaces/http/dto"
)

type createRuleRequest struct {
	Name  string `json:"name" binding:"required,min=2"`
	Value string `json:"value" binding:"required"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/rules", func(c *gin.Context) {
		var req createRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rules", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, dto.ErrCodeValidation)
	// Field names come from json tags
	assert.Contains(t, body, `"field":"name"`)
	assert.Contains(t, body, `"field":"value"`)
}

func TestFormatValidationErrors_CarriesRequestID(t *testing.T) {
	resp := FormatValidationErrors(nil, "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
