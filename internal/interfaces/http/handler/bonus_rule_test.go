package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/paylater/backend/internal/interfaces/http/middleware"
)

func postJSON(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/bonus-rules", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBonusRuleCreate_RequiresBusinessContext(t *testing.T) {
	h := NewBonusRuleHandler(nil)
	c, w := postJSON(t, `{}`)

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBonusRuleCreate_RejectsInvalidBody(t *testing.T) {
	middleware.SetupValidator()

	h := NewBonusRuleHandler(nil)
	c, w := postJSON(t, `{"name":""}`)
	setJWTContext(c, uuid.New(), uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ERR_VALIDATION")
	assert.Contains(t, body, `"field":"name"`)
	assert.Contains(t, body, `"field":"trigger"`)
}

func TestBonusRuleSetActive_RequiresActiveField(t *testing.T) {
	h := NewBonusRuleHandler(nil)
	c, w := postJSON(t, `{}`)
	setJWTContext(c, uuid.New(), uuid.New())
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.SetActive(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBonusRuleDelete_RejectsMalformedID(t *testing.T) {
	h := NewBonusRuleHandler(nil)
	c, w := newTestContext(t, http.MethodDelete, "/api/v1/bonus-rules/abc")
	setJWTContext(c, uuid.New(), uuid.New())
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INVALID_INPUT")
}
