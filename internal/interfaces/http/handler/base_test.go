package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/interfaces/http/dto"
	"github.com/paylater/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(c *gin.Context, businessID, userID uuid.UUID) {
	c.Set(middleware.JWTBusinessIDKey, businessID.String())
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func newTestContext(t *testing.T, method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, http.MethodGet, "/")

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, http.MethodGet, "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 100, 1, 10)

	resp := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, http.MethodPost, "/")

	h.Created(c, map[string]string{"id": uuid.NewString()})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetBusinessID(t *testing.T) {
	businessID := uuid.New()

	t.Run("present", func(t *testing.T) {
		c, _ := newTestContext(t, http.MethodGet, "/")
		setJWTContext(c, businessID, uuid.New())

		got, err := getBusinessID(c)
		require.NoError(t, err)
		assert.Equal(t, businessID, got)
	})

	t.Run("missing", func(t *testing.T) {
		c, _ := newTestContext(t, http.MethodGet, "/")

		_, err := getBusinessID(c)
		assert.Error(t, err)
	})
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found domain error",
			err:        shared.NewDomainError("NOT_FOUND", "rule not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "duplicate award conflict",
			err:        shared.NewDomainError("DUPLICATE_AWARD", "bonus already awarded for this source"),
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_AWARD",
		},
		{
			name:       "rule in use conflict",
			err:        shared.NewDomainError("RULE_IN_USE", "rule has awarded records"),
			wantStatus: http.StatusConflict,
			wantCode:   "RULE_IN_USE",
		},
		{
			name:       "domain validation maps to 400",
			err:        shared.NewDomainError("INVALID_TIERS", "tiers must not overlap"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_TIERS",
		},
		{
			name:       "invalid state maps to 422",
			err:        shared.NewDomainError("INVALID_STATE", "record is not pending"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_STATE",
		},
		{
			name:       "plain error maps to 500",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodGet, "/")

			h.HandleError(c, tt.err)

			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		c, _ := newTestContext(t, http.MethodGet, "/")
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		got, ok := h.ParseIDParam(c)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("invalid", func(t *testing.T) {
		c, w := newTestContext(t, http.MethodGet, "/")
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, ok := h.ParseIDParam(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
