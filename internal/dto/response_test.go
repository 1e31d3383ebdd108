package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	res "github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code res.ResponseCode
		want int
	}{
		{res.RequiredFieldMissing, http.StatusBadRequest},
		{res.DuplicateTitle, http.StatusBadRequest},
		{res.OperationFailed, http.StatusBadRequest},
		{res.NotFound, http.StatusNotFound},
		{res.Unauthorized, http.StatusUnauthorized},
		{res.Forbidden, http.StatusForbidden},
		{res.Conflict, http.StatusConflict},
		{res.TooManyRequests, http.StatusTooManyRequests},
		{res.Fail, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), "code %d", tt.code)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) res.Response {
	t.Helper()
	var body res.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business error keeps its code", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ErrorResponse(c, res.ErrNotFound("course", 4))

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, res.NotFound, body.Code)
		assert.Equal(t, "course 4 does not exist", body.Message)
	})

	t.Run("plain error becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ErrorResponse(c, errors.New("disk on fire"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal error", decode(t, w).Message)
	})
}

func TestValidationErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		KeyActive string `validate:"required"`
		Role      string `validate:"omitempty,oneof=student lecturer"`
	}

	t.Run("required field", func(t *testing.T) {
		err := validator.New().Struct(body{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ValidationErrorResponse(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		got := decode(t, w)
		assert.Equal(t, res.RequiredFieldMissing, got.Code)
		assert.Equal(t, "key_active is required", got.Message)
	})

	t.Run("oneof", func(t *testing.T) {
		err := validator.New().Struct(body{KeyActive: "k", Role: "admin"})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ValidationErrorResponse(c, err)

		got := decode(t, w)
		assert.Equal(t, res.InvalidParameter, got.Code)
		assert.Contains(t, got.Message, "role")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ValidationErrorResponse(c, errors.New("unexpected EOF"))

		assert.Equal(t, res.ParseError, decode(t, w).Code)
	})
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "old_price", toSnakeCase("OldPrice"))
	assert.Equal(t, "title", toSnakeCase("Title"))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                 string
		page, size, def, max int
		wantPage, wantSize   int
		wantOffset           int
	}{
		{"defaults", 0, 0, 20, 100, 1, 20, 0},
		{"second page", 2, 10, 20, 100, 2, 10, 10},
		{"capped", 3, 500, 20, 100, 3, 100, 200},
		{"negative page", -4, 5, 20, 100, 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size, offset := PageBounds(tt.page, tt.size, tt.def, tt.max)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
