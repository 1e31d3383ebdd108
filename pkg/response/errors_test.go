package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBusinessError_Defaults(t *testing.T) {
	err := NewBusinessError()

	assert.Equal(t, Fail, err.Code)
	assert.Equal(t, "business error", err.Msg)
	assert.Nil(t, err.Err)
}

func TestNewBusinessError_Options(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewBusinessError(
		WithErrorCode(NotFound),
		WithErrorMessage("course 7 does not exist"),
		WithError(cause),
	)

	assert.Equal(t, NotFound, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "course 7 does not exist: connection reset", err.Error())
}

func TestTaxonomyConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *BusinessError
		code ResponseCode
		msg  string
	}{
		{"required field", ErrRequiredField("photo"), RequiredFieldMissing, "photo is required"},
		{"duplicate title", ErrDuplicateTitle(), DuplicateTitle, "a course with this title already exists"},
		{"not found", ErrNotFound("course", 12), NotFound, "course 12 does not exist"},
		{"unauthorized", ErrUnauthorized(), Unauthorized, "authentication required"},
		{"forbidden", ErrForbidden("admins only"), Forbidden, "admins only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.True(t, HasCode(tt.err, tt.code))
		})
	}
}

func TestHasCode_NonBusinessError(t *testing.T) {
	assert.False(t, HasCode(errors.New("plain"), Fail))
	assert.False(t, HasCode(nil, Fail))
}

func TestEnvelope(t *testing.T) {
	ok := OK(map[string]int{"id": 3})
	assert.Equal(t, Success, ok.Code)
	assert.Equal(t, "success", ok.Message)
	assert.Equal(t, map[string]int{"id": 3}, ok.Data)

	failed := Failure(ErrStore("failed to load course", errors.New("db down")))
	assert.Equal(t, Fail, failed.Code)
	assert.Equal(t, "failed to load course", failed.Message)
	assert.Nil(t, failed.Data)
}
