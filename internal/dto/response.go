package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	res "github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HTTPStatus maps a business error code to the HTTP status it is served with
func HTTPStatus(code res.ResponseCode) int {
	switch code {
	case res.ParseError, res.InvalidParameter, res.RequiredFieldMissing, res.DuplicateTitle, res.OperationFailed:
		return http.StatusBadRequest
	case res.NotFound:
		return http.StatusNotFound
	case res.Unauthorized:
		return http.StatusUnauthorized
	case res.Forbidden:
		return http.StatusForbidden
	case res.Conflict:
		return http.StatusConflict
	case res.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.OK(data))
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.OK(data))
}

// Empty answers 200 with an empty object as data
func Empty(c *gin.Context) {
	c.JSON(http.StatusOK, res.OK(gin.H{}))
}

// ErrorResponse writes err; anything that is not a BusinessError is a 500
func ErrorResponse(c *gin.Context, err error) {
	var be *res.BusinessError
	if !errors.As(err, &be) {
		be = res.ErrStore("internal error", err)
	}
	if be.Err != nil {
		_ = c.Error(be.Err)
	}
	c.JSON(HTTPStatus(be.Code), res.Failure(be))
}

// ValidationErrorResponse reports the first failed binding rule by its json field name
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := getJSONFieldName(firstErr)

		if firstErr.Tag() == "required" {
			ErrorResponse(c, res.ErrRequiredField(jsonField))
			return
		}

		var message string
		switch firstErr.Tag() {
		case "max":
			message = fmt.Sprintf("field '%s' must not exceed %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("field '%s' must be at least %s", jsonField, firstErr.Param())
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of: %s", jsonField, firstErr.Param())
		case "email":
			message = fmt.Sprintf("field '%s' must be a valid email", jsonField)
		default:
			message = fmt.Sprintf("field '%s' failed on '%s'", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.InvalidParameter),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("invalid request body: "+err.Error()),
	))
}

func getJSONFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	return toSnakeCase(parts[len(parts)-1])
}

// toSnakeCase converts PascalCase to snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
