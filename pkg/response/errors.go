package response

import "fmt"

// Business error codes
const (
	// generic failure, store errors
	Fail ResponseCode = 0
	// request body could not be parsed
	ParseError ResponseCode = 1
	// request parsed but a value is out of range
	InvalidParameter ResponseCode = 2
	// a mandatory field was omitted
	RequiredFieldMissing ResponseCode = 3
	// title already used by a live course
	DuplicateTitle ResponseCode = 4
	// id or token lookup missed
	NotFound ResponseCode = 5
	// caller is not authenticated
	Unauthorized ResponseCode = 6
	// caller is authenticated but not allowed
	Forbidden ResponseCode = 7
	// unique email / username clash
	Conflict        ResponseCode = 8
	TooManyRequests ResponseCode = 9
	// invariants of a mutation could not be validated
	OperationFailed ResponseCode = 10
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// ErrRequiredField reports the first mandatory field that was absent or null.
func ErrRequiredField(field string) *BusinessError {
	return NewBusinessError(
		WithErrorCode(RequiredFieldMissing),
		WithErrorMessage(fmt.Sprintf("%s is required", field)),
	)
}

func ErrDuplicateTitle() *BusinessError {
	return NewBusinessError(
		WithErrorCode(DuplicateTitle),
		WithErrorMessage("a course with this title already exists"),
	)
}

// ErrNotFound names the entity and the id or token that missed.
func ErrNotFound(entity string, key any) *BusinessError {
	return NewBusinessError(
		WithErrorCode(NotFound),
		WithErrorMessage(fmt.Sprintf("%s %v does not exist", entity, key)),
	)
}

func ErrUnauthorized() *BusinessError {
	return NewBusinessError(
		WithErrorCode(Unauthorized),
		WithErrorMessage("authentication required"),
	)
}

func ErrForbidden(msg string) *BusinessError {
	return NewBusinessError(
		WithErrorCode(Forbidden),
		WithErrorMessage(msg),
	)
}

func ErrOperationFailed(msg string, err error) *BusinessError {
	return NewBusinessError(
		WithErrorCode(OperationFailed),
		WithErrorMessage(msg),
		WithError(err),
	)
}

// ErrStore wraps an unexpected persistence failure.
func ErrStore(msg string, err error) *BusinessError {
	return NewBusinessError(
		WithErrorCode(Fail),
		WithErrorMessage(msg),
		WithError(err),
	)
}

// HasCode reports whether err is a BusinessError carrying code.
func HasCode(err error, code ResponseCode) bool {
	be, ok := err.(*BusinessError)
	return ok && be.Code == code
}
