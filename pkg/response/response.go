package response

// ResponseCode business outcome carried in the envelope next to the HTTP status
type ResponseCode int

const Success ResponseCode = 100

// Response JSON envelope of every endpoint
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

type ResponseOptions func(*Response)

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithCode(code ResponseCode) ResponseOptions {
	return func(r *Response) {
		r.Code = code
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

// New builds an envelope, successful and empty unless opts say otherwise
func New(opts ...ResponseOptions) Response {
	r := Response{Message: "success", Code: Success}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func OK(data any) Response {
	return New(WithData(data))
}

// Failure renders err without its wrapped cause
func Failure(err *BusinessError) Response {
	return New(WithCode(err.Code), WithMessage(err.Msg))
}
