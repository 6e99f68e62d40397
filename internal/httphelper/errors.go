package httphelper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrBadRequest         = errors.New("invalid request")
	ErrInternal           = errors.New("internal server error")
	ErrRequestPerform     = errors.New("could not perform http request")
	ErrRequestInvalidCode = errors.New("invalid response code returned from request")
	ErrRequestDecode      = errors.New("failed to decode http response")
	ErrRequestCreate      = errors.New("failed to create new request")
)

// NewAPIError wraps err in the response envelope. Server errors never expose the underlying message.
func NewAPIError(code int, err error) APIError {
	apiErr := APIError{
		err:    err,
		Status: code,
	}

	if code >= http.StatusInternalServerError {
		apiErr.Message = ErrInternal.Error()

		return apiErr
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		// Error was wrapped with errors.Join(), so only show the very last error, which should be one of our
		// common sentinel errors that is safe for showing and wont expose any internal details.
		wrappedErrs := e.Unwrap()
		if len(wrappedErrs) > 0 {
			apiErr.Message = wrappedErrs[len(wrappedErrs)-1].Error()
		}

		return apiErr
	}

	apiErr.Message = err.Error()

	return apiErr
}

// APIError is the failure half of the {ok, error} response envelope.
type APIError struct {
	err     error
	Status  int    `json:"-"`
	OK      bool   `json:"ok"`
	Message string `json:"error"`
}

func (e APIError) Error() string {
	if e.err == nil {
		return e.Message
	}

	return e.err.Error()
}

func (e APIError) Unwrap() error {
	return e.err
}

// SetError handles sending the error to the error handler middleware. You should return
// from the handler after calling this.
func SetError(ctx *gin.Context, err APIError) {
	_ = ctx.Error(err)
}
