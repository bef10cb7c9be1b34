package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError converts an aggregate failure into an API error. Internal
// failures keep a generic message so driver details do not leak.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	msg := errors.New(domainagg.MessageOf(err))
	switch domainagg.CodeOf(err) {
	case domainagg.CodeNotFound:
		return New(http.StatusNotFound, string(domainagg.CodeNotFound), msg)
	case domainagg.CodeConflict:
		return New(http.StatusConflict, string(domainagg.CodeConflict), msg)
	case domainagg.CodeInvalidRequest:
		return New(http.StatusBadRequest, string(domainagg.CodeInvalidRequest), msg)
	default:
		return New(http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("internal error"))
	}
}
