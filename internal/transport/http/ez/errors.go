package ez

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-api/internal/domain"
	resp "hospital-api/internal/transport/http/response"
)

// AErr is a transport-level failure with an explicit status code.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }

// StatusOf maps an error returned by a service to its HTTP status.
func StatusOf(err error) int {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code
	case errors.Is(err, domain.ErrValidationFailed), errors.Is(err, domain.ErrNullInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrencyConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Fail aborts c with the status of err. Validation failures carry their
// violations as data; unexpected errors are logged and not echoed.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		l.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(code, resp.Error(resp.CodeServerError, ""))
		return
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(code, resp.ErrorData(code, ve.Error(), ve.Violations))
		return
	}
	c.AbortWithStatusJSON(code, resp.Error(code, err.Error()))
}
