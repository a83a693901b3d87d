package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}

const (
	SuccessCode = "0"
	ErrorCode   = "1"
	Separator   = "|"
)

// Body is the two field response every endpoint answers with: a leading
// status flag and a message, joined by Separator.
type Body struct {
	Failed  bool
	Message string
}

func Success(msg string) Body { return Body{Message: msg} }

func Failure(msg string) Body { return Body{Failed: true, Message: msg} }

func (b Body) String() string {
	code := SuccessCode
	if b.Failed {
		code = ErrorCode
	}
	return code + Separator + b.Message
}

func ParseBody(s string) (Body, error) {
	code, msg, ok := strings.Cut(s, Separator)
	if !ok {
		return Body{}, fmt.Errorf("body %q has no status flag", s)
	}

	switch code {
	case SuccessCode:
		return Success(msg), nil
	case ErrorCode:
		return Failure(msg), nil
	}
	return Body{}, fmt.Errorf("body %q has unknown status flag %q", s, code)
}

// Join encodes values as a single message, separated the same way as the
// status flag.
func Join(values ...string) string {
	return strings.Join(values, Separator)
}

func Respond(ctx context.Context, w http.ResponseWriter, body Body, statusCode int) error {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write([]byte(body.String())); err != nil {
		return fmt.Errorf("cannot write response data to response writer: %w", err)
	}

	return nil
}

func Query(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
