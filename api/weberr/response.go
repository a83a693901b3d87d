package weberr

import "errors"

type responder interface {
	Response() (msg string, status int)
}

func Response(err error) (msg string, status int, ok bool) {
	var re responder
	if errors.As(err, &re) {
		msg, code := re.Response()
		return msg, code, true
	}
	return "", 0, false
}

type responseError struct {
	error
	msg    string
	status int
}

func (e *responseError) Response() (string, int) {
	return e.msg, e.status
}

func (e *responseError) Unwrap() error {
	return e.error
}
