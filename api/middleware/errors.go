package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/e-commerce-books/api/web"
	"github.com/irsalhamdi/e-commerce-books/api/weberr"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
	"github.com/sirupsen/logrus"
)

// Errors turns handler errors into response bodies. Domain failures keep
// their own message and go out as business failures; anything else is
// reported as an internal error without details.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := logrus.Fields{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			if msg, status, ok := weberr.Response(err); ok {
				log.WithFields(fields).Warn("request failed")
				return web.Respond(ctx, w, web.Failure(msg), status)
			}

			if kind, ok := failure.KindOf(err); ok {
				msg, _ := failure.Message(err)
				fields["kind"] = kind.String()
				log.WithFields(fields).Info("request rejected")
				return web.Respond(ctx, w, web.Failure(msg), http.StatusOK)
			}

			log.WithFields(fields).Error("ERROR")

			msg, status, _ := weberr.Response(weberr.InternalError(err))
			return web.Respond(ctx, w, web.Failure(msg), status)
		}
		return h
	}
	return m
}
