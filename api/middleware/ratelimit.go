package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-books/api/web"
	"github.com/irsalhamdi/e-commerce-books/api/weberr"
	"github.com/irsalhamdi/e-commerce-books/rate"
)

// RateLimit rejects requests once the key returned by key has used up its
// allowance. Requests with an empty key are let through.
func RateLimit(l *rate.Limiter, key func(r *http.Request) string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			k := key(r)
			if k != "" && !l.Check(k) {
				return weberr.TooManyRequests(
					fmt.Errorf("rate limit exceeded for %q", k),
					weberr.WithFields(map[string]interface{}{"limit_key": k}),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
