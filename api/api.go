package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/e-commerce-books/api/middleware"
	"github.com/irsalhamdi/e-commerce-books/api/web"
	"github.com/irsalhamdi/e-commerce-books/core/shop"
	"github.com/irsalhamdi/e-commerce-books/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	Log     logrus.FieldLogger
	Shop    *shop.Shop
	Session *scs.SessionManager
	Limiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	var limit web.Middleware
	if cfg.Limiter != nil {
		limit = middleware.RateLimit(cfg.Limiter, func(r *http.Request) string {
			return web.Query(r, "clientId")
		})
	}

	a.Handle(http.MethodGet, "/createCart", shop.HandleCreateCart(cfg.Shop, cfg.Session), limit)
	a.Handle(http.MethodGet, "/addToCart", shop.HandleAddToCart(cfg.Shop, cfg.Session))
	a.Handle(http.MethodGet, "/listCart", shop.HandleListCart(cfg.Shop, cfg.Session))
	a.Handle(http.MethodGet, "/checkOutCart", shop.HandleCheckoutCart(cfg.Shop, cfg.Session))
	a.Handle(http.MethodGet, "/listPurchases", shop.HandleListPurchases(cfg.Shop), limit)

	if cfg.Session == nil {
		return a.Router
	}
	return cfg.Session.LoadAndSave(a.Router)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
