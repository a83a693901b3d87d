package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/e-commerce-books/api"
	"github.com/irsalhamdi/e-commerce-books/config"
	"github.com/irsalhamdi/e-commerce-books/core/catalog"
	"github.com/irsalhamdi/e-commerce-books/core/checkout"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/identity"
	"github.com/irsalhamdi/e-commerce-books/core/ledger"
	"github.com/irsalhamdi/e-commerce-books/core/payment"
	"github.com/irsalhamdi/e-commerce-books/core/shop"
	"github.com/irsalhamdi/e-commerce-books/rate"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"golang.org/x/sync/errgroup"
)

var build = "develop"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	const prefix = "SHOP"
	cfg := config.Config{
		Version: conf.Version{
			Build: build,
			Desc:  "book shop cart and checkout service",
		},
	}

	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	logger.Infof("starting server: version %s", build)
	defer logger.Info("shutdown complete")

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.WithField("items", cat.Len()).Info("catalog loaded")

	auth, err := authenticator(cfg)
	if err != nil {
		return err
	}

	payments, err := authorizer(cfg)
	if err != nil {
		return err
	}

	clk := clock.System{}
	cashier := checkout.NewCashier(clk, payments, ledger.New(), logger)

	sh := shop.New(shop.Config{
		Log:            logger,
		Catalog:        cat,
		Clock:          clk,
		Authenticator:  auth,
		Cashier:        cashier,
		SessionTimeout: cfg.Session.InactivityTimeout,
	})

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.CookieLifetime
	sessionManager.Cookie.Secure = cfg.Session.CookieSecure

	limiter := rate.NewLimiter(cfg.Limit.Burst, cfg.Limit.Expiry, rate.Every(cfg.Limit.Interval))

	mux := api.APIMux(api.APIConfig{
		Log:     logger,
		Shop:    sh,
		Session: sessionManager,
		Limiter: limiter,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("starting api router at %s", api.Addr)
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(sctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func authenticator(cfg config.Config) (identity.Authenticator, error) {
	switch cfg.Auth.Provider {
	case "passwords":
		p, err := identity.LoadPasswords(cfg.Auth.ClientsPath)
		if err != nil {
			return nil, fmt.Errorf("loading clients: %w", err)
		}
		return p, nil

	case "oidc":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Oauth.DiscoveryTimeout)
		defer cancel()

		o, err := identity.NewOIDC(ctx, identity.ProviderConfig{
			Name:   cfg.Oauth.Name,
			Client: cfg.Oauth.Client,
			Secret: cfg.Oauth.Secret,
			URL:    cfg.Oauth.URL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to discover oidc provider: %w", err)
		}
		return o, nil
	}
	return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
}

func authorizer(cfg config.Config) (payment.Authorizer, error) {
	switch cfg.Payment.Provider {
	case "sandbox":
		return payment.NewSandbox(), nil

	case "stripe":
		strp := &stripecl.API{}
		strp.Init(cfg.Stripe.APISecret, nil)
		return payment.NewStripe(strp, cfg.Payment.Currency), nil

	case "paypal":
		pp, err := paypal.NewClient(
			cfg.Paypal.ClientID,
			cfg.Paypal.Secret,
			cfg.Paypal.URL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build the paypal client: %w", err)
		}

		if _, err = pp.GetAccessToken(context.TODO()); err != nil {
			return nil, fmt.Errorf("failed to get the first paypal access token: %w", err)
		}
		return payment.NewPaypal(pp, cfg.Payment.Currency), nil
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.Payment.Provider)
}
