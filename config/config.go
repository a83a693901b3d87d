package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

type Config struct {
	conf.Version
	Web     Web
	Session Session
	Catalog Catalog
	Auth    Auth
	Oauth   Oauth
	Payment Payment
	Stripe  Stripe
	Paypal  Paypal
	Limit   Limit
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Session struct {
	InactivityTimeout time.Duration `conf:"default:30m"`
	CookieLifetime    time.Duration `conf:"default:24h"`
	CookieSecure      bool          `conf:"default:false"`
}

type Catalog struct {
	Path string `conf:"default:etc/catalog.yaml"`
}

type Auth struct {
	Provider    string `conf:"default:passwords,help:passwords or oidc"`
	ClientsPath string `conf:"default:etc/clients.yaml"`
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:10s"`
	Name             string        `conf:"default:oidc"`
	Client           string
	Secret           string `conf:"mask"`
	URL              string
}

type Payment struct {
	Provider string `conf:"default:sandbox,help:sandbox stripe or paypal"`
	Currency string `conf:"default:USD"`
}

type Stripe struct {
	APISecret string `conf:"mask"`
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api-m.sandbox.paypal.com"`
}

type Limit struct {
	Burst    int           `conf:"default:10"`
	Interval time.Duration `conf:"default:6s"`
	Expiry   time.Duration `conf:"default:10m"`
}
