package test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/e-commerce-books/api"
	"github.com/irsalhamdi/e-commerce-books/api/web"
	"github.com/irsalhamdi/e-commerce-books/core/catalog"
	"github.com/irsalhamdi/e-commerce-books/core/checkout"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/identity"
	"github.com/irsalhamdi/e-commerce-books/core/ledger"
	"github.com/irsalhamdi/e-commerce-books/core/payment"
	"github.com/irsalhamdi/e-commerce-books/core/session"
	"github.com/irsalhamdi/e-commerce-books/core/shop"
	"github.com/irsalhamdi/e-commerce-books/rate"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
)

const (
	validClient   = "valid client id"
	validPassword = "valid password"
	otherClient   = "other client id"
	otherPassword = "other password"
)

var start = time.Date(2023, time.November, 24, 10, 0, 0, 0, time.UTC)

type TestEnv struct {
	*httptest.Server
	Clock    *clock.Simulated
	Payments payment.Authorizer
	Limiter  *rate.Limiter
}

type envOpt func(*TestEnv)

func withPayments(p payment.Authorizer) envOpt {
	return func(env *TestEnv) { env.Payments = p }
}

func withLimiter(l *rate.Limiter) envOpt {
	return func(env *TestEnv) { env.Limiter = l }
}

func NewTestEnv(t *testing.T, opts ...envOpt) *TestEnv {
	t.Helper()

	env := &TestEnv{
		Clock:    clock.NewSimulated(start),
		Payments: payment.NewSandbox(),
	}
	for _, opt := range opts {
		opt(env)
	}

	cat, err := catalog.FromPrices(map[string]int{"isbn1": 100, "isbn2": 200})
	if err != nil {
		t.Fatal(err)
	}

	clients := make([]identity.Client, 0, 2)
	for id, pw := range map[string]string{validClient: validPassword, otherClient: otherPassword} {
		h, err := identity.HashPassword(pw, bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}
		clients = append(clients, identity.Client{ID: id, Hash: h})
	}
	auth, err := identity.NewPasswords(clients...)
	if err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()

	s := shop.New(shop.Config{
		Log:            log,
		Catalog:        cat,
		Clock:          env.Clock,
		Authenticator:  auth,
		Cashier:        checkout.NewCashier(env.Clock, env.Payments, ledger.New(), log),
		SessionTimeout: session.DefaultTimeout,
	})

	sm := scs.New()
	sm.Lifetime = time.Hour

	env.Server = httptest.NewServer(api.APIMux(api.APIConfig{
		Log:     log,
		Shop:    s,
		Session: sm,
		Limiter: env.Limiter,
	}))
	t.Cleanup(env.Server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Server.Client().Jar = jar

	return env
}

func (env *TestEnv) get(t *testing.T, path string, params url.Values) (int, web.Body) {
	t.Helper()

	r, err := http.NewRequest(http.MethodGet, env.URL+path+"?"+params.Encode(), nil)
	if err != nil {
		t.Fatal(err)
	}

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	raw, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatal(err)
	}

	body, err := web.ParseBody(string(raw))
	if err != nil {
		t.Fatal(err)
	}
	return w.StatusCode, body
}

func (env *TestEnv) expectSuccess(t *testing.T, path string, params url.Values, msg string) {
	t.Helper()
	status, body := env.get(t, path, params)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, but got %d", http.StatusOK, status)
	}
	if exp := web.Success(msg); body != exp {
		t.Fatalf("expected %q, but got %q", exp, body)
	}
}

func (env *TestEnv) expectFailure(t *testing.T, path string, params url.Values, msg string) {
	t.Helper()
	status, body := env.get(t, path, params)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, but got %d", http.StatusOK, status)
	}
	if exp := web.Failure(msg); body != exp {
		t.Fatalf("expected %q, but got %q", exp, body)
	}
}

func (env *TestEnv) createCart(t *testing.T, clientID, password string) string {
	t.Helper()
	status, body := env.get(t, "/createCart", url.Values{"clientId": {clientID}, "password": {password}})
	if status != http.StatusOK || body.Failed || body.Message == "" {
		t.Fatalf("can't create cart: status %d, body %q", status, body)
	}
	return body.Message
}

func (env *TestEnv) addToCart(t *testing.T, cartID, isbn, quantity string) (int, web.Body) {
	t.Helper()
	return env.get(t, "/addToCart", url.Values{"cartId": {cartID}, "bookIsbn": {isbn}, "bookQuantity": {quantity}})
}

func checkoutParams(cartID, expiration string) url.Values {
	return url.Values{"cartId": {cartID}, "ccn": {"123455"}, "cced": {expiration}, "cco": {"Owner Name"}}
}

func (env *TestEnv) addAndCheckout(t *testing.T, cartID, isbn string) string {
	t.Helper()
	env.expectSuccess(t, "/addToCart", url.Values{"cartId": {cartID}, "bookIsbn": {isbn}, "bookQuantity": {"1"}}, "OK")

	status, body := env.get(t, "/checkOutCart", checkoutParams(cartID, "102025"))
	if status != http.StatusOK || body.Failed || body.Message == "" {
		t.Fatalf("can't check out cart: status %d, body %q", status, body)
	}
	return body.Message
}
