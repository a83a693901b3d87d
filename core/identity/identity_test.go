package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("valid password", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPasswords(Client{ID: "valid client id", Hash: hash})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := p.Authenticate(ctx, "valid client id", "valid password"); err != nil {
		t.Fatalf("expected valid credentials, but got %v", err)
	}

	tests := [][2]string{
		{"valid client id", "invalid password"},
		{"invalid client id", "valid password"},
		{"", ""},
	}
	for _, tt := range tests {
		if err := p.Authenticate(ctx, tt[0], tt[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%v: expected %v, but got %v", tt, ErrInvalidCredentials, err)
		}
	}
}

func TestNewPasswordsRejectsPlainText(t *testing.T) {
	if _, err := NewPasswords(Client{ID: "alice", Hash: "secret"}); err == nil {
		t.Fatal("expected a non bcrypt hash to be rejected")
	}
	if _, err := NewPasswords(Client{ID: "", Hash: "x"}); err == nil {
		t.Fatal("expected an empty client id to be rejected")
	}
}

func TestLoadPasswords(t *testing.T) {
	hash, err := HashPassword("bob-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "clients.yaml")
	content := fmt.Sprintf("clients:\n  - id: bob\n    hash: %q\n", hash)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPasswords(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Authenticate(context.Background(), "bob", "bob-secret"); err != nil {
		t.Fatalf("expected valid credentials, but got %v", err)
	}
}

func TestAuthenticatorFunc(t *testing.T) {
	var called bool
	var a Authenticator = AuthenticatorFunc(func(ctx context.Context, id, pw string) error {
		called = true
		return nil
	})
	if err := a.Authenticate(context.Background(), "a", "b"); err != nil || !called {
		t.Fatalf("expected function to be called without error, got called=%v err=%v", called, err)
	}
}

func newTestIssuer(t *testing.T) *httptest.Server {
	t.Helper()

	r := mux.NewRouter()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	r.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                srv.URL,
			"authorization_endpoint":                srv.URL + "/authorize",
			"token_endpoint":                        srv.URL + "/token",
			"jwks_uri":                              srv.URL + "/keys",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})

	r.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("grant_type") != "password" ||
			r.PostForm.Get("username") != "valid client id" ||
			r.PostForm.Get("password") != "valid password" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}).Methods(http.MethodPost)

	return srv
}

func TestOIDC(t *testing.T) {
	srv := newTestIssuer(t)
	ctx := context.Background()

	o, err := NewOIDC(ctx, ProviderConfig{Name: "test", Client: "shop", Secret: "shh", URL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	if err := o.Authenticate(ctx, "valid client id", "valid password"); err != nil {
		t.Fatalf("expected valid credentials, but got %v", err)
	}
	if err := o.Authenticate(ctx, "valid client id", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected %v, but got %v", ErrInvalidCredentials, err)
	}
}

func TestOIDCDiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := NewOIDC(context.Background(), ProviderConfig{Name: "broken", URL: srv.URL}); err == nil {
		t.Fatal("expected discovery to fail")
	}
}
