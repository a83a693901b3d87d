package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type ProviderConfig struct {
	Name   string
	Client string
	Secret string
	URL    string
}

// OIDC verifies credentials with the resource owner password grant of an
// OpenID Connect provider. Endpoints are discovered once at construction.
type OIDC struct {
	name string
	cfg  oauth2.Config
}

func NewOIDC(ctx context.Context, pc ProviderConfig) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, pc.URL)
	if err != nil {
		return nil, fmt.Errorf("discovering provider[%s]: %w", pc.Name, err)
	}

	return &OIDC{
		name: pc.Name,
		cfg: oauth2.Config{
			ClientID:     pc.Client,
			ClientSecret: pc.Secret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID},
		},
	}, nil
}

func (o *OIDC) Authenticate(ctx context.Context, clientID, password string) error {
	tok, err := o.cfg.PasswordCredentialsToken(ctx, clientID, password)
	if err != nil || !tok.Valid() {
		return ErrInvalidCredentials
	}
	return nil
}
