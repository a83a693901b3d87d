package identity

import (
	"context"

	"github.com/irsalhamdi/e-commerce-books/core/failure"
)

var ErrInvalidCredentials = failure.New(failure.InvalidCredentials, "Invalid client id or password")

type Authenticator interface {
	Authenticate(ctx context.Context, clientID, password string) error
}

// AuthenticatorFunc adapts a plain function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, clientID, password string) error

func (f AuthenticatorFunc) Authenticate(ctx context.Context, clientID, password string) error {
	return f(ctx, clientID, password)
}
