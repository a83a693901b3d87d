package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/irsalhamdi/e-commerce-books/core/card"
)

// Authorizer charges an amount, in the smallest currency unit, to a card.
// Any returned error means nothing was charged.
type Authorizer interface {
	Charge(ctx context.Context, amount int, cc card.CreditCard) error
}

var ErrDeclined = errors.New("payment declined by sandbox")

// Sandbox accepts or declines every charge without contacting any network.
type Sandbox struct {
	mu      sync.Mutex
	decline bool
	charges []Charge
}

type Charge struct {
	Amount     int
	LastDigits string
}

func NewSandbox() *Sandbox { return &Sandbox{} }

func NewDecliningSandbox() *Sandbox { return &Sandbox{decline: true} }

func (s *Sandbox) Charge(ctx context.Context, amount int, cc card.CreditCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.decline {
		return ErrDeclined
	}
	s.charges = append(s.charges, Charge{Amount: amount, LastDigits: cc.LastDigits()})
	return nil
}

func (s *Sandbox) SetDecline(decline bool) {
	s.mu.Lock()
	s.decline = decline
	s.mu.Unlock()
}

func (s *Sandbox) HasProcessedPayment() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.charges) > 0
}

func (s *Sandbox) Charges() []Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Charge, len(s.charges))
	copy(out, s.charges)
	return out
}
