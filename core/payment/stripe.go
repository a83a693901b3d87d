package payment

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/e-commerce-books/core/card"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

// Stripe charges cards by creating a card payment method and confirming a
// payment intent for it in a single call.
type Stripe struct {
	api      *stripecl.API
	currency string
}

func NewStripe(api *stripecl.API, currency string) *Stripe {
	return &Stripe{api: api, currency: currency}
}

func (s *Stripe) Charge(ctx context.Context, amount int, cc card.CreditCard) error {
	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(cc.Number),
			ExpMonth: stripe.Int64(int64(cc.Expiration.Month)),
			ExpYear:  stripe.Int64(int64(cc.Expiration.Year)),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name: stripe.String(cc.Owner),
		},
	}
	pmParams.Context = ctx

	pm, err := s.api.PaymentMethods.New(pmParams)
	if err != nil {
		return fmt.Errorf("creating stripe payment method: %w", err)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(amount)),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(pm.ID),
		Confirm:       stripe.Bool(true),

		PaymentMethodTypes: stripe.StringSlice([]string{string(stripe.PaymentMethodTypeCard)}),
	}
	piParams.Context = ctx

	pi, err := s.api.PaymentIntents.New(piParams)
	if err != nil {
		return fmt.Errorf("confirming stripe payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent[%s] ended with status[%s] different from 'succeeded'", pi.ID, pi.Status)
	}

	return nil
}
