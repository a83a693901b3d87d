package payment

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/e-commerce-books/core/card"
	"github.com/plutov/paypal/v4"
)

// Paypal charges by creating an order for the whole amount and capturing it
// right away.
type Paypal struct {
	client   *paypal.Client
	currency string
}

func NewPaypal(client *paypal.Client, currency string) *Paypal {
	return &Paypal{client: client, currency: currency}
}

func (p *Paypal) Charge(ctx context.Context, amount int, cc card.CreditCard) error {
	value := formatAmount(amount)

	units := []paypal.PurchaseUnitRequest{{
		Description: fmt.Sprintf("purchase by %s with card ending in %s", cc.Owner, cc.LastDigits()),

		Amount: &paypal.PurchaseUnitAmount{
			Currency: p.currency,
			Value:    value,
		},
	}}

	ord, err := p.client.CreateOrder(ctx, "CAPTURE", units, nil, nil)
	if err != nil {
		return fmt.Errorf("creating paypal order: %w", err)
	}

	resp, err := p.client.CaptureOrder(ctx, ord.ID, paypal.CaptureOrderRequest{})
	if err != nil {
		return fmt.Errorf("capturing paypal order[%s]: %w", ord.ID, err)
	}

	if resp.Status != "COMPLETED" {
		return fmt.Errorf("captured order[%s] with status[%s] different from 'COMPLETED'", ord.ID, resp.Status)
	}

	return nil
}

// formatAmount renders an amount in cents as the decimal string PayPal
// expects, e.g. 4999 as "49.99".
func formatAmount(amount int) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
