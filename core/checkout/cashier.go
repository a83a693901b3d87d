package checkout

import (
	"context"

	"github.com/irsalhamdi/e-commerce-books/core/card"
	"github.com/irsalhamdi/e-commerce-books/core/cart"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
	"github.com/irsalhamdi/e-commerce-books/core/ledger"
	"github.com/irsalhamdi/e-commerce-books/core/payment"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyCart       = failure.New(failure.EmptyCartCheckout, "Cannot checkout empty cart")
	ErrExpiredCard     = failure.New(failure.ExpiredCreditCard, "Cannot checkout with expired credit card")
	ErrPaymentDeclined = failure.New(failure.PaymentDeclined, "Unable to process payment")
)

// Cashier turns a cart and a credit card into a recorded sale. The ledger is
// written only after the payment went through, and the cart is left as is.
type Cashier struct {
	clock    clock.Clock
	payments payment.Authorizer
	ledger   *ledger.Ledger
	log      logrus.FieldLogger
}

func NewCashier(clk clock.Clock, payments payment.Authorizer, l *ledger.Ledger, log logrus.FieldLogger) *Cashier {
	return &Cashier{
		clock:    clk,
		payments: payments,
		ledger:   l,
		log:      log,
	}
}

func (c *Cashier) Checkout(ctx context.Context, clientID string, crt *cart.Cart, cc card.CreditCard) (string, error) {
	if crt.IsEmpty() {
		return "", ErrEmptyCart
	}

	if cc.Expired(c.clock.MonthOfYear()) {
		return "", ErrExpiredCard
	}

	total := crt.TotalPrice()

	if err := c.payments.Charge(ctx, total, cc); err != nil {
		c.log.WithFields(logrus.Fields{
			"client_id": clientID,
			"amount":    total,
			"card":      cc.LastDigits(),
			"message":   err,
		}).Warn("payment declined")
		return "", ErrPaymentDeclined
	}

	id := c.ledger.Append(clientID, total, crt.Items())

	c.log.WithFields(logrus.Fields{
		"client_id":   clientID,
		"purchase_id": id,
		"amount":      total,
	}).Info("sale registered")

	return id, nil
}

func (c *Cashier) SalesFor(clientID string) ledger.Summary {
	return c.ledger.SummaryFor(clientID)
}
