package card

import (
	"fmt"

	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
	"github.com/irsalhamdi/e-commerce-books/validate"
)

var ErrInvalidData = failure.New(failure.InvalidCreditCardData, "Invalid card data")

type CreditCard struct {
	Number     string            `validate:"required,max=16,number"`
	Expiration clock.MonthOfYear `validate:"-"`
	Owner      string            `validate:"required,max=30,alphaspace"`
}

func New(number string, expiration clock.MonthOfYear, owner string) (CreditCard, error) {
	cc := CreditCard{
		Number:     number,
		Expiration: expiration,
		Owner:      owner,
	}

	if err := validate.Check(cc); err != nil {
		return CreditCard{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	return cc, nil
}

// Expired reports whether the card stopped being valid before the given
// month. A card is still usable during its expiration month.
func (c CreditCard) Expired(now clock.MonthOfYear) bool {
	return c.Expiration.Before(now)
}

func (c CreditCard) LastDigits() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}
