package failure

import "errors"

type Kind int

const (
	InvalidCredentials Kind = iota + 1
	UnknownSessionID
	SessionExpired
	UnknownItem
	InvalidQuantity
	EmptyCartCheckout
	ExpiredCreditCard
	PaymentDeclined
	InvalidCreditCardData
	InvalidRequest
)

var kindNames = map[Kind]string{
	InvalidCredentials:    "invalid_credentials",
	UnknownSessionID:      "unknown_session_id",
	SessionExpired:        "session_expired",
	UnknownItem:           "unknown_item",
	InvalidQuantity:       "invalid_quantity",
	EmptyCartCheckout:     "empty_cart_checkout",
	ExpiredCreditCard:     "expired_credit_card",
	PaymentDeclined:       "payment_declined",
	InvalidCreditCardData: "invalid_credit_card_data",
	InvalidRequest:        "invalid_request",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Error is an expected, user facing failure. Its message is safe to show to
// clients as is.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string { return e.Message }

// KindOf reports the kind of the first failure found in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// Message returns the client facing message of the failure wrapped by err,
// discarding any context added while it travelled up.
func Message(err error) (string, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message, true
	}
	return "", false
}
