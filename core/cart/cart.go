package cart

import (
	"math"

	"github.com/irsalhamdi/e-commerce-books/core/failure"
)

var (
	ErrInvalidQuantity = failure.New(failure.InvalidQuantity, "Must add at least one book")
	ErrUnknownItem     = failure.New(failure.UnknownItem, "Book not found")
)

// PriceList is the read only view of the catalog a cart prices against.
type PriceList interface {
	Price(id string) (int, bool)
}

// Cart is not safe for concurrent use; its owning session serializes access.
type Cart struct {
	catalog PriceList
	items   map[string]int
}

func New(catalog PriceList) *Cart {
	return &Cart{
		catalog: catalog,
		items:   make(map[string]int),
	}
}

func (c *Cart) AddItem(id string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	price, ok := c.catalog.Price(id)
	if !ok {
		return ErrUnknownItem
	}

	// Quantities, unit count and total price must all stay representable.
	if c.items[id] > math.MaxInt-quantity || c.Size() > math.MaxInt-quantity {
		return ErrInvalidQuantity
	}
	if price > 0 && (quantity > math.MaxInt/price || c.TotalPrice() > math.MaxInt-price*quantity) {
		return ErrInvalidQuantity
	}

	c.items[id] += quantity
	return nil
}

func (c *Cart) Items() map[string]int {
	items := make(map[string]int, len(c.items))
	for id, q := range c.items {
		items[id] = q
	}
	return items
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Quantity(id string) int { return c.items[id] }

// Size is the number of units in the cart, counting copies.
func (c *Cart) Size() int {
	var n int
	for _, q := range c.items {
		n += q
	}
	return n
}

func (c *Cart) TotalPrice() int {
	var tot int
	for id, q := range c.items {
		p, _ := c.catalog.Price(id)
		tot += p * q
	}
	return tot
}
