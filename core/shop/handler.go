package shop

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/e-commerce-books/api/web"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
	"github.com/irsalhamdi/e-commerce-books/core/ledger"
	"github.com/irsalhamdi/e-commerce-books/validate"
)

// CartKey is the cookie session key holding the last cart created by the
// caller.
const CartKey = "cartId"

var (
	ErrInvalidCartID     = failure.New(failure.InvalidRequest, "Cart id is invalid")
	ErrInvalidExpiration = failure.New(failure.InvalidRequest, "Card Expiration date is invalid")
	ErrInvalidQuantity   = failure.New(failure.InvalidRequest, "Book quantity is invalid")
)

const okMessage = "OK"

func HandleCreateCart(s *Shop, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clientID := web.Query(r, "clientId")
		password := web.Query(r, "password")

		id, err := s.CreateSession(ctx, clientID, password)
		if err != nil {
			return fmt.Errorf("creating cart for client[%s]: %w", clientID, err)
		}

		if sm != nil {
			sm.Put(ctx, CartKey, id)
		}

		return web.Respond(ctx, w, web.Success(id), http.StatusOK)
	}
}

func HandleAddToCart(s *Shop, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		quantity, err := strconv.Atoi(web.Query(r, "bookQuantity"))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
		}

		cartID, err := cartIDFrom(ctx, r, sm)
		if err != nil {
			return err
		}

		if err := s.AddItem(cartID, web.Query(r, "bookIsbn"), quantity); err != nil {
			return err
		}

		return web.Respond(ctx, w, web.Success(okMessage), http.StatusOK)
	}
}

func HandleListCart(s *Shop, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID, err := cartIDFrom(ctx, r, sm)
		if err != nil {
			return err
		}

		items, err := s.ListCart(cartID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, web.Success(encodeItems(items)), http.StatusOK)
	}
}

func HandleCheckoutCart(s *Shop, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID, err := cartIDFrom(ctx, r, sm)
		if err != nil {
			return err
		}

		expiration, err := clock.ParseMonthOfYear(web.Query(r, "cced"))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
		}

		purchaseID, err := s.Checkout(ctx, cartID, web.Query(r, "ccn"), expiration, web.Query(r, "cco"))
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, web.Success(purchaseID), http.StatusOK)
	}
}

func HandleListPurchases(s *Shop) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clientID := web.Query(r, "clientId")

		summary, err := s.ListPurchases(ctx, clientID, web.Query(r, "password"))
		if err != nil {
			return fmt.Errorf("listing purchases of client[%s]: %w", clientID, err)
		}

		return web.Respond(ctx, w, web.Success(encodeSummary(summary)), http.StatusOK)
	}
}

// cartIDFrom reads the cart id from the query, falling back to the one kept
// in the caller's cookie session.
func cartIDFrom(ctx context.Context, r *http.Request, sm *scs.SessionManager) (string, error) {
	id := web.Query(r, CartKey)
	if id == "" && sm != nil {
		id = sm.GetString(ctx, CartKey)
	}

	if err := validate.CheckID(id); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCartID, err)
	}
	return id, nil
}

func encodeItems(items map[string]int) string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	values := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		values = append(values, id, strconv.Itoa(items[id]))
	}
	return web.Join(values...)
}

func encodeSummary(s ledger.Summary) string {
	total := strconv.Itoa(s.Total)
	if len(s.Items) == 0 {
		return total
	}
	return web.Join(encodeItems(s.Items), total)
}
