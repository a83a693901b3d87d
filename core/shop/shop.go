package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/irsalhamdi/e-commerce-books/core/card"
	"github.com/irsalhamdi/e-commerce-books/core/cart"
	"github.com/irsalhamdi/e-commerce-books/core/catalog"
	"github.com/irsalhamdi/e-commerce-books/core/checkout"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
	"github.com/irsalhamdi/e-commerce-books/core/identity"
	"github.com/irsalhamdi/e-commerce-books/core/ledger"
	"github.com/irsalhamdi/e-commerce-books/core/session"
	"github.com/irsalhamdi/e-commerce-books/validate"
	"github.com/sirupsen/logrus"
)

var ErrUnknownSession = failure.New(failure.UnknownSessionID, "Cart id does not exist")

type Config struct {
	Log            logrus.FieldLogger
	Catalog        *catalog.Catalog
	Clock          clock.Clock
	Authenticator  identity.Authenticator
	Cashier        *checkout.Cashier
	SessionTimeout time.Duration
}

type entry struct {
	clientID string
	session  *session.Session
}

// Shop is the session directory. It issues session ids to authenticated
// clients and routes every cart operation to the session the id was issued
// for. A client may keep several sessions open at once; each one has its own
// cart and its own inactivity window.
type Shop struct {
	log     logrus.FieldLogger
	catalog *catalog.Catalog
	clock   clock.Clock
	auth    identity.Authenticator
	cashier *checkout.Cashier
	timeout time.Duration

	mu       sync.RWMutex
	sessions map[string]entry
	latest   map[string]string
}

func New(cfg Config) *Shop {
	return &Shop{
		log:      cfg.Log,
		catalog:  cfg.Catalog,
		clock:    cfg.Clock,
		auth:     cfg.Authenticator,
		cashier:  cfg.Cashier,
		timeout:  cfg.SessionTimeout,
		sessions: make(map[string]entry),
		latest:   make(map[string]string),
	}
}

func (s *Shop) CreateSession(ctx context.Context, clientID, password string) (string, error) {
	if err := s.auth.Authenticate(ctx, clientID, password); err != nil {
		return "", err
	}

	id := validate.GenerateID()
	sess := session.New(cart.New(s.catalog), s.clock, s.timeout)

	s.mu.Lock()
	prev, replaced := s.latest[clientID]
	s.sessions[id] = entry{clientID: clientID, session: sess}
	s.latest[clientID] = id
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"client_id": clientID, "cart_id": id})
	if replaced {
		log = log.WithField("previous_cart_id", prev)
	}
	log.Info("session created")

	return id, nil
}

func (s *Shop) Resolve(sessionID string) (string, *session.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", nil, ErrUnknownSession
	}
	return e.clientID, e.session, nil
}

// ActiveSession returns the id of the session most recently created for the
// client. Older sessions of the same client stay usable.
func (s *Shop) ActiveSession(clientID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.latest[clientID]
	return id, ok
}

func (s *Shop) AddItem(sessionID, itemID string, quantity int) error {
	_, sess, err := s.Resolve(sessionID)
	if err != nil {
		return err
	}

	if err := sess.AddItem(itemID, quantity); err != nil {
		s.logExpired(sessionID, sess, err)
		return fmt.Errorf("adding item[%s] to cart[%s]: %w", itemID, sessionID, err)
	}
	return nil
}

func (s *Shop) ListCart(sessionID string) (map[string]int, error) {
	_, sess, err := s.Resolve(sessionID)
	if err != nil {
		return nil, err
	}

	items, err := sess.Items()
	if err != nil {
		s.logExpired(sessionID, sess, err)
		return nil, fmt.Errorf("listing cart[%s]: %w", sessionID, err)
	}
	return items, nil
}

// Checkout charges the session's cart to the given card. The card is only
// built once the session is known to be alive, so an expired session is
// reported before malformed card data.
func (s *Shop) Checkout(ctx context.Context, sessionID, number string, expiration clock.MonthOfYear, owner string) (string, error) {
	clientID, sess, err := s.Resolve(sessionID)
	if err != nil {
		return "", err
	}

	var purchaseID string
	err = sess.PrepareForCheckout(func(c *cart.Cart) error {
		cc, err := card.New(number, expiration, owner)
		if err != nil {
			return err
		}

		purchaseID, err = s.cashier.Checkout(ctx, clientID, c, cc)
		return err
	})
	if err != nil {
		s.logExpired(sessionID, sess, err)
		return "", fmt.Errorf("checking out cart[%s]: %w", sessionID, err)
	}

	return purchaseID, nil
}

func (s *Shop) ListPurchases(ctx context.Context, clientID, password string) (ledger.Summary, error) {
	if err := s.auth.Authenticate(ctx, clientID, password); err != nil {
		return ledger.Summary{}, err
	}
	return s.cashier.SalesFor(clientID), nil
}

func (s *Shop) logExpired(sessionID string, sess *session.Session, err error) {
	if k, ok := failure.KindOf(err); !ok || k != failure.SessionExpired {
		return
	}

	created := sess.CreatedAt()
	s.log.WithFields(logrus.Fields{
		"cart_id":    sessionID,
		"created_at": created,
		"lifetime":   sess.LastActivity().Sub(created).String(),
	}).Debug("session expired")
}
