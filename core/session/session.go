package session

import (
	"sync"
	"time"

	"github.com/irsalhamdi/e-commerce-books/core/cart"
	"github.com/irsalhamdi/e-commerce-books/core/clock"
	"github.com/irsalhamdi/e-commerce-books/core/failure"
)

const DefaultTimeout = 30 * time.Minute

var ErrExpired = failure.New(failure.SessionExpired, "Session expired")

type State string

const (
	Active  State = "active"
	Expired State = "expired"
)

// IsExpired reports whether a session last used at last has been idle for the
// whole timeout window at now.
func IsExpired(now, last time.Time, timeout time.Duration) bool {
	return now.Sub(last) >= timeout
}

// Session binds one cart to a sliding inactivity window. Every cart touching
// operation checks the window first and, when it is still open, moves it
// forward. Once a session is seen expired it never recovers.
type Session struct {
	mu           sync.Mutex
	cart         *cart.Cart
	clock        clock.Clock
	timeout      time.Duration
	createdAt    time.Time
	lastActivity time.Time
	state        State
}

func New(c *cart.Cart, clk clock.Clock, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	now := clk.Now()
	return &Session{
		cart:         c,
		clock:        clk,
		timeout:      timeout,
		createdAt:    now,
		lastActivity: now,
		state:        Active,
	}
}

func (s *Session) Items() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touch(); err != nil {
		return nil, err
	}
	return s.cart.Items(), nil
}

func (s *Session) AddItem(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touch(); err != nil {
		return err
	}
	return s.cart.AddItem(id, quantity)
}

// PrepareForCheckout hands the live cart to fn. No other operation on this
// session runs until fn returns.
func (s *Session) PrepareForCheckout(fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touch(); err != nil {
		return err
	}
	return fn(s.cart)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// touch must be called with mu held.
func (s *Session) touch() error {
	if s.state == Expired {
		return ErrExpired
	}

	now := s.clock.Now()
	if IsExpired(now, s.lastActivity, s.timeout) {
		s.state = Expired
		return ErrExpired
	}

	s.lastActivity = now
	return nil
}
