package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	MonthOfYear() MonthOfYear
}

type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

func (s System) MonthOfYear() MonthOfYear { return MonthOf(s.Now()) }

// Simulated is a manually driven clock for tests and demos.
type Simulated struct {
	mu  sync.Mutex
	now time.Time
}

func NewSimulated(now time.Time) *Simulated {
	return &Simulated{now: now}
}

func (s *Simulated) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Simulated) MonthOfYear() MonthOfYear { return MonthOf(s.Now()) }

func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}

func (s *Simulated) AdvanceMinutes(minutes int) {
	s.Advance(time.Duration(minutes) * time.Minute)
}

func (s *Simulated) Set(now time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}
