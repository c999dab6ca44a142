package state

import (
	"sync"
	"time"
)

// Status is the published connectivity state. It is exactly one of
// Checking, Reported or Failed.
type Status interface {
	isStatus()
}

// Checking means no status has been received yet.
type Checking struct{}

// Reported carries the online flag returned by the device API.
type Reported struct {
	Online bool
}

// Failed means the last status request failed. The device is treated as
// offline and Err is kept for display.
type Failed struct {
	Err error
}

func (Checking) isStatus() {}
func (Reported) isStatus() {}
func (Failed) isStatus()   {}

// Online reports whether s says the device is reachable and online.
func Online(s Status) bool {
	r, ok := s.(Reported)
	return ok && r.Online
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Status              Status
	UpdatedAt           time.Time
	ConsecutiveFailures int
}

// Store keeps the most recently published Status. The zero value is ready to
// use and reads as Checking.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the current status. Previous values are discarded.
func (s *Store) Publish(status Status) {
	if status == nil {
		status = Checking{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = status
	s.snapshot.UpdatedAt = time.Now()
	switch status.(type) {
	case Failed:
		s.snapshot.ConsecutiveFailures++
	case Reported:
		s.snapshot.ConsecutiveFailures = 0
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if snap.Status == nil {
		snap.Status = Checking{}
	}
	return snap
}
