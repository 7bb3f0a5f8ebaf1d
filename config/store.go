package config

import "sync"

// Store owns the live configuration. Readers take whole snapshots, so one
// tick never sees a half-applied change.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore returns a store holding cfg. cfg is not validated; callers
// validate before starting the pipeline.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to a copy of the configuration and commits it if the
// result validates. On error the stored configuration is unchanged.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// SetFlag sets the enable flag bound to target and reports whether it
// changed.
func (s *Store) SetFlag(target ToggleTarget, on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target == ToggleNone || s.cfg.Flag(target) == on {
		return false
	}
	s.cfg.SetFlag(target, on)
	return true
}
