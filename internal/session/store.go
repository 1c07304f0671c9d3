// Package session holds the ephemeral per-user state that bridges "user
// picked a quality" back to "what URL and format options were discovered".
// Entries live in memory only and are forgotten after a fixed time-to-live,
// either logically on read or physically by the periodic sweep.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ytget/yt-telegram-bot/internal/metrics"
	"github.com/ytget/yt-telegram-bot/internal/model"
)

// Store is an in-memory TTL cache of download sessions, keyed by user. It is
// safe for concurrent use by the chat handlers and the background sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session

	ttl        time.Duration
	sweepEvery time.Duration
	log        *slog.Logger
}

// NewStore creates a session store. Entries expire ttl after creation; Run
// sweeps them physically every sweepEvery.
func NewStore(ttl, sweepEvery time.Duration, log *slog.Logger) *Store {
	return &Store{
		sessions:   make(map[int64]model.Session),
		ttl:        ttl,
		sweepEvery: sweepEvery,
		log:        log,
	}
}

// Put stores a freshly time-stamped session for the user, replacing any
// existing entry wholesale. Last-submitted link wins.
func (s *Store) Put(userID int64, url string, formats map[int]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = model.Session{
		UserID:    userID,
		URL:       url,
		Formats:   formats,
		CreatedAt: time.Now(),
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

// Get returns the user's session. An entry whose age has reached the TTL is
// reported as absent even if the sweep has not removed it yet, so callers
// treat "never stored" and "expired" identically.
func (s *Store) Get(userID int64) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.Expired(s.ttl, time.Now()) {
		return model.Session{}, false
	}
	return sess, true
}

// Delete removes the user's session if present.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

// Len returns the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes all entries whose age has reached the TTL and returns how
// many were evicted.
func (s *Store) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.Expired(s.ttl, now) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	metrics.SessionsSwept.Add(float64(evicted))
	return evicted
}

// Run drives the periodic sweep until ctx is canceled. A single pass never
// stops the loop; the next tick always fires.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session sweep stopped")
			return
		case <-ticker.C:
			if evicted := s.Sweep(); evicted > 0 {
				s.log.Info("session sweep", "evicted", evicted, "remaining", s.Len())
			}
		}
	}
}
