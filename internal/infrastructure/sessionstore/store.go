// Package sessionstore keeps in-flight conversations in process memory,
// keyed by (session, tab). The mutex protects the maps themselves, not
// individual conversations: callers receive copies and write them back with
// Put, so two turns racing on the same key resolve as last-put-wins.
package sessionstore

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/kkmjpaibot/sgsh/internal/domain/conversation"
	"github.com/kkmjpaibot/sgsh/internal/infrastructure/metrics"
)

// Store implements conversation.Registry. Entries are never evicted; stale
// conversations sit inert until the process restarts.
type Store struct {
	mu sync.RWMutex

	conversations map[conversation.Key]*conversation.Conversation

	// legacy holds unkeyed single-conversation records from before tabs
	// existed, keyed by session id only. GetOrCreate migrates them into the
	// default tab on first access.
	legacy map[string]*conversation.Conversation

	log zerolog.Logger
}

var _ conversation.Registry = (*Store)(nil)

// New returns an empty store.
func New(log zerolog.Logger) *Store {
	return &Store{
		conversations: make(map[conversation.Key]*conversation.Conversation),
		legacy:        make(map[string]*conversation.Conversation),
		log:           log.With().Str("component", "session-store").Logger(),
	}
}

// GetOrCreate returns a copy of the conversation for key. A legacy unkeyed
// record for the same session is promoted into the default tab exactly once,
// then discarded from the old slot. Otherwise a fresh start-stage
// conversation is stored and returned.
func (s *Store) GetOrCreate(key conversation.Key) *conversation.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.conversations[key]; ok {
		return c.Clone()
	}

	if key.TabID == conversation.DefaultTab {
		if c, ok := s.legacy[key.SessionID]; ok {
			delete(s.legacy, key.SessionID)
			s.conversations[key] = c
			s.log.Debug().Str("session", key.SessionID).Msg("migrated legacy conversation into keyed map")
			metrics.ActiveConversations.Set(float64(len(s.conversations)))
			return c.Clone()
		}
	}

	c := conversation.New()
	s.conversations[key] = c
	metrics.ActiveConversations.Set(float64(len(s.conversations)))
	return c.Clone()
}

// Put overwrites the stored conversation for key.
func (s *Store) Put(key conversation.Key, c *conversation.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[key] = c.Clone()
	metrics.ActiveConversations.Set(float64(len(s.conversations)))
}

// Remove drops the conversation for key entirely.
func (s *Store) Remove(key conversation.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, key)
	metrics.ActiveConversations.Set(float64(len(s.conversations)))
}

// SeedLegacy installs an unkeyed pre-tab conversation for a session. Used
// when restoring state persisted by the previous single-conversation layout.
func (s *Store) SeedLegacy(sessionID string, c *conversation.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacy[sessionID] = c.Clone()
}
