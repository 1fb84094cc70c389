package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vitrine-app/vitrine-server/internal/domain"
)

// HistoryCache is the in-memory layer of the conversation store. Entries
// live for the lifetime of the process and are removed only by Clear.
type HistoryCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.ConversationTurn
}

// NewHistoryCache creates an empty history cache
func NewHistoryCache() *HistoryCache {
	return &HistoryCache{
		entries: make(map[string][]domain.ConversationTurn),
	}
}

func (c *HistoryCache) get(subjectID string) ([]domain.ConversationTurn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	turns, ok := c.entries[subjectID]
	if !ok {
		return nil, false
	}
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out, true
}

func (c *HistoryCache) put(subjectID string, turns []domain.ConversationTurn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]domain.ConversationTurn, len(turns))
	copy(stored, turns)
	c.entries[subjectID] = stored
}

// append adds a turn to the subject's window, evicting the oldest entry
// once the window holds maxHistory turns
func (c *HistoryCache) append(subjectID string, turn domain.ConversationTurn, maxHistory int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	turns := append(c.entries[subjectID], turn)
	if len(turns) > maxHistory {
		turns = turns[len(turns)-maxHistory:]
	}
	c.entries[subjectID] = turns
}

func (c *HistoryCache) has(subjectID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[subjectID]
	return ok
}

func (c *HistoryCache) delete(subjectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, subjectID)
}

// Store keeps a bounded per-subject conversation window in memory, backed
// by durable storage. Conversational memory is a best-effort amenity: a
// storage fault degrades the result, it never fails message delivery.
type Store struct {
	cache      *HistoryCache
	repo       domain.ConversationRepository
	maxHistory int
}

// NewStore creates a bounded conversation store
func NewStore(cache *HistoryCache, repo domain.ConversationRepository, maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = 5
	}
	return &Store{
		cache:      cache,
		repo:       repo,
		maxHistory: maxHistory,
	}
}

// MaxHistory returns the window capacity
func (s *Store) MaxHistory() int {
	return s.maxHistory
}

// Append adds a turn to the subject's window. The cache is updated first,
// then the durable layer via a window-preserving upsert. Returns whether
// the turn reached durable storage; a durable failure is logged, not raised.
func (s *Store) Append(ctx context.Context, subjectID string, turn domain.ConversationTurn) (persisted bool) {
	s.cache.append(subjectID, turn, s.maxHistory)

	if err := s.repo.AppendTurn(ctx, subjectID, turn, s.maxHistory); err != nil {
		log.Error().Err(err).Str("subject_id", subjectID).Msg("failed to persist conversation turn")
		return false
	}
	return true
}

// History returns the subject's window in chronological order. On a cache
// miss it reads through to durable storage and populates the cache.
// degraded reports that durable storage failed and an empty history was
// substituted; an empty history for a new subject is not degraded.
func (s *Store) History(ctx context.Context, subjectID string) (turns []domain.ConversationTurn, degraded bool) {
	if cached, ok := s.cache.get(subjectID); ok {
		return cached, false
	}

	stored, err := s.repo.GetTurns(ctx, subjectID)
	if err != nil {
		log.Error().Err(err).Str("subject_id", subjectID).Msg("failed to load conversation history")
		return []domain.ConversationTurn{}, true
	}

	s.cache.put(subjectID, stored)
	return stored, false
}

// Clear removes the subject's window from both the cache and durable
// storage. Idempotent: clearing an unknown subject succeeds.
func (s *Store) Clear(ctx context.Context, subjectID string) error {
	s.cache.delete(subjectID)

	if err := s.repo.Delete(ctx, subjectID); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}
