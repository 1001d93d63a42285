package chat

import (
	"sync"

	"homequest/server/internal/apperr"
	"homequest/server/internal/models"
)

// Store is the process-local chat registry. Chats are ephemeral by design:
// they live only in this map, are lost on restart, and tie the serving
// layer to a single instance. A RWMutex guards concurrent request handling.
type Store struct {
	mu    sync.RWMutex
	chats map[string]*models.Chat
}

func NewStore() *Store {
	return &Store{chats: make(map[string]*models.Chat)}
}

func (s *Store) Put(chat *models.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chat.ID] = chat
}

// Get returns a snapshot of the chat, safe for the caller to read after the
// lock is released.
func (s *Store) Get(id string) (*models.Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chat, ok := s.chats[id]
	if !ok {
		return nil, false
	}
	return snapshot(chat), true
}

// WithChat runs fn against the live chat record under the write lock. fn's
// error is returned unchanged; a missing chat yields NotFound.
func (s *Store) WithChat(id string, fn func(chat *models.Chat) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[id]
	if !ok {
		return apperr.NotFound("Chat not found")
	}
	return fn(chat)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}

func snapshot(chat *models.Chat) *models.Chat {
	cp := *chat
	cp.Messages = make([]models.Message, len(chat.Messages))
	copy(cp.Messages, chat.Messages)
	return &cp
}
