package store

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/pdfchat/internal/domain/chatModel"
)

var errEmptyLog = errors.New("conversation log is empty")

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]chatModel.Message
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]chatModel.Message),
	}
}

func (store *InMemoryMessageStore) Append(ctx context.Context, sessionId string, msg chatModel.Message) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[sessionId] = append(store.chatMap[sessionId], msg)
	return nil
}

func (store *InMemoryMessageStore) ReplaceLast(ctx context.Context, sessionId string, msg chatModel.Message) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	log := store.chatMap[sessionId]
	if len(log) == 0 {
		return errEmptyLog
	}
	log[len(log)-1] = msg
	return nil
}

// List returns a copy so callers can't reach into the log.
func (store *InMemoryMessageStore) List(ctx context.Context, sessionId string) ([]chatModel.Message, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	log := store.chatMap[sessionId]
	out := make([]chatModel.Message, len(log))
	copy(out, log)
	return out, nil
}

func (store *InMemoryMessageStore) Clear(ctx context.Context, sessionId string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	delete(store.chatMap, sessionId)
	inMemLogger.Debug("Cleared conversation", "sessionId", sessionId)
	return nil
}
