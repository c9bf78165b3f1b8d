package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/data/redisStore"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

const messageKeyPrefix = "conversation:"

// RedisMessageStore keeps each session's log as a redis list with a ttl.
// Logs are dropped on clear and expire with the session; nothing is restored.
type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisMessageStore returns nil when redis is offline.
func GetRedisMessageStore(ctx context.Context, settings config.RedisSettings) *RedisMessageStore {
	s := redisStore.GetRedisStore(ctx, settings, config.RedisMessageStore)
	if s == nil {
		return nil
	}
	return NewRedisMessageStore(s)
}

func NewRedisMessageStore(s *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  s,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

func key(sessionId string) string {
	return messageKeyPrefix + sessionId
}

func (s *RedisMessageStore) Append(ctx context.Context, sessionId string, msg chatModel.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling message: %w", err)
	}
	if err = s.store.ListPush(ctx, key(sessionId), data, config.RedisMessageStoreTTL); err != nil {
		s.logger.WithTrace(ctx).Error("error saving message", "sessionId", sessionId, "error", err)
		return err
	}
	return nil
}

func (s *RedisMessageStore) ReplaceLast(ctx context.Context, sessionId string, msg chatModel.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling message: %w", err)
	}
	n, err := s.store.ListLen(ctx, key(sessionId))
	if err != nil {
		return err
	}
	if n == 0 {
		return errEmptyLog
	}
	return s.store.ListSetLast(ctx, key(sessionId), data, config.RedisMessageStoreTTL)
}

func (s *RedisMessageStore) List(ctx context.Context, sessionId string) ([]chatModel.Message, error) {
	raw, err := s.store.ListGetAll(ctx, key(sessionId))
	if err != nil {
		s.logger.WithTrace(ctx).Error("Error getting conversation", "sessionId", sessionId, "error", err)
		return nil, err
	}
	out := make([]chatModel.Message, 0, len(raw))
	for _, item := range raw {
		var msg chatModel.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decoding stored message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

func (s *RedisMessageStore) Clear(ctx context.Context, sessionId string) error {
	return s.store.Del(ctx, key(sessionId))
}
