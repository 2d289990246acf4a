package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vetsupport/internal/model"
)

// SessionCache handles Redis operations for companion chat sessions.
// Sessions are cache-resident only; a veteran has at most one active
// session at a time.
type SessionCache interface {
	SetSession(ctx context.Context, veteranID string, session *model.ChatSession) error
	GetSession(ctx context.Context, veteranID string) (*model.ChatSession, error)
	AppendMessage(ctx context.Context, veteranID string, msg *model.ChatMessage) error
	GetMessages(ctx context.Context, veteranID string) ([]*model.ChatMessage, error)
	Clear(ctx context.Context, veteranID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new chat session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *sessionCache) sessionKey(veteranID string) string {
	return fmt.Sprintf("vet:%s:chat:session", veteranID)
}

func (c *sessionCache) messagesKey(veteranID string) string {
	return fmt.Sprintf("vet:%s:chat:messages", veteranID)
}

func (c *sessionCache) SetSession(ctx context.Context, veteranID string, session *model.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.sessionKey(veteranID), data, c.ttl).Err()
}

func (c *sessionCache) GetSession(ctx context.Context, veteranID string) (*model.ChatSession, error) {
	data, err := c.client.Get(ctx, c.sessionKey(veteranID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) AppendMessage(ctx context.Context, veteranID string, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := c.messagesKey(veteranID)
	if err := c.client.RPush(ctx, key, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

func (c *sessionCache) GetMessages(ctx context.Context, veteranID string) ([]*model.ChatMessage, error) {
	items, err := c.client.LRange(ctx, c.messagesKey(veteranID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]*model.ChatMessage, 0, len(items))
	for _, item := range items {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}

func (c *sessionCache) Clear(ctx context.Context, veteranID string) error {
	return c.client.Del(ctx, c.sessionKey(veteranID), c.messagesKey(veteranID)).Err()
}
