package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"appraisals/internal/model"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an abandoned quiz attempt lingers in redis.
const sessionTTL = 30 * time.Minute

type SessionCache interface {
	Set(ctx context.Context, session *model.QuizSession) error
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, id string) (*model.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) Set(ctx context.Context, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "quiz_session:"+session.ID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := c.client.Get(ctx, "quiz_session:"+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session model.QuizSession
	err = json.Unmarshal([]byte(data), &session)
	return &session, err
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "quiz_session:"+id).Err()
}
