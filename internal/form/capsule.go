package form

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CapsuleTTL bounds how long a failed submission survives before the
// follow-up GET must have consumed it.
const CapsuleTTL = 10 * time.Minute

// CapsuleStore holds redacted form state between the failing POST and
// the GET it redirects to. Take is single use: a second read of the
// same token finds nothing.
type CapsuleStore interface {
	Save(ctx context.Context, p Payload) (token string, err error)
	Take(ctx context.Context, token string) (Payload, bool, error)
}

type RedisCapsuleStore struct {
	client *redis.Client
}

func NewRedisCapsuleStore(client *redis.Client) *RedisCapsuleStore {
	return &RedisCapsuleStore{client: client}
}

func capsuleKey(token string) string {
	return "formcap:" + token
}

func (s *RedisCapsuleStore) Save(ctx context.Context, p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	token := uuid.New().String()
	if err := s.client.Set(ctx, capsuleKey(token), data, CapsuleTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisCapsuleStore) Take(ctx context.Context, token string) (Payload, bool, error) {
	if token == "" {
		return Payload{}, false, nil
	}
	key := capsuleKey(token)
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Payload{}, false, nil
	}
	if err != nil {
		return Payload{}, false, err
	}
	s.client.Del(ctx, key)
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, false, err
	}
	return p, true, nil
}
