// Package session keeps server-side per-login state in Redis: the
// login record itself, the saved filter/sort criteria of each listing
// context, the preferred page size, and one-shot notifications.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "session:"

// Record is the login state a token points at. A token whose record is
// gone is dead, whatever its JWT expiry says; locking a user works by
// deleting their records.
type Record struct {
	UserID    uint           `json:"user_id"`
	Role      model.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

func recordKey(id string) string {
	return keyPrefix + id
}

func critKey(id string, lc listing.Context) string {
	return keyPrefix + id + ":crit:" + string(lc)
}

func limitKey(id string, lc listing.Context) string {
	return keyPrefix + id + ":limit:" + string(lc)
}

func flashKey(id string) string {
	return keyPrefix + id + ":flash"
}

func (m *Manager) Create(ctx context.Context, user *model.User) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(Record{
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, recordKey(id), data, m.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Manager) Get(ctx context.Context, id string) (Record, bool, error) {
	data, err := m.client.Get(ctx, recordKey(id)).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.client.Del(ctx, recordKey(id)).Err()
}

// isRecordKey tells login records apart from their subkeys in a scan:
// records are "session:<id>", subkeys carry extra colons.
func isRecordKey(key string) bool {
	return strings.Count(key, ":") == 1
}

// recordOwnedBy reports whether raw record data belongs to the user.
// Undecodable data belongs to nobody.
func recordOwnedBy(data []byte, userID uint) bool {
	var r Record
	return json.Unmarshal(data, &r) == nil && r.UserID == userID
}

// DestroyUserSessions deletes every login record belonging to a user.
// Criteria and flash subkeys are left to expire on their own TTL; with
// the record gone they are unreachable.
func (m *Manager) DestroyUserSessions(ctx context.Context, userID uint) error {
	var cursor uint64
	for {
		keys, next, err := m.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		for _, key := range keys {
			if !isRecordKey(key) {
				continue
			}
			data, err := m.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}
			if recordOwnedBy(data, userID) {
				m.client.Del(ctx, key)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// SaveCriteria overwrites the stored criteria block of one listing
// context; other contexts keep theirs.
func (m *Manager) SaveCriteria(ctx context.Context, id string, lc listing.Context, c listing.Criteria) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, critKey(id, lc), data, m.ttl).Err()
}

func (m *Manager) Criteria(ctx context.Context, id string, lc listing.Context) (listing.Criteria, bool, error) {
	data, err := m.client.Get(ctx, critKey(id, lc)).Bytes()
	if err == redis.Nil {
		return listing.Criteria{}, false, nil
	}
	if err != nil {
		return listing.Criteria{}, false, err
	}
	var c listing.Criteria
	if err := json.Unmarshal(data, &c); err != nil {
		return listing.Criteria{}, false, err
	}
	return c, true, nil
}

func (m *Manager) SaveLimit(ctx context.Context, id string, lc listing.Context, limit int) error {
	return m.client.Set(ctx, limitKey(id, lc), limit, m.ttl).Err()
}

func (m *Manager) Limit(ctx context.Context, id string, lc listing.Context) int {
	limit, err := m.client.Get(ctx, limitKey(id, lc)).Int()
	if err != nil {
		return 0
	}
	return limit
}

// Flash stores a one-shot notification to show after a redirect.
func (m *Manager) Flash(ctx context.Context, id, message string) error {
	return m.client.Set(ctx, flashKey(id), message, m.ttl).Err()
}

// PopFlash returns the pending notification and clears it.
func (m *Manager) PopFlash(ctx context.Context, id string) string {
	key := flashKey(id)
	message, err := m.client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	m.client.Del(ctx, key)
	return message
}
