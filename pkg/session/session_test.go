package session

import (
	"encoding/json"
	"testing"
	"time"

	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRecordKey(t *testing.T) {
	id := "6f1c2a0e-9d3b-4c7a-8f21-0a5e7d4b9c13"

	assert.True(t, isRecordKey(recordKey(id)))

	assert.False(t, isRecordKey(critKey(id, listing.CtxCreatedQuestions)))
	assert.False(t, isRecordKey(limitKey(id, listing.CtxCreatedQuestions)))
	assert.False(t, isRecordKey(flashKey(id)))
}

func TestRecordOwnedBy(t *testing.T) {
	data, err := json.Marshal(Record{
		UserID:    42,
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, recordOwnedBy(data, 42))
	assert.False(t, recordOwnedBy(data, 7))
	assert.False(t, recordOwnedBy([]byte("not json"), 42))
	assert.False(t, recordOwnedBy(nil, 42))
}
