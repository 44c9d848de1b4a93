package mq

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventPushed, "signet", "abc", "success")

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "signet:abc", e.Key())
	assert.False(t, e.OccurredAt.IsZero())

	data, err := e.Marshal()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "transaction.pushed", decoded["type"])
	assert.Equal(t, "success", decoded["status"])
}
