package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedIDJSON(t *testing.T) {
	id := NewUserID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var parsed UserID
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, id, parsed)

	// The zero value round-trips and stays zero.
	var zero UserID
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.IsZero())
}

func TestTypedIDCBORRecordID(t *testing.T) {
	id := NewTaskID()

	data, err := id.MarshalCBOR()
	require.NoError(t, err)

	var parsed TaskID
	require.NoError(t, parsed.UnmarshalCBOR(data))
	assert.Equal(t, id, parsed)

	// A record from another table must be refused.
	var ws WorkspaceID
	err = ws.UnmarshalCBOR(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks")
}

func TestTypedIDScan(t *testing.T) {
	raw := uuid.New()

	var id ProjectID
	require.NoError(t, id.Scan(raw.String()))
	assert.Equal(t, raw, id.UUID())

	require.NoError(t, id.Scan([]byte(raw.String())))
	assert.Equal(t, raw, id.UUID())

	require.NoError(t, id.Scan(nil))
	assert.True(t, id.IsZero())

	assert.Error(t, id.Scan(42))
}
