package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespacedKey(t *testing.T) {
	key := NamespacedKey("name", "name|cpu|p1")
	assert.Equal(t, append([]byte("name\x00"), "name|cpu|p1"...), key)
	assert.Equal(t, []byte("name|cpu|p1"), LocalKey("name", key))
}

func TestTimestampSeekKey(t *testing.T) {
	assert.Equal(t, "timestamp|00000000000000000042", TimestampSeekKey(42))
}

func TestParseTimestampField(t *testing.T) {
	ts, err := ParseTimestampField([]byte("timestamp|00000000001000000000|cpu|..."))
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), ts)
}

func TestParseTimestampField_Corrupt(t *testing.T) {
	_, err := ParseTimestampField([]byte("timestamp|short"))
	assert.ErrorIs(t, err, ErrBadPostingKey)

	_, err = ParseTimestampField([]byte("timestamp|aaaaaaaaaaaaaaaaaaaa|p"))
	assert.ErrorIs(t, err, ErrBadPostingKey)
}
