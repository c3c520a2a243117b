package badgerdb

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemstore/telemstore/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{}, "name", "timestamp", "labels")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func i64(v int64) *int64 { return &v }

func TestPutGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("cpu|00000000000000000001|host=\"a\"", []byte("payload")))

	got, found, err := s.Get("cpu|00000000000000000001|host=\"a\"")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("payload"), got)

	_, found, err = s.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetMulti_OmitsMissing(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("k1", []byte("v1")))
	require.NoError(t, s.Put("k2", []byte("v2")))

	values, err := s.GetMulti([]string{"k1", "missing", "k2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]byte{[]byte("v1"), []byte("v2")}, values)
}

func TestBatchProtocol(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.StartBatch())
	assert.ErrorIs(t, s.StartBatch(), store.ErrBatchAlreadyStarted)
	require.NoError(t, s.CommitBatch())
	assert.ErrorIs(t, s.CommitBatch(), store.ErrBatchNotStarted)
}

func TestBatchWritesInvisibleUntilCommit(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.StartBatch())
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.CreateIndex("name", "k", "name|cpu|k"))

	_, found, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, found, "staged write must not be readable")

	set, err := s.QueryIndex("name", "name|cpu|")
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	require.NoError(t, s.CommitBatch())

	_, found, err = s.Get("k")
	require.NoError(t, err)
	assert.True(t, found)

	set, err = s.QueryIndex("name", "name|cpu|")
	require.NoError(t, err)
	assert.True(t, set.Has("k"))
}

func TestRollbackDropsBatch(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.StartBatch())
	require.NoError(t, s.Put("k", []byte("v")))
	s.RollbackBatch()

	assert.ErrorIs(t, s.CommitBatch(), store.ErrBatchNotStarted)
	_, found, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueryIndex_PrefixTermination(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateIndex("name", "p1", "name|cpu|p1"))
	require.NoError(t, s.CreateIndex("name", "p2", "name|cpu|p2"))
	require.NoError(t, s.CreateIndex("name", "p3", "name|cpufreq|p3"))

	set, err := s.QueryIndex("name", "name|cpu|")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, set.Sorted())
}

func TestQueryIndex_UnknownFamily(t *testing.T) {
	s := newTestStore(t)

	_, err := s.QueryIndex("bogus", "name|cpu|")
	assert.ErrorIs(t, err, store.ErrFamilyNotFound)

	err = s.CreateIndex("bogus", "p", "k")
	assert.ErrorIs(t, err, store.ErrFamilyNotFound)
}

func TestQueryTimestampIndex_Range(t *testing.T) {
	s := newTestStore(t)

	for ts := int64(0); ts < 10; ts++ {
		primary := fmt.Sprintf("p%d", ts)
		key := fmt.Sprintf("timestamp|%020d|%s", ts, primary)
		require.NoError(t, s.CreateIndex("timestamp", primary, key))
	}

	t.Run("inclusive bounds", func(t *testing.T) {
		set, err := s.QueryTimestampIndex("timestamp", i64(3), i64(5))
		require.NoError(t, err)
		assert.Equal(t, []string{"p3", "p4", "p5"}, set.Sorted())
	})

	t.Run("open start", func(t *testing.T) {
		set, err := s.QueryTimestampIndex("timestamp", nil, i64(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"p0", "p1", "p2"}, set.Sorted())
	})

	t.Run("open end", func(t *testing.T) {
		set, err := s.QueryTimestampIndex("timestamp", i64(7), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"p7", "p8", "p9"}, set.Sorted())
	})

	t.Run("fully open", func(t *testing.T) {
		set, err := s.QueryTimestampIndex("timestamp", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, set.Len())
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		set, err := s.QueryTimestampIndex("timestamp", i64(5), i64(3))
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})
}

// The 20-digit padding must preserve order at the top of the int64 range.
func TestQueryTimestampIndex_Int64Edge(t *testing.T) {
	s := newTestStore(t)

	ts := int64(math.MaxInt64 - 807) // 9_223_372_036_854_775_000
	key := fmt.Sprintf("timestamp|%020d|edge", ts)
	require.NoError(t, s.CreateIndex("timestamp", "edge", key))

	set, err := s.QueryTimestampIndex("timestamp", nil, i64(math.MaxInt64-1))
	require.NoError(t, err)
	assert.True(t, set.Has("edge"))

	set, err = s.QueryTimestampIndex("timestamp", i64(ts+1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestQueryTimestampIndex_CorruptKey(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateIndex("timestamp", "p", "timestamp|notdigits"))

	_, err := s.QueryTimestampIndex("timestamp", nil, nil)
	assert.ErrorIs(t, err, store.ErrBadPostingKey)
}

func TestOpen_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{Path: dir}, "name")
	require.NoError(t, err)

	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(Options{Path: dir}, "name")
	require.NoError(t, err)
	defer s.Close()

	got, found, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)
}
