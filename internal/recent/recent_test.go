package recent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	s := NewStore(mem)
	tick := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return s, mem
}

func ids(s *Store) []string {
	var out []string
	for _, it := range s.List(context.Background()) {
		out = append(out, it.ID)
	}
	return out
}

func TestAdd_IsIdempotentAndMovesToHead(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "shop-1", "n1"))
	require.NoError(t, s.Add(ctx, "shop-1", "n2"))
	require.NoError(t, s.Add(ctx, "shop-1", "n1"))

	assert.Equal(t, []string{"n1", "n2"}, ids(s))

	items := s.List(ctx)
	assert.Equal(t, "shop-1", items[0].ShopID)
	assert.Greater(t, items[0].Timestamp, items[1].Timestamp)
}

func TestAdd_EvictsOldest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= MaxItems+1; i++ {
		require.NoError(t, s.Add(ctx, "shop", fmt.Sprintf("n%d", i)))
	}

	assert.Equal(t, []string{"n7", "n6", "n5", "n4", "n3", "n2"}, ids(s))
}

func TestList_CorruptDataIsEmpty(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, StorageKey, []byte("{not json")))

	assert.Empty(t, s.List(ctx))
	assert.NotNil(t, s.List(ctx))

	require.NoError(t, s.Add(ctx, "shop", "n1"))
	assert.Equal(t, []string{"n1"}, ids(s))
}

func TestStoredFormat(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "shop-9", "n9"))

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n9","shopId":"shop-9","timestamp":1792314001000}]`, string(raw))
}
