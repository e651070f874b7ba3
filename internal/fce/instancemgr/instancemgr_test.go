package instancemgr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("game", "_id", schema.NewFieldDescriptor("name", "name"))
	require.NoError(t, err)
	return s
}

func TestCreate_SameIdentityReturnsSameHandle(t *testing.T) {
	s := testSchema(t)
	shared := sharedcache.NewFake()
	st := store.NewFake()

	mgr := New(func(id identity.ID) *handle.Handle {
		return handle.New("game", s, id, shared, st, 60, nil)
	})

	id := identity.New()
	h1 := mgr.Create(id)
	h2 := mgr.Create(id)

	assert.Same(t, h1, h2)
	assert.Equal(t, 1, mgr.Len())
}

// Two handles obtained for the same identity share local-cache state.
func TestCreate_SharesLocalCacheState(t *testing.T) {
	ctx := context.Background()
	s := testSchema(t)
	shared := sharedcache.NewFake()
	st := store.NewFake()
	id := identity.New()
	_, err := st.InsertOne(ctx, "game", store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)

	mgr := New(func(id identity.ID) *handle.Handle {
		return handle.New("game", s, id, shared, st, 60, nil)
	})

	h1 := mgr.Create(id)
	_, ok, err := h1.GetField(ctx, "name")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.DeleteOne(ctx, "game", store.Document{"_id": id.Hex()}))

	h2 := mgr.Create(id)
	v, ok, err := h2.GetField(ctx, "name")
	require.NoError(t, err)
	require.True(t, ok, "h2 must see h1's local-cache-resident value even though the store row is gone")
	assert.Equal(t, "Arena", v)
}

func TestClear_WithPurge_EmptiesOutstandingHandles(t *testing.T) {
	ctx := context.Background()
	s := testSchema(t)
	shared := sharedcache.NewFake()
	st := store.NewFake()
	id := identity.New()
	_, err := st.InsertOne(ctx, "game", store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)

	mgr := New(func(id identity.ID) *handle.Handle {
		return handle.New("game", s, id, shared, st, 60, nil)
	})

	h := mgr.Create(id)
	_, _, err = h.GetField(ctx, "name")
	require.NoError(t, err)

	mgr.Clear(true)
	assert.Equal(t, 0, mgr.Len())

	// Clear purges local caches only; take the shared tier out of the
	// read path so the value the first read backfilled there cannot
	// answer for the purged local cache.
	shared.SetReady(false)
	require.NoError(t, st.DeleteOne(ctx, "game", store.Document{"_id": id.Hex()}))
	_, ok, err := h.GetField(ctx, "name")
	require.NoError(t, err)
	assert.False(t, ok, "purged handle's local cache must be empty, forcing a re-fetch")
}
