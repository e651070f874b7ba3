package entitymgr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
)

func gameSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("game", "_id",
		schema.NewFieldDescriptor("name", "name"),
	)
	require.NoError(t, err)
	return s
}

func TestExistsByID_FallsBackToStoreThenCachesResult(t *testing.T) {
	ctx := context.Background()
	shared := sharedcache.NewFake()
	st := store.NewFake()
	s := gameSchema(t)
	mgr := New("game", s, shared, st, 60, nil)

	id := identity.New()
	_, err := st.InsertOne(ctx, "game", store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)

	ok, err := mgr.ExistsByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, shared.Has(s.SharedExistsKey(id.Hex())))
}

func TestExistsByID_MissingIdentity(t *testing.T) {
	ctx := context.Background()
	shared := sharedcache.NewFake()
	st := store.NewFake()
	s := gameSchema(t)
	mgr := New("game", s, shared, st, 60, nil)

	ok, err := mgr.ExistsByID(ctx, identity.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreate_FlushesTypeWideSharedCacheAndHandsOutHandle(t *testing.T) {
	ctx := context.Background()
	shared := sharedcache.NewFake()
	st := store.NewFake()
	s := gameSchema(t)
	mgr := New("game", s, shared, st, 60, nil)

	staleID := identity.New()
	require.NoError(t, shared.SetEX(ctx, s.SharedExistsKey(staleID.Hex()), "0", 60))

	id := identity.New()
	h, err := mgr.Create(ctx, id, store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)
	assert.Equal(t, id, h.ID())

	assert.False(t, shared.Has(s.SharedExistsKey(staleID.Hex())), "create must flush the type-wide shared cache")
}

func TestFindByUniqueField(t *testing.T) {
	ctx := context.Background()
	shared := sharedcache.NewFake()
	st := store.NewFake()
	s := gameSchema(t)
	mgr := New("game", s, shared, st, 60, nil)

	id := identity.New()
	_, err := st.InsertOne(ctx, "game", store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)

	h, ok, err := mgr.FindByUniqueField(ctx, "name", "Arena")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, h.ID())

	_, ok, err = mgr.FindByUniqueField(ctx, "name", "NoSuchGame")
	require.NoError(t, err)
	assert.False(t, ok)
}

// P4: after Flush, no shared-cache key matching the type wildcard
// exists and every prior handle's local cache is empty.
func TestFlush_Completeness(t *testing.T) {
	ctx := context.Background()
	shared := sharedcache.NewFake()
	st := store.NewFake()
	s := gameSchema(t)
	mgr := New("game", s, shared, st, 60, nil)

	id := identity.New()
	_, err := st.InsertOne(ctx, "game", store.Document{"_id": id.Hex(), "name": "Arena"})
	require.NoError(t, err)

	h := mgr.Instances().Create(id)
	_, _, err = h.GetField(ctx, "name")
	require.NoError(t, err)
	assert.True(t, shared.Has(s.SharedKey(id.Hex(), "name")))

	require.NoError(t, mgr.Flush(ctx))

	assert.False(t, shared.Has(s.SharedKey(id.Hex(), "name")))
	require.NoError(t, st.DeleteOne(ctx, "game", store.Document{"_id": id.Hex()}))
	_, ok, err := h.GetField(ctx, "name")
	require.NoError(t, err)
	assert.False(t, ok, "prior handle's local cache must have been purged by Flush")
}
