package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
)

func TestCreate_AndReadBackFields(t *testing.T) {
	ctx := context.Background()
	mgr, err := NewManager(sharedcache.NewFake(), store.NewFake(), 60, nil)
	require.NoError(t, err)

	owner := identity.New()
	h, err := mgr.Create(ctx, CreateInput{Name: "Arena", OwnerID: owner})
	require.NoError(t, err)

	name, ok, err := h.GetField(ctx, FieldName)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Arena", name)

	isPublic, ok, err := h.GetField(ctx, FieldIsPublic)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, isPublic)

	count, ok, err := h.GetField(ctx, FieldPlayerCount)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, count)
}
