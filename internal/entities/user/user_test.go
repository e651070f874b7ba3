package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/passwordhash"
	"github.com/bugielektrik/fieldcache/internal/validation"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
)

func newManager(t *testing.T) (*Manager, *sharedcache.Fake) {
	t.Helper()
	shared := sharedcache.NewFake()
	mgr, err := NewManager(shared, store.NewFake(), 60, nil, validation.New(), passwordhash.New(4))
	require.NoError(t, err)
	return mgr, shared
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	mgr, _ := newManager(t)
	_, err := mgr.Create(context.Background(), CreateInput{
		Email: "not-an-email", Nickname: "ace", FirstName: "A", LastName: "B", Password: "correcthorse9",
	})
	assert.Error(t, err)
}

func TestCreate_ThenVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	mgr, shared := newManager(t)

	h, err := mgr.Create(ctx, CreateInput{
		Email: "Ace@Example.com", Nickname: "ace_player", FirstName: "Ace", LastName: "Player", Password: "correcthorse9",
	})
	require.NoError(t, err)

	// P3: verifying credentials never populates the shared-cache
	// passwordHash key.
	assert.False(t, shared.Has(mgr.Schema().SharedKey(h.ID().Hex(), FieldPasswordHash)))

	got, ok, err := mgr.VerifyCredentials(ctx, "ace@example.com", "correcthorse9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, h.ID(), got.ID())

	assert.False(t, shared.Has(mgr.Schema().SharedKey(h.ID().Hex(), FieldPasswordHash)))
}

func TestCreate_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	in := CreateInput{
		Email: "ace@example.com", Nickname: "ace_player", FirstName: "Ace", LastName: "Player", Password: "correcthorse9",
	}
	_, err := mgr.Create(ctx, in)
	require.NoError(t, err)

	in.Nickname = "ace_player2"
	_, err = mgr.Create(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, fceerrors.ErrAlreadyExists)
}

func TestVerifyCredentials_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	_, err := mgr.Create(ctx, CreateInput{
		Email: "ace@example.com", Nickname: "ace_player", FirstName: "Ace", LastName: "Player", Password: "correcthorse9",
	})
	require.NoError(t, err)

	_, ok, err := mgr.VerifyCredentials(ctx, "ace@example.com", "wrongpassword1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCredentials_UnknownEmail(t *testing.T) {
	mgr, _ := newManager(t)
	_, ok, err := mgr.VerifyCredentials(context.Background(), "nobody@example.com", "whatever1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashField_ExcludedFromBothCaches(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)
	f, err := s.Field(FieldPasswordHash)
	require.NoError(t, err)
	assert.False(t, f.LocalEnabled)
	assert.False(t, f.SharedEnabled)
}
