// Package game declares the Game entity's schema and its entity-manager
// wrapper: name, owner, creation date, visibility, and a
// live player count, each independently tiered.
package game

import (
	"context"

	"github.com/bugielektrik/fieldcache/internal/fce/entitymgr"
	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
	"github.com/bugielektrik/fieldcache/pkg/timeutil"
)

// Logical field names, exported so callers don't stringly-type them.
const (
	FieldName		= "name"
	FieldOwnerID		= "ownerID"
	FieldCreateDate		= "createDate"
	FieldIsPublic		= "isPublic"
	FieldPlayerCount	= "playerCount"
)

const collectionName = "game"

// NewSchema builds the Game entity's Field Schema.
func NewSchema() (*schema.Schema, error) {
	return schema.New(collectionName, "_id",
		schema.NewFieldDescriptor(FieldName, "name"),
		schema.NewFieldDescriptor(FieldOwnerID, "owner_id"),
		schema.NewFieldDescriptor(FieldCreateDate, "create_date").WithShared(schema.TimeISO8601Converter()).WithStore(schema.TimeStoreConverter()),
		schema.NewFieldDescriptor(FieldIsPublic, "is_public").WithShared(schema.BoolFlagConverter()),
		schema.NewFieldDescriptor(FieldPlayerCount, "player_count").WithShared(schema.IntDecimalConverter()).WithStore(schema.IntStoreConverter()),
	)
}

// Manager is the Game entity's facade.
type Manager struct {
	*entitymgr.Manager
}

// NewManager wires a Game entity manager against the given tiers.
func NewManager(shared sharedcache.Client, st store.Client, sharedTTL int, rec *metrics.Recorder) (*Manager, error) {
	s, err := NewSchema()
	if err != nil {
		return nil, err
	}
	return &Manager{Manager: entitymgr.New(collectionName, s, shared, st, sharedTTL, rec)}, nil
}

// CreateInput is the set of fields required to create a new game.
type CreateInput struct {
	Name	string
	OwnerID	identity.ID
}

// Create validates nothing domain-specific beyond non-empty name (name
// formatting/length is the Validator's job when called from an
// HTTP-facing layer, out of scope here) and inserts the new document.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*handle.Handle, error) {
	if in.Name == "" {
		return nil, fceerrors.ErrValidation.WithDetails("field", "name")
	}
	id := identity.New()
	doc := store.Document{
		"_id":		id.Hex(),
		"name":		in.Name,
		"owner_id":	in.OwnerID.Hex(),
		"create_date":	timeutil.Now(),
		"is_public":	true,
		"player_count":	0,
	}
	return m.Manager.Create(ctx, id, doc)
}
