// Package entitymgr implements the per-entity-type facade: identity
// existence probing, unique-field lookup, creation, and
// type-wide cache flush. Credential verification is entity-specific
// (only the user entity has a password-hash field) and lives in
// internal/entities/user, built on top of this package.
package entitymgr

import (
	"context"
	"fmt"

	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/instancemgr"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
)

// Manager is the per-entity-type facade over identity discovery,
// creation, and flush.
type Manager struct {
	name		string
	schema		*schema.Schema
	instances	*instancemgr.Manager
	shared		sharedcache.Client
	store		store.Client
	sharedTTL	int
}

// New builds a Manager for one entity type, wiring an instancemgr that
// constructs handles bound to shared/store/sharedTTL.
func New(name string, s *schema.Schema, shared sharedcache.Client, st store.Client, sharedTTL int, rec *metrics.Recorder) *Manager {
	m := &Manager{
		name:		name,
		schema:		s,
		shared:		shared,
		store:		st,
		sharedTTL:	sharedTTL,
	}
	m.instances = instancemgr.New(func(id identity.ID) *handle.Handle {
		return handle.New(name, s, id, shared, st, sharedTTL, rec)
	})
	return m
}

// Schema returns the entity type's schema.
func (m *Manager) Schema() *schema.Schema { return m.schema }

// Instances returns the per-type instance registry, for entity-specific
// managers that need to hand out handles directly (e.g. after a
// credential match).
func (m *Manager) Instances() *instancemgr.Manager { return m.instances }

// Store returns the authoritative-store client, for entity-specific
// managers that need a bespoke projection (e.g. credential
// verification fetching a cache-excluded field directly).
func (m *Manager) Store() store.Client { return m.store }

// ExistsByID is a shared-cache-backed boolean probe, falling back to
// an authoritative-store projection of just the identity field on miss
// or when shared is not ready.
func (m *Manager) ExistsByID(ctx context.Context, id identity.ID) (bool, error) {
	key := m.schema.SharedExistsKey(id.Hex())

	if m.shared != nil && m.shared.Ready(ctx) {
		if v, ok, err := m.shared.Get(ctx, key); err == nil && ok {
			return v == "1", nil
		}
	}

	_, ok, err := m.store.FindOne(ctx, m.schema.CollectionName,
		store.Document{m.schema.IdentityField: id.Hex()},
		[]string{m.schema.IdentityField})
	if err != nil {
		return false, fceerrors.ErrStore.Wrap(err)
	}

	if m.shared != nil {
		val := "0"
		if ok {
			val = "1"
		}
		_ = m.shared.SetEX(ctx, key, val, m.sharedTTL)
	}
	return ok, nil
}

// FindByUniqueField resolves an identity by one unique field value: a
// findMany projected to just the identity field, handed to the
// instance manager.
func (m *Manager) FindByUniqueField(ctx context.Context, logicalName string, value any) (*handle.Handle, bool, error) {
	f, err := m.schema.Field(logicalName)
	if err != nil {
		return nil, false, err
	}
	wire, convErr := f.StoreToWire(value)
	if convErr != nil {
		return nil, false, fceerrors.ErrConverter.Wrap(convErr)
	}

	docs, err := m.store.FindMany(ctx, m.schema.CollectionName,
		store.Document{f.StoreName: wire},
		[]string{m.schema.IdentityField},
		store.FindOptions{Limit: 1})
	if err != nil {
		return nil, false, fceerrors.ErrStore.Wrap(err)
	}
	if len(docs) == 0 {
		return nil, false, nil
	}

	id, err := identity.Parse(fmt.Sprint(docs[0][m.schema.IdentityField]))
	if err != nil {
		return nil, false, fmt.Errorf("entitymgr: identity field is not a valid identity: %w", err)
	}
	return m.instances.Create(id), true, nil
}

// Create inserts the already validated and converted document (the
// entity-specific wrappers apply the Validator and Hasher before
// calling this), flushes the type-wide shared cache so no stale
// negative exists-probe survives, and hands out a Handle for the new
// identity.
//
// doc must already carry the identity field set to id.Hex().
func (m *Manager) Create(ctx context.Context, id identity.ID, doc store.Document) (*handle.Handle, error) {
	if _, err := m.store.InsertOne(ctx, m.schema.CollectionName, doc); err != nil {
		return nil, fceerrors.ErrStore.Wrap(err)
	}

	if m.shared != nil {
		if keys, err := m.shared.Keys(ctx, m.schema.SharedTypeWildcard()); err == nil && len(keys) > 0 {
			_, _ = m.shared.Del(ctx, keys...)
		}
	}

	return m.instances.Create(id), nil
}

// Flush runs a wildcard delete over every
// shared-cache key for this collection, then InstanceManager.Clear(true)
// so every live handle's local cache is emptied too.
func (m *Manager) Flush(ctx context.Context) error {
	if m.shared != nil {
		keys, err := m.shared.Keys(ctx, m.schema.SharedTypeWildcard())
		if err != nil {
			return fceerrors.ErrStore.Wrap(err)
		}
		if len(keys) > 0 {
			if _, err := m.shared.Del(ctx, keys...); err != nil {
				return fceerrors.ErrStore.Wrap(err)
			}
		}
	}
	m.instances.Clear(true)
	return nil
}
