// Package handle implements the Entity Handle: the per-(entity type,
// identity) object that mediates read-through/write-through access
// across the local cache, shared cache, and authoritative store.
package handle

import (
	"context"

	"go.uber.org/zap"

	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/localcache"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
	"github.com/bugielektrik/fieldcache/pkg/log"
)

// Handle is bound to exactly one (entity type, identity) pair. It owns
// the local cache tier and holds references to the shared and
// authoritative tiers, shared across every handle of the same type.
//
// The identity field is persisted in the authoritative store under its
// hex string form (identity.ID.Hex), not as a store-native type, so
// filter construction is identical across the fake, Mongo, and the
// shared-cache key layout (see DESIGN.md, Open Questions).
type Handle struct {
	entityName	string
	schema		*schema.Schema
	id		identity.ID

	local		*localcache.Cache
	shared		sharedcache.Client
	store		store.Client
	sharedTTL	int

	metrics *metrics.Recorder
}

// New constructs a Handle. Called only by instancemgr, which hands out
// the same *Handle for repeat lookups of one identity, so two callers
// always share local-cache state.
func New(entityName string, s *schema.Schema, id identity.ID, shared sharedcache.Client, st store.Client, sharedTTL int, rec *metrics.Recorder) *Handle {
	return &Handle{
		entityName:	entityName,
		schema:		s,
		id:		id,
		local:		localcache.New(),
		shared:		shared,
		store:		st,
		sharedTTL:	sharedTTL,
		metrics:	rec,
	}
}

// ID returns the identity this handle is bound to.
func (h *Handle) ID() identity.ID { return h.id }

// ClearLocalCache empties this handle's local cache without touching
// the shared cache or authoritative store. Used by instancemgr.Clear
// when purging a type-wide instance registry without re-deleting the
// underlying documents.
func (h *Handle) ClearLocalCache() {
	h.local.Clear("")
}

func (h *Handle) idFilter() store.Document {
	return store.Document{h.schema.IdentityField: h.id.Hex()}
}

func (h *Handle) sharedReady(ctx context.Context) bool {
	return h.shared != nil && h.shared.Ready(ctx)
}

func (h *Handle) logDegraded(ctx context.Context, tier, field string, err error) {
	if h.metrics != nil {
		h.metrics.Degraded(tier, h.entityName)
	}
	log.FromContext(ctx).Warn("fce: tier degraded, treating as miss",
		zap.String("entity", h.entityName),
		zap.String("tier", tier),
		zap.String("field", field),
		zap.String("identity", h.id.Hex()),
		zap.Error(err),
	)
}

func wireString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// GetField resolves a field tier by tier: local, then shared, then store,
// backfilling each higher tier on a lower-tier hit.
func (h *Handle) GetField(ctx context.Context, name string) (any, bool, error) {
	f, err := h.schema.Field(name)
	if err != nil {
		return nil, false, err
	}

	if f.LocalEnabled {
		if v, ok := h.local.Get(name); ok {
			h.metrics.Hit(metrics.TierLocal, h.entityName)
			return v, true, nil
		}
	}

	if f.SharedEnabled && h.sharedReady(ctx) {
		key := h.schema.SharedKey(h.id.Hex(), name)
		raw, ok, err := h.shared.Get(ctx, key)
		if err != nil {
			h.logDegraded(ctx, metrics.TierShared, name, err)
		} else if ok {
			v, convErr := f.SharedFromWire(raw)
			if convErr != nil {
				return nil, false, fceerrors.ErrConverter.Wrap(convErr)
			}
			if f.LocalEnabled {
				h.local.Set(name, v)
			}
			h.metrics.Hit(metrics.TierShared, h.entityName)
			return v, true, nil
		} else {
			h.metrics.Miss(metrics.TierShared, h.entityName)
		}
	}

	projection := []string{h.schema.IdentityField, f.StoreName}
	doc, ok, err := h.store.FindOne(ctx, h.schema.CollectionName, h.idFilter(), projection)
	if err != nil {
		return nil, false, fceerrors.ErrStore.Wrap(err)
	}
	if !ok {
		return nil, false, nil
	}
	raw, present := doc[f.StoreName]
	if !present {
		return nil, false, nil
	}

	v, convErr := f.StoreFromWire(raw)
	if convErr != nil {
		return nil, false, fceerrors.ErrConverter.Wrap(convErr)
	}
	h.metrics.Hit(metrics.TierStore, h.entityName)

	h.backfill(ctx, name, f, v)
	return v, true, nil
}

// backfill writes v into local cache (if enabled) and attempts a
// best-effort shared-cache write (if enabled and the shared cache is
// ready); shared failures are logged, never returned.
func (h *Handle) backfill(ctx context.Context, name string, f schema.FieldDescriptor, v any) {
	if f.LocalEnabled {
		h.local.Set(name, v)
	}
	if f.SharedEnabled && h.sharedReady(ctx) {
		wire, convErr := f.SharedToWire(v)
		if convErr != nil {
			return
		}
		s, ok := wireString(wire)
		if !ok {
			return
		}
		if err := h.shared.SetEX(ctx, h.schema.SharedKey(h.id.Hex(), name), s, h.sharedTTL); err != nil {
			h.logDegraded(ctx, metrics.TierShared, name, err)
		}
	}
}

// GetFields resolves every local-cache hit synchronously, issues one
// shared-cache mget for the rest, then one store findOne with a
// combined projection for whatever is still outstanding.
func (h *Handle) GetFields(ctx context.Context, names []string) (map[string]any, error) {
	result := make(map[string]any, len(names))
	fields := make(map[string]schema.FieldDescriptor, len(names))
	var needed []string

	for _, name := range names {
		f, err := h.schema.Field(name)
		if err != nil {
			return nil, err
		}
		fields[name] = f
		if f.LocalEnabled {
			if v, ok := h.local.Get(name); ok {
				result[name] = v
				h.metrics.Hit(metrics.TierLocal, h.entityName)
				continue
			}
		}
		needed = append(needed, name)
	}
	if len(needed) == 0 {
		return result, nil
	}

	stillNeeded := make(map[string]bool, len(needed))
	for _, n := range needed {
		stillNeeded[n] = true
	}

	if h.sharedReady(ctx) {
		var sharedNames, sharedKeys []string
		for _, n := range needed {
			if fields[n].SharedEnabled {
				sharedNames = append(sharedNames, n)
				sharedKeys = append(sharedKeys, h.schema.SharedKey(h.id.Hex(), n))
			}
		}
		if len(sharedKeys) > 0 {
			entries, err := h.shared.MGet(ctx, sharedKeys)
			if err != nil {
				h.logDegraded(ctx, metrics.TierShared, "<batch>", err)
			} else {
				for i, e := range entries {
					name := sharedNames[i]
					if !e.OK {
						h.metrics.Miss(metrics.TierShared, h.entityName)
						continue
					}
					f := fields[name]
					v, convErr := f.SharedFromWire(e.Value)
					if convErr != nil {
						return nil, fceerrors.ErrConverter.Wrap(convErr)
					}
					result[name] = v
					if f.LocalEnabled {
						h.local.Set(name, v)
					}
					h.metrics.Hit(metrics.TierShared, h.entityName)
					delete(stillNeeded, name)
				}
			}
		}
	}

	if len(stillNeeded) == 0 {
		return result, nil
	}

	projection := []string{h.schema.IdentityField}
	storeNameToLogical := make(map[string]string, len(stillNeeded))
	for n := range stillNeeded {
		f := fields[n]
		projection = append(projection, f.StoreName)
		storeNameToLogical[f.StoreName] = n
	}

	doc, ok, err := h.store.FindOne(ctx, h.schema.CollectionName, h.idFilter(), projection)
	if err != nil {
		return nil, fceerrors.ErrStore.Wrap(err)
	}
	if !ok {
		return result, nil
	}

	for storeName, raw := range doc {
		logical, isField := storeNameToLogical[storeName]
		if !isField {
			continue
		}
		f := fields[logical]
		v, convErr := f.StoreFromWire(raw)
		if convErr != nil {
			return nil, fceerrors.ErrConverter.Wrap(convErr)
		}
		result[logical] = v
		h.metrics.Hit(metrics.TierStore, h.entityName)
		h.backfill(ctx, logical, f, v)
	}
	return result, nil
}

// SetField writes one field through every enabled tier.
func (h *Handle) SetField(ctx context.Context, name string, value any) error {
	f, err := h.schema.Field(name)
	if err != nil {
		return err
	}

	wire, convErr := f.StoreToWire(value)
	if convErr != nil {
		return fceerrors.ErrConverter.Wrap(convErr)
	}
	if err := h.store.UpdateOne(ctx, h.schema.CollectionName, h.idFilter(), store.Update{
		Set: store.Document{f.StoreName: wire},
	}); err != nil {
		return fceerrors.ErrStore.Wrap(err)
	}

	if f.LocalEnabled {
		h.local.Set(name, value)
	}
	if f.SharedEnabled && h.sharedReady(ctx) {
		sharedWire, convErr := f.SharedToWire(value)
		if convErr == nil {
			if s, ok := wireString(sharedWire); ok {
				if err := h.shared.SetEX(ctx, h.schema.SharedKey(h.id.Hex(), name), s, h.sharedTTL); err != nil {
					h.logDegraded(ctx, metrics.TierShared, name, err)
				}
			}
		}
	}
	return nil
}

// SetFields writes several fields in one updateOne with a combined
// $set, then one local-cache write-through and one mset+expire.
func (h *Handle) SetFields(ctx context.Context, values map[string]any) error {
	set := make(store.Document, len(values))
	fields := make(map[string]schema.FieldDescriptor, len(values))
	for name, value := range values {
		f, err := h.schema.Field(name)
		if err != nil {
			return err
		}
		fields[name] = f
		wire, convErr := f.StoreToWire(value)
		if convErr != nil {
			return fceerrors.ErrConverter.Wrap(convErr)
		}
		set[f.StoreName] = wire
	}

	if err := h.store.UpdateOne(ctx, h.schema.CollectionName, h.idFilter(), store.Update{Set: set}); err != nil {
		return fceerrors.ErrStore.Wrap(err)
	}

	sharedBatch := make(map[string]string, len(values))
	for name, value := range values {
		f := fields[name]
		if f.LocalEnabled {
			h.local.Set(name, value)
		}
		if f.SharedEnabled {
			wire, convErr := f.SharedToWire(value)
			if convErr != nil {
				continue
			}
			if s, ok := wireString(wire); ok {
				sharedBatch[h.schema.SharedKey(h.id.Hex(), name)] = s
			}
		}
	}
	if len(sharedBatch) > 0 && h.sharedReady(ctx) {
		if err := h.shared.MSetEX(ctx, sharedBatch, h.sharedTTL); err != nil {
			h.logDegraded(ctx, metrics.TierShared, "<batch>", err)
		}
	}
	return nil
}

// HasField reports whether a value is currently obtainable for name,
// via the same tier order as GetField.
func (h *Handle) HasField(ctx context.Context, name string) (bool, error) {
	_, ok, err := h.GetField(ctx, name)
	return ok, err
}

// Flush removes a field or, when name is empty, the whole handle
// (deleteOne, wildcard shared-key prune, full local clear); a non-empty
// name flushes just that field ($unset, single shared key, local
// delete).
func (h *Handle) Flush(ctx context.Context, name string) error {
	if name == "" {
		if err := h.store.DeleteOne(ctx, h.schema.CollectionName, h.idFilter()); err != nil {
			return fceerrors.ErrStore.Wrap(err)
		}
		if h.shared != nil {
			keys, err := h.shared.Keys(ctx, h.schema.SharedWildcard(h.id.Hex()))
			if err != nil {
				h.logDegraded(ctx, metrics.TierShared, "<wildcard>", err)
			} else if len(keys) > 0 {
				if _, err := h.shared.Del(ctx, keys...); err != nil {
					h.logDegraded(ctx, metrics.TierShared, "<wildcard>", err)
				}
			}
		}
		h.local.Clear("")
		return nil
	}

	f, err := h.schema.Field(name)
	if err != nil {
		return err
	}
	if err := h.store.UpdateOne(ctx, h.schema.CollectionName, h.idFilter(), store.Update{
		Unset: []string{f.StoreName},
	}); err != nil {
		return fceerrors.ErrStore.Wrap(err)
	}
	if h.shared != nil {
		if _, err := h.shared.Del(ctx, h.schema.SharedKey(h.id.Hex(), name)); err != nil {
			h.logDegraded(ctx, metrics.TierShared, name, err)
		}
	}
	h.local.Clear(name)
	return nil
}
