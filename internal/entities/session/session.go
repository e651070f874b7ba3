// Package session declares the Session entity's schema. Its ipAddress
// field opts out of shared caching: session IP is privacy-sensitive
// and is read from the authoritative store on every cold lookup.
package session

import (
	"context"
	"time"

	"github.com/bugielektrik/fieldcache/internal/fce/entitymgr"
	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	"github.com/bugielektrik/fieldcache/pkg/timeutil"
)

const (
	FieldUserID	= "userID"
	FieldExpiresAt	= "expiresAt"
	FieldIPAddress	= "ipAddress"
)

const collectionName = "session"

// NewSchema builds the Session entity's Field Schema.
func NewSchema() (*schema.Schema, error) {
	return schema.New(collectionName, "_id",
		schema.NewFieldDescriptor(FieldUserID, "user_id"),
		schema.NewFieldDescriptor(FieldExpiresAt, "expires_at").WithShared(schema.TimeISO8601Converter()).WithStore(schema.TimeStoreConverter()),
		fieldIPAddress(),
	)
}

// fieldIPAddress opts out of shared caching only (local caching is
// still allowed; it is one live handle's own in-process view).
func fieldIPAddress() schema.FieldDescriptor {
	d := schema.NewFieldDescriptor(FieldIPAddress, "ip_address")
	d.SharedEnabled = false
	return d
}

// Manager is the Session entity's facade.
type Manager struct {
	*entitymgr.Manager
}

// NewManager wires a Session entity manager against the given tiers.
func NewManager(shared sharedcache.Client, st store.Client, sharedTTL int, rec *metrics.Recorder) (*Manager, error) {
	s, err := NewSchema()
	if err != nil {
		return nil, err
	}
	return &Manager{Manager: entitymgr.New(collectionName, s, shared, st, sharedTTL, rec)}, nil
}

// CreateInput is the set of fields required to open a new session.
type CreateInput struct {
	UserID		identity.ID
	TTL		time.Duration
	IPAddress	string
}

// Create inserts a new session document expiring TTL from now.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*handle.Handle, error) {
	id := identity.New()
	doc := store.Document{
		"_id":		id.Hex(),
		"user_id":	in.UserID.Hex(),
		"expires_at":	timeutil.Now().Add(in.TTL),
		"ip_address":	in.IPAddress,
	}
	return m.Manager.Create(ctx, id, doc)
}

// IsExpired reads back a session's expiresAt field and reports whether
// it has already elapsed.
func (m *Manager) IsExpired(ctx context.Context, h *handle.Handle) (bool, error) {
	v, ok, err := h.GetField(ctx, FieldExpiresAt)
	if err != nil || !ok {
		return true, err
	}
	expiresAt, ok := v.(time.Time)
	if !ok {
		return true, nil
	}
	return timeutil.IsExpired(expiresAt), nil
}
