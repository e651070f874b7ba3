// Package identity provides the opaque, comparable, stringifiable token
// that uniquely identifies a row within an entity type.
package identity

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID wraps a Mongo ObjectID. Its hex form is what the shared-cache key
// layout (model:<coll>:<idHex>:<field>) embeds.
type ID struct {
	oid primitive.ObjectID
}

// New mints a fresh identity.
func New() ID {
	return ID{oid: primitive.NewObjectID()}
}

// Parse decodes a 24-character hex string into an ID.
func Parse(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, fmt.Errorf("identity: parse %q: %w", s, err)
	}
	return ID{oid: oid}, nil
}

// FromObjectID wraps an already-constructed Mongo ObjectID, e.g. one
// returned by InsertOne.
func FromObjectID(oid primitive.ObjectID) ID {
	return ID{oid: oid}
}

// String returns the canonical hex representation.
func (id ID) String() string {
	return id.oid.Hex()
}

// Hex is an alias for String, named for the shared-cache key layout's
// "idHex" component.
func (id ID) Hex() string {
	return id.oid.Hex()
}

// ObjectID exposes the underlying Mongo type for store-layer filters.
func (id ID) ObjectID() primitive.ObjectID {
	return id.oid
}

// IsZero reports whether id is the zero value (never assigned or parsed).
func (id ID) IsZero() bool {
	return id.oid.IsZero()
}
