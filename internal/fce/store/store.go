// Package store abstracts the authoritative document store sitting
// beneath the shared cache.
package store

import "context"

// Document is one row, keyed by store-level field name. The identity
// field is always present under its own store name.
type Document map[string]any

// Update describes a combined $set/$unset to apply in one call.
type Update struct {
	Set	Document
	Unset	[]string
}

// FindOptions bounds a findMany call.
type FindOptions struct {
	Limit		int64
	SortField	string
	SortAscending	bool
}

// Client is the authoritative-store tier's contract.
type Client interface {
	// FindOne returns one document matching filter, projected to the
	// given store-level field names (the identity field is always
	// included by the caller's projection). ok is false when no
	// document matches.
	FindOne(ctx context.Context, collection string, filter Document, projection []string) (doc Document, ok bool, err error)
	// FindMany returns every document matching filter, projected and
	// bounded by opts.
	FindMany(ctx context.Context, collection string, filter Document, projection []string, opts FindOptions) ([]Document, error)
	// InsertOne inserts doc and returns the store-assigned identity
	// field value (e.g. a Mongo ObjectID).
	InsertOne(ctx context.Context, collection string, doc Document) (any, error)
	// UpdateOne applies update to the first document matching filter.
	UpdateOne(ctx context.Context, collection string, filter Document, update Update) error
	// DeleteOne removes the first document matching filter.
	DeleteOne(ctx context.Context, collection string, filter Document) error
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
