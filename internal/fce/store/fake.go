package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Fake is an in-memory Client used by tests in other packages of this
// module so they can exercise handle/entitymgr logic without a network
// dependency. Exported (not _test.go) so other packages' tests can
// import it.
type Fake struct {
	mu	sync.Mutex
	colls	map[string]map[string]Document // collection -> identity string -> doc
}

// NewFake builds an empty Fake store.
func NewFake() *Fake {
	return &Fake{colls: make(map[string]map[string]Document)}
}

func (f *Fake) collection(name string) map[string]Document {
	c, ok := f.colls[name]
	if !ok {
		c = make(map[string]Document)
		f.colls[name] = c
	}
	return c
}

// matches reports whether doc satisfies every key/value in filter
// (equality only, sufficient for the single-identity and
// single-unique-field lookups the engine issues).
func matches(doc Document, filter Document) bool {
	for k, v := range filter {
		if fmt.Sprint(doc[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

func project(doc Document, fields []string) Document {
	if len(fields) == 0 {
		out := make(Document, len(doc))
		for k, v := range doc {
			out[k] = v
		}
		return out
	}
	out := make(Document, len(fields))
	for _, k := range fields {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (f *Fake) FindOne(_ context.Context, collection string, filter Document, projection []string) (Document, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.collection(collection) {
		if matches(doc, filter) {
			return project(doc, projection), true, nil
		}
	}
	return nil, false, nil
}

func (f *Fake) FindMany(_ context.Context, collection string, filter Document, projection []string, opts FindOptions) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Document
	for _, doc := range f.collection(collection) {
		if matches(doc, filter) {
			out = append(out, project(doc, projection))
		}
	}
	if opts.SortField != "" {
		sort.Slice(out, func(i, j int) bool {
			less := fmt.Sprint(out[i][opts.SortField]) < fmt.Sprint(out[j][opts.SortField])
			if opts.SortAscending {
				return less
			}
			return !less
		})
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *Fake) InsertOne(_ context.Context, collection string, doc Document) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := doc["_id"]
	if !ok || id == nil || id == "" {
		id = uuid.NewString()
	}
	cp := make(Document, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	cp["_id"] = id
	f.collection(collection)[fmt.Sprint(id)] = cp
	return id, nil
}

func (f *Fake) UpdateOne(_ context.Context, collection string, filter Document, update Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.collection(collection)
	for key, doc := range c {
		if !matches(doc, filter) {
			continue
		}
		for k, v := range update.Set {
			doc[k] = v
		}
		for _, k := range update.Unset {
			delete(doc, k)
		}
		c[key] = doc
		return nil
	}
	return nil
}

func (f *Fake) DeleteOne(_ context.Context, collection string, filter Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.collection(collection)
	for key, doc := range c {
		if matches(doc, filter) {
			delete(c, key)
			return nil
		}
	}
	return nil
}

func (f *Fake) Close(_ context.Context) error { return nil }

var _ Client = (*Fake)(nil)
