package sharedcache

import (
	"context"
	"path/filepath"
	"sync"
)

// Fake is an in-memory Client used by tests elsewhere in this module so
// they can exercise handle/entitymgr logic without a network dependency.
// It is exported (not _test.go) so other packages' tests can import it.
type Fake struct {
	mu		sync.Mutex
	values		map[string]string
	readyVal	bool
}

// NewFake builds a Fake that reports Ready()=true until SetReady says
// otherwise.
func NewFake() *Fake {
	return &Fake{values: make(map[string]string), readyVal: true}
}

// SetReady flips the readiness probe, simulating the store going down.
func (f *Fake) SetReady(ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readyVal = ready
}

func (f *Fake) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *Fake) MGet(_ context.Context, keys []string) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		v, ok := f.values[k]
		out[i] = Entry{Key: k, Value: v, OK: ok}
	}
	return out, nil
}

func (f *Fake) SetEX(_ context.Context, key, value string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *Fake) MSetEX(_ context.Context, values map[string]string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range values {
		f.values[k] = v
	}
	return nil
}

func (f *Fake) Exists(_ context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	return n, nil
}

func (f *Fake) Del(_ context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return n, nil
}

func (f *Fake) Keys(_ context.Context, pattern string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.values {
		if ok, _ := filepath.Match(pattern, k); ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *Fake) Ready(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readyVal
}

func (f *Fake) Close() error { return nil }

// Has reports whether key is currently stored, for test assertions.
func (f *Fake) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.values[key]
	return ok
}

var _ Client = (*Fake)(nil)
