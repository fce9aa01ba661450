// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrSkipWrite can be returned from an Update function to leave the stored
// value untouched without reporting an error.
var ErrSkipWrite = errors.New("skip write")

// Accessor binds one key to a decoded value of type T.
//
// The encoded value is cached after the first read and shared by every
// consumer of the accessor; each Get decodes a fresh copy, so callers may
// mutate what they receive.
type Accessor[T any] struct {
	key    string
	kv     KV
	defRaw []byte

	// writeMu serializes Update calls
	writeMu sync.Mutex

	mu        sync.Mutex
	loaded    bool
	raw       []byte
	watchers  map[int]func(T)
	nextWatch int
}

func newAccessor[T any](kv KV, key string, def T) *Accessor[T] {
	defRaw, err := json.Marshal(def)
	if err != nil {
		// Zero value is used as the default instead
		slog.Warn("default value not encodable", "key", key, "error", err)
		defRaw = nil
	}
	return &Accessor[T]{
		key:      key,
		kv:       kv,
		defRaw:   defRaw,
		watchers: make(map[int]func(T)),
	}
}

func (a *Accessor[T]) Key() string {
	return a.key
}

// Get returns the current value. An absent or undecodable stored value
// yields the default; only backend failures are returned as errors.
func (a *Accessor[T]) Get(ctx context.Context) (T, error) {
	a.mu.Lock()
	if a.loaded {
		raw := a.raw
		a.mu.Unlock()
		return a.decode(raw), nil
	}
	a.mu.Unlock()

	raw, err := a.read(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	// A Set that finished while we were reading has the newer bytes
	a.mu.Lock()
	if !a.loaded {
		a.loaded = true
		a.raw = raw
	}
	raw = a.raw
	a.mu.Unlock()

	return a.decode(raw), nil
}

// Reload re-reads the backend, replacing the shared value. Watchers are
// notified when the stored bytes changed. Reload waits for a running
// Update to finish.
func (a *Accessor[T]) Reload(ctx context.Context) (T, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	raw, err := a.read(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	a.mu.Lock()
	changed := a.loaded && !bytes.Equal(a.raw, raw)
	a.loaded = true
	a.raw = raw
	watchers := a.snapshotWatchers()
	a.mu.Unlock()

	if changed {
		a.notify(watchers, raw)
	}
	return a.decode(raw), nil
}

func (a *Accessor[T]) read(ctx context.Context) ([]byte, error) {
	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return raw, err
}

// Set encodes and persists v, then updates the shared value.
func (a *Accessor[T]) Set(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", a.key, err)
	}
	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return err
	}

	a.mu.Lock()
	a.loaded = true
	a.raw = raw
	watchers := a.snapshotWatchers()
	a.mu.Unlock()

	a.notify(watchers, raw)
	return nil
}

// Update runs a read-modify-write of the whole value. Updates through the
// same accessor never interleave; a plain Set, or another process writing
// the same backend, still wins over whatever was written before it.
func (a *Accessor[T]) Update(ctx context.Context, fn func(T) (T, error)) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	cur, err := a.Get(ctx)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	if err != nil {
		return err
	}
	return a.Set(ctx, next)
}

// Watch registers fn to receive every new value. The returned function
// removes the registration.
func (a *Accessor[T]) Watch(fn func(T)) (cancel func()) {
	a.mu.Lock()
	id := a.nextWatch
	a.nextWatch++
	a.watchers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.watchers, id)
		a.mu.Unlock()
	}
}

// must be called with a.mu held
func (a *Accessor[T]) snapshotWatchers() []func(T) {
	out := make([]func(T), 0, len(a.watchers))
	for _, fn := range a.watchers {
		out = append(out, fn)
	}
	return out
}

func (a *Accessor[T]) notify(watchers []func(T), raw []byte) {
	for _, fn := range watchers {
		fn(a.decode(raw))
	}
}

func (a *Accessor[T]) decode(raw []byte) T {
	var v T
	// null is treated as absent
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return a.fallback()
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("stored value is corrupt, using default", "key", a.key, "error", err)
		return a.fallback()
	}
	return v
}

func (a *Accessor[T]) fallback() T {
	var v T
	if a.defRaw != nil {
		_ = json.Unmarshal(a.defRaw, &v)
	}
	return v
}

// Registry hands out one shared Accessor per key.
type Registry struct {
	kv    KV
	mu    sync.Mutex
	bound map[string]any
}

func NewRegistry(kv KV) *Registry {
	return &Registry{kv: kv, bound: make(map[string]any)}
}

// Bind returns the accessor for key, creating it on first use. Later calls
// for the same key share it and their default is ignored.
func Bind[T any](r *Registry, key string, def T) (*Accessor[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bound[key]; ok {
		acc, ok := existing.(*Accessor[T])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTypeMismatch, key)
		}
		return acc, nil
	}

	acc := newAccessor(r.kv, key, def)
	r.bound[key] = acc
	return acc, nil
}
