package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/telemedicina/booking-api/internal/core/ports"
)

type scopedStore struct {
	inner  ports.Store
	prefix string
}

// Scoped returns a Store whose keys are transparently prefixed, giving each
// client its own key space over a shared backend.
func Scoped(store ports.Store, prefix string) ports.Store {
	return &scopedStore{inner: store, prefix: prefix}
}

// ClientStore scopes store to one client id.
func ClientStore(store ports.Store, clientID string) ports.Store {
	return Scoped(store, "client:"+clientID+":")
}

func (s *scopedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// errCorrupt marks a persisted value that exists but does not decode.
var errCorrupt = errors.New("corrupt persisted value")

// loadJSON decodes the value under key into dst. It reports false when the
// key is absent.
func loadJSON(ctx context.Context, store ports.Store, key string, dst any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("load %s: %w: %v", key, errCorrupt, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, store ports.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
