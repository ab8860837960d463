package cart

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoSnapshot is returned by Snapshots.Load when no snapshot exists for
// the key.
var ErrNoSnapshot = errors.New("no cart snapshot")

// Snapshots is the durable key-value slot a cart persists into. Writes
// are last-write-wins; two sessions sharing a key race on it.
type Snapshots interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Store keeps one cart per key, persisting the full snapshot after every
// mutation.
type Store struct {
	snaps Snapshots
}

func NewStore(snaps Snapshots) *Store {
	return &Store{snaps: snaps}
}

// Get loads and parses the snapshot for key, falling back to an empty
// cart on absence or parse failure.
func (s *Store) Get(ctx context.Context, key string) Cart {
	data, err := s.snaps.Load(ctx, key)
	if err != nil {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}
	}
	return c
}

// Dispatch applies an intent to the cart under key and persists the
// result.
func (s *Store) Dispatch(ctx context.Context, key string, in Intent) (Cart, error) {
	c := Apply(s.Get(ctx, key), in)
	data, err := json.Marshal(c)
	if err != nil {
		return c, err
	}
	if err := s.snaps.Save(ctx, key, data); err != nil {
		return c, err
	}
	return c, nil
}

// Clear drops the snapshot for key. Used on successful order placement.
func (s *Store) Clear(ctx context.Context, key string) error {
	return s.snaps.Delete(ctx, key)
}
