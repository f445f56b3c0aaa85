package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Keys of the persisted collections.
const (
	KeyInvoices             = "app_faturas"
	KeyRequests             = "app_solicitacoes"
	KeyClients              = "app_clients"
	KeyCouriers             = "app_entregadores"
	KeyUsers                = "app_users"
	KeyRoles                = "app_cargos"
	KeyCategories           = "app_categories"
	KeyRegions              = "app_regions"
	KeyNeighborhoods        = "app_bairros"
	KeyPaymentMethods       = "app_payment_methods"
	KeyReconciliationMethod = "app_formas_pagamento_conciliacao"
	KeySeenNotifications    = "app_seen_notifications_count"
)

// Backend stores raw JSON documents by key.
//
//go:generate mockgen -source=storage.go -destination=backend_mock.go -package=storage
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Collection is a whole-collection repository over a single key.
// Writes replace the stored array; concurrent writers are last-write-wins.
type Collection[T any] struct {
	backend Backend
	key     string
	seed    func() []T
}

// NewCollection binds a key to a backend. seed provides the value returned
// when nothing is stored yet or the stored document cannot be decoded; it may be nil.
func NewCollection[T any](backend Backend, key string, seed func() []T) *Collection[T] {
	return &Collection[T]{backend: backend, key: key, seed: seed}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.key, err)
	}

	if !ok {
		return c.defaults(ctx)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Error("failed to decode stored collection, using defaults", "key", c.key, "error", err)
		return c.defaults(ctx)
	}

	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}

	if err := c.backend.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", c.key, err)
	}

	return nil
}

// defaults persists the seed so generated ids stay stable across loads.
func (c *Collection[T]) defaults(ctx context.Context) ([]T, error) {
	if c.seed == nil {
		return nil, nil
	}

	items := c.seed()
	if err := c.Save(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

// Memory is an in-process Backend, used by tests and local runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v

	return nil
}
