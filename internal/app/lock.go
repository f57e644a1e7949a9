package app

import (
	"context"
	"sync"
)

// Locker serializes the availability-check-then-create section per resource.
// Two concurrent admissions for the same resource would otherwise race
// between the candidate read and the create write.
type Locker interface {
	Lock(ctx context.Context, resourceID string) (unlock func(), err error)
}

// KeyedMutex is the in-process Locker: one single-slot channel per resource
// id, so a waiter can give up when its request context is cancelled. Entries
// are kept for the life of the process; the resource-id cardinality of a
// single instance stays small enough that eviction has not been worth it.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]chan struct{})}
}

func (k *KeyedMutex) Lock(ctx context.Context, resourceID string) (func(), error) {
	k.mu.Lock()
	ch, ok := k.locks[resourceID]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[resourceID] = ch
	}
	k.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return func() { <-ch }, nil
}
