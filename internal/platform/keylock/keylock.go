// Package keylock serializes mutations per key while still allowing a global
// exclusive gate for consistent snapshots.
//
// Seat and quota mutations lock their institution's key: two mints for the
// same institution can never race the quota check, while mints for different
// institutions proceed in parallel. A matching run (and any cross-institution
// invariant check) takes the exclusive gate, which waits out all in-flight
// mutations and blocks new ones until the snapshot is taken.
package keylock

import "sync"

type Keyed struct {
	gate sync.RWMutex

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutation lock for key and returns the release function.
func (k *Keyed) Lock(key string) func() {
	k.gate.RLock()

	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.gate.RUnlock()
	}
}

// Exclusive blocks until no mutation holds any key, then holds off all
// mutations until the release function is called.
func (k *Keyed) Exclusive() func() {
	k.gate.Lock()
	return k.gate.Unlock
}
