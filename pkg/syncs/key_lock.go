package syncs

import "sync"

// KeyLocker provides per-key mutual exclusion.
// See [KeyLock] for an implementation.
type KeyLocker[K comparable] interface {
	Lock(key K)
	Unlock(key K)
}

// KeyLock is a per-key mutex. Independent keys may be held concurrently,
// while holders of the same key are serialized. The zero value is ready to
// use.
type KeyLock[K comparable] struct {
	locks map[K]*sync.Mutex
	mu    sync.Mutex
}

// NewKeyLock creates a new [KeyLock].
func NewKeyLock[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{
		locks: make(map[K]*sync.Mutex),
	}
}

func (kl *KeyLock[K]) getLock(key K) *sync.Mutex {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if kl.locks == nil {
		kl.locks = make(map[K]*sync.Mutex)
	}

	l, ok := kl.locks[key]
	if !ok {
		l = &sync.Mutex{}
		kl.locks[key] = l
	}

	return l
}

// Lock acquires the mutex for key, blocking while it is held elsewhere.
func (kl *KeyLock[K]) Lock(key K) {
	kl.getLock(key).Lock()
}

// Unlock releases the mutex for key.
func (kl *KeyLock[K]) Unlock(key K) {
	kl.getLock(key).Unlock()
}

// Do runs fn while holding the mutex for key and returns its error.
func (kl *KeyLock[K]) Do(key K, fn func() error) error {
	kl.Lock(key)
	defer kl.Unlock(key)

	return fn()
}
