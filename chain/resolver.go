package chain

import (
	"fmt"
	"sync"
)

// Resolver produces a handler instance for a registered key. The engine
// depends only on this capability, not on how instances are constructed -
// a dependency-injection container is one valid implementation, the
// map-backed Registry below is another.
//
// Resolve returns the instance as any because a key may be bound to either
// a Handler or a ResultHandler; the engine asserts the expected shape at
// the call site.
type Resolver interface {
	Resolve(key string) (any, error)
}

// Registry is a thread-safe, map-backed Resolver. Each Resolve call invokes
// the registered factory, so handlers get a fresh instance per invocation.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() any)}
}

// Register binds key to a factory function. Returns ErrDuplicateKey if the
// key is already taken, so accidental double registration is caught early.
func (r *Registry) Register(key string, factory func() any) error {
	if key == "" {
		return fmt.Errorf("register: key must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("register %q: factory must not be nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("register %q: %w", key, ErrDuplicateKey)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// package-level wiring where a failure is a programming mistake.
func (r *Registry) MustRegister(key string, factory func() any) {
	if err := r.Register(key, factory); err != nil {
		panic(err)
	}
}

// Resolve invokes the factory bound to key. Returns ErrNotRegistered if no
// factory was registered for the key.
func (r *Registry) Resolve(key string) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("handler %q: %w", key, ErrNotRegistered)
	}
	return factory(), nil
}

// Keys returns the registered keys in no particular order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	return keys
}
