package component

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

// ComponentKind identifies one component store. Kinds are allocated once at
// package init and carry the name used in debug output.
type ComponentKind[T any] struct {
	id ComponentID
}

var registry struct {
	mu    sync.Mutex
	names []string
}

func register(name string) ComponentID {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names))
}

// NewComponentKind allocates an unnamed kind; tests use it for scratch stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: register("")}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) Name() string {
	return NameOf(k.id)
}

// NameOf returns the registered name of id, or "#id" for unnamed kinds.
func NameOf(id ComponentID) string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if id == 0 || int(id) > len(registry.names) {
		return "invalid"
	}
	if n := registry.names[id-1]; n != "" {
		return n
	}
	return fmt.Sprintf("#%d", id)
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: register(name)}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
