package save

import (
	"errors"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// ErrNotFound is returned when a property has never been saved.
var ErrNotFound = errors.New("save: not found")

// Storage is the object/property store the game persists into. A
// *gdata.Manager satisfies it.
type Storage interface {
	ObjectPropExists(object, prop string) bool
	LoadObjectProp(object, prop string) ([]byte, error)
	SaveObjectProp(object, prop string, data []byte) error
}

// Open opens the platform data directory for appName. When that fails the
// game keeps running on memory-only storage.
func Open(appName string) Storage {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("save: open %s: %v (using memory storage)", appName, err)
		return NewMemoryStorage()
	}
	return m
}

// MemoryStorage keeps properties for the lifetime of the process.
type MemoryStorage struct {
	mu    sync.Mutex
	props map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{props: make(map[string][]byte)}
}

func memoryKey(object, prop string) string {
	return object + "/" + prop
}

func (m *MemoryStorage) ObjectPropExists(object, prop string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.props[memoryKey(object, prop)]
	return ok
}

func (m *MemoryStorage) LoadObjectProp(object, prop string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.props[memoryKey(object, prop)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStorage) SaveObjectProp(object, prop string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[memoryKey(object, prop)] = append([]byte(nil), data...)
	return nil
}
