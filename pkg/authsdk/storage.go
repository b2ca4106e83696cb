package authsdk

import "sync"

// Keys a Session persists under.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
	KeyCurrentUser  = "currentUser"
)

// Storage is durable key/value storage for session state. Implementations
// must be safe for concurrent use.
type Storage interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Delete(keys ...string) error
}

// MemoryStorage keeps values for the life of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
