package store

import "sync"

// Memory is an in-memory Store used by tests and dry runs. It can inject a
// one-shot write failure to exercise partial-failure paths.
type Memory struct {
	mu      sync.RWMutex
	docs    map[string]string
	nextErr error
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextErr != nil {
		err := m.nextErr
		m.nextErr = nil
		return err
	}
	m.docs[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextErr != nil {
		err := m.nextErr
		m.nextErr = nil
		return err
	}
	delete(m.docs, key)
	return nil
}

// FailNextWrite makes the next Set or Remove return err, then clears itself.
func (m *Memory) FailNextWrite(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}
