package kvstore

import (
	"context"
	"sync"
)

// MemoryStore 内存实现，测试和单机默认后端
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Document)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	// 拷贝一份，避免调用方改到存储内部状态
	cp := &Document{Rev: doc.Rev, Data: append([]byte(nil), doc.Data...)}
	return cp, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = &Document{Rev: doc.Rev, Data: append([]byte(nil), doc.Data...)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]*Document)
	return nil
}
