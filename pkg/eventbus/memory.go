package eventbus

import "sync"

// MemoryBus 进程内实现
// 同步派发：Publish 在调用方的事件处理回合内依次执行全部订阅回调，
// 与单线程协作式调度模型一致，测试结果确定
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[string]map[int64]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int64]Handler)}
}

func (b *MemoryBus) Publish(topic string) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	// 锁外执行，订阅回调里允许再次 Publish
	for _, h := range handlers {
		h(topic)
	}
}

func (b *MemoryBus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int64]Handler)
	}
	b.nextID++
	id := b.nextID
	b.subs[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}
