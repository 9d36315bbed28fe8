package eventbus

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// RedisBus redis pub/sub 实现，跨进程（相当于跨标签页）传播信号
// 本地订阅者同样通过 redis 回环收到消息，派发语义与 MemoryBus 一致
type RedisBus struct {
	client  *redis.Client
	channel string
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	nextID int64
	subs   map[string]map[int64]Handler
}

const defaultChannel = "adhd:signals"

func NewRedisBus(client *redis.Client) *RedisBus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &RedisBus{
		client:  client,
		channel: defaultChannel,
		ctx:     ctx,
		cancel:  cancel,
		subs:    make(map[string]map[int64]Handler),
	}
	go b.receive()
	return b
}

// receive 常驻接收协程，消息体即主题名
func (b *RedisBus) receive() {
	pubsub := b.client.Subscribe(b.ctx, b.channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Warnf("eventbus: close pubsub error: %v", err)
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.dispatch(msg.Payload)
		}
	}
}

func (b *RedisBus) dispatch(topic string) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(topic)
	}
}

func (b *RedisBus) Publish(topic string) {
	if err := b.client.Publish(b.ctx, b.channel, topic).Err(); err != nil {
		log.Errorf("eventbus: publish %s error: %v", topic, err)
	}
}

func (b *RedisBus) Subscribe(topic string, h Handler) func() {
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

// Close 停止接收协程
func (b *RedisBus) Close() {
	b.cancel()
}
