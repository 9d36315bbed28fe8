package board

import (
	"context"
	"encoding/json"
	"sync"

	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

// Replica 某个持久化集合在一个已挂载视图里的内存副本
//
// 对账协议：写入方落盘（版本号加一）后广播主题信号；副本收到信号重读存储，
// 比较版本号决定是否替换内存副本。版本号相同的通知直接丢弃——
// 这一步专门用来切断回声环：A 写入触发 B 刷新，B 不会把未变的内容再写回去
// 重新触发 A。判定是"不同即替换"而不是"更大才替换"：
// 结构版本清库重建后版本号从头计数，副本仍要跟上新数据
type Replica struct {
	kv  kvstore.Store
	bus eventbus.Bus
	key string

	mu     sync.Mutex
	rev    int64
	data   json.RawMessage
	unsubs []func()
}

// NewReplica 建立副本并订阅给定主题，建立时做一次初始读取
func NewReplica(ctx context.Context, kv kvstore.Store, bus eventbus.Bus, key string, topics ...string) *Replica {
	r := &Replica{kv: kv, bus: bus, key: key}
	r.Refresh(ctx)
	for _, topic := range topics {
		unsub := bus.Subscribe(topic, func(string) {
			r.Refresh(context.Background())
		})
		r.unsubs = append(r.unsubs, unsub)
	}
	return r
}

// Refresh 重读存储对账，返回内存副本是否被替换
func (r *Replica) Refresh(ctx context.Context) bool {
	doc, err := r.kv.Get(ctx, r.key)
	if err != nil {
		log.Errorf("board: replica refresh %s error: %v", r.key, err)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if doc == nil {
		if r.rev == 0 && r.data == nil {
			return false
		}
		r.rev = 0
		r.data = nil
		return true
	}
	if doc.Rev == r.rev {
		return false
	}
	r.rev = doc.Rev
	r.data = append([]byte(nil), doc.Data...)
	return true
}

// Rev 当前副本的版本号
func (r *Replica) Rev() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rev
}

// Snapshot 把当前副本反序列化到 v；副本为空时 v 保持不变并返回 false
func (r *Replica) Snapshot(v interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return false
	}
	if err := json.Unmarshal(r.data, v); err != nil {
		log.Warnf("board: replica snapshot %s unmarshal error: %v", r.key, err)
		return false
	}
	return true
}

// Close 取消全部订阅
func (r *Replica) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}
