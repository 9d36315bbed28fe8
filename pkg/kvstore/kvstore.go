// Package kvstore 提供按键读写整份 JSON 文档的存储能力
// 每个键保存一个 {rev, data} 信封：rev 是只增的版本号，
// 监听方比较版本号（而不是深比较内容）决定是否对账
package kvstore

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// Document 单键存储信封
type Document struct {
	Rev  int64           `json:"rev"`  // 版本号，每次本地写入加一
	Data json.RawMessage `json:"data"` // 文档内容
}

// Store 键值存储接口
// 所有写入为全文档覆盖（last-writer-wins），不提供锁或乐观并发控制
type Store interface {
	// Get 读取键，键不存在时返回 (nil, nil)
	Get(ctx context.Context, key string) (*Document, error)
	// Set 全量覆盖写入
	Set(ctx context.Context, key string, doc *Document) error
	// Delete 删除键，键不存在时不报错
	Delete(ctx context.Context, key string) error
	// Clear 清空全部键（版本升级时的存储重建用）
	Clear(ctx context.Context) error
}

// LoadJSON 读取键并反序列化到 v
// 返回当前版本号和是否命中；持久化内容损坏时按不存在处理，只记日志不上抛
func LoadJSON(ctx context.Context, s Store, key string, v interface{}) (rev int64, ok bool, err error) {
	doc, err := s.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if doc == nil {
		return 0, false, nil
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		log.Warnf("kvstore: malformed document at key %s, treating as absent: %v", key, err)
		return 0, false, nil
	}
	return doc.Rev, true, nil
}

// SaveJSON 序列化 v 并以 rev+1 写入，返回新版本号
func SaveJSON(ctx context.Context, s Store, key string, rev int64, v interface{}) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return rev, err
	}
	next := rev + 1
	if err := s.Set(ctx, key, &Document{Rev: next, Data: data}); err != nil {
		return rev, err
	}
	return next, nil
}
