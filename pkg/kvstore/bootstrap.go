package kvstore

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// EnsureSchema 启动时的版本标记检查
// 存储内的版本与当前版本不一致（含缺失且存储非空的情况）时整体清空后写入新标记，
// 返回是否发生了清空
func EnsureSchema(ctx context.Context, s Store, versionKey, version string) (bool, error) {
	doc, err := s.Get(ctx, versionKey)
	if err != nil {
		return false, err
	}

	var stored string
	if doc != nil {
		if err := json.Unmarshal(doc.Data, &stored); err != nil {
			log.Warnf("kvstore: malformed schema marker, forcing wipe: %v", err)
		}
	}

	if stored == version {
		return false, nil
	}

	log.Infof("kvstore: schema version changed (%q -> %q), wiping storage", stored, version)
	if err := s.Clear(ctx); err != nil {
		return false, err
	}

	data, err := json.Marshal(version)
	if err != nil {
		return true, err
	}
	if err := s.Set(ctx, versionKey, &Document{Rev: 1, Data: data}); err != nil {
		return true, err
	}
	return true, nil
}
