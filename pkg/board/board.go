// Package board 实现单模式的任务核心：任务清单（Task Store）、今日队列
// （Daily Queue）、专注选择，以及多视图间基于广播信号的对账协议。
//
// 持久化为整文档覆盖写，无锁、无事务；并发写入方之间 last-writer-wins。
// 每次本地写入把文档版本号加一并广播主题信号，监听方重读并按版本号对账，
// 系统接受视图间的短暂分歧，直到下一次对账读取
package board

import (
	"context"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"
)

// ArchiveSink 跨天重置丢弃队列时的归档出口，可为空（不归档）
type ArchiveSink interface {
	ArchiveQueue(ctx context.Context, mode constant.Mode, doc *entity.DailyQueueDoc) error
}

// Deps 看板依赖集合，能力全部注入，测试用内存实现替换
type Deps struct {
	KV     kvstore.Store
	Bus    eventbus.Bus
	Clock  clock.Clock
	Ledger *gamify.Ledger

	// Archive 可选归档出口
	Archive ArchiveSink
	// CarryOverIncomplete 跨天重置时是否保留未完成任务（默认 false：破坏性重置）
	CarryOverIncomplete bool
}

// Board 单模式看板门面，把同模式的清单集合和今日队列接到一起
type Board struct {
	Mode  constant.Mode
	Store *Store
	Queue *Queue
}

func New(mode constant.Mode, deps Deps) *Board {
	store := &Store{
		mode:   mode,
		kv:     deps.KV,
		bus:    deps.Bus,
		ledger: deps.Ledger,
	}
	queue := &Queue{
		mode:      mode,
		kv:        deps.KV,
		bus:       deps.Bus,
		clk:       deps.Clock,
		ledger:    deps.Ledger,
		archive:   deps.Archive,
		carryOver: deps.CarryOverIncomplete,
	}
	store.queue = queue
	queue.store = store

	return &Board{Mode: mode, Store: store, Queue: queue}
}

// AddCombinedTask 混合型单输入框的加任务路径：
// 对调用方原子地产生两个效果——今日队列新增一条，同时新建一个
// 包裹同一任务 id 的单任务清单，之后任一侧的勾选按 id 同步到另一侧
func (b *Board) AddCombinedTask(ctx context.Context, text string) *entity.Task {
	if !b.Mode.MirrorsDailyQueue() {
		return b.Queue.AddTask(ctx, text)
	}

	task := b.Queue.AddTask(ctx, text)
	if task == nil {
		return nil
	}
	b.Store.addMirrorList(ctx, *task)
	return task
}
