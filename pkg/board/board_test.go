package board

import (
	"context"
	"time"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"
)

// 测试共用的看板组装：内存存储 + 进程内总线 + 假时钟
type testEnv struct {
	kv     *kvstore.MemoryStore
	bus    *eventbus.MemoryBus
	clk    *clock.Fake
	ledger *gamify.Ledger
}

func newTestEnv() *testEnv {
	kv := kvstore.NewMemoryStore()
	bus := eventbus.NewMemoryBus()
	clk := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return &testEnv{
		kv:     kv,
		bus:    bus,
		clk:    clk,
		ledger: gamify.NewLedger(kv, bus, clk, nil),
	}
}

func (e *testEnv) newBoard(mode constant.Mode) *Board {
	return New(mode, Deps{
		KV:     e.kv,
		Bus:    e.bus,
		Clock:  e.clk,
		Ledger: e.ledger,
	})
}

func (e *testEnv) newBoardWith(mode constant.Mode, archive ArchiveSink, carryOver bool) *Board {
	return New(mode, Deps{
		KV:                  e.kv,
		Bus:                 e.bus,
		Clock:               e.clk,
		Ledger:              e.ledger,
		Archive:             archive,
		CarryOverIncomplete: carryOver,
	})
}

// recordingSink 记录归档调用的桩
type recordingSink struct {
	modes []constant.Mode
	docs  []*entity.DailyQueueDoc
}

func (r *recordingSink) ArchiveQueue(_ context.Context, mode constant.Mode, doc *entity.DailyQueueDoc) error {
	r.modes = append(r.modes, mode)
	r.docs = append(r.docs, doc)
	return nil
}
