// Package gamify 实现经验值账本：XP、等级与完成计数
// 账本为全局单槽位持久化记录；等级始终由 totalXP 推导，从不单独存储
package gamify

import (
	"context"
	"sync"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

// Ledger 经验值账本服务
type Ledger struct {
	kv  kvstore.Store
	bus eventbus.Bus
	clk clock.Clock

	// focusXPModes 专注模式记经验值的模式集合（产品上目前只有多动冲动型，按策略配置保留）
	focusXPModes map[constant.Mode]bool

	mu sync.Mutex
}

// DefaultFocusXPModes 默认仅多动冲动型的专注会话记经验值
func DefaultFocusXPModes() map[constant.Mode]bool {
	return map[constant.Mode]bool{constant.ModeHyperactive: true}
}

func NewLedger(kv kvstore.Store, bus eventbus.Bus, clk clock.Clock, focusXPModes map[constant.Mode]bool) *Ledger {
	if focusXPModes == nil {
		focusXPModes = DefaultFocusXPModes()
	}
	return &Ledger{kv: kv, bus: bus, clk: clk, focusXPModes: focusXPModes}
}

// load 读取账本并套用跨天归零：lastDate 与当天不一致时今日计数清零
// 损坏或缺失的持久化内容按零值账本处理
func (l *Ledger) load(ctx context.Context) (*entity.StatsLedger, int64) {
	ledger := &entity.StatsLedger{}
	rev, ok, err := kvstore.LoadJSON(ctx, l.kv, constant.KeyXPLedger, ledger)
	if err != nil {
		log.Errorf("gamify: load ledger error: %v", err)
		return &entity.StatsLedger{}, 0
	}
	if !ok {
		return &entity.StatsLedger{}, 0
	}
	if ledger.LastDate != l.clk.TodayKey() {
		ledger.TasksCompletedToday = 0
	}
	return ledger, rev
}

func (l *Ledger) save(ctx context.Context, ledger *entity.StatsLedger, rev int64) {
	if _, err := kvstore.SaveJSON(ctx, l.kv, constant.KeyXPLedger, rev, ledger); err != nil {
		log.Errorf("gamify: save ledger error: %v", err)
		return
	}
	l.bus.Publish(constant.TopicStatsUpdated)
	l.bus.Publish(constant.TopicStorageChanged)
}

// Get 当前账本快照（含跨天归零）
func (l *Ledger) Get(ctx context.Context) *entity.StatsLedger {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, _ := l.load(ctx)
	return ledger
}

// AwardTask 完成一个任务记账
func (l *Ledger) AwardTask(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.clk.TodayKey()
	ledger, rev := l.load(ctx)
	ledger.TotalXP += constant.XPPerTask
	ledger.TasksCompleted++
	if ledger.LastDate == today {
		ledger.TasksCompletedToday++
	} else {
		ledger.TasksCompletedToday = 1
	}
	ledger.LastDate = today
	l.save(ctx, ledger, rev)
}

// RevokeTask 撤销一次任务完成记账，各计数器钳制在 0
func (l *Ledger) RevokeTask(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.clk.TodayKey()
	ledger, rev := l.load(ctx)
	ledger.TotalXP = clampZero(ledger.TotalXP - constant.XPPerTask)
	ledger.TasksCompleted = clampZero(ledger.TasksCompleted - 1)
	if ledger.LastDate == today {
		ledger.TasksCompletedToday = clampZero(ledger.TasksCompletedToday - 1)
	} else {
		ledger.TasksCompletedToday = 0
	}
	ledger.LastDate = today
	l.save(ctx, ledger, rev)
}

// PenalizeRemoved 删除从未完成过的任务的小额惩罚，只扣 XP 不动计数器
func (l *Ledger) PenalizeRemoved(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, rev := l.load(ctx)
	ledger.TotalXP = clampZero(ledger.TotalXP - constant.XPPenaltyUncompleted)
	l.save(ctx, ledger, rev)
}

// AwardFocus 专注会话记账，按模式策略决定是否生效，返回是否生效
func (l *Ledger) AwardFocus(ctx context.Context, mode constant.Mode) bool {
	if !l.focusXPModes[mode] {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ledger, rev := l.load(ctx)
	ledger.TotalXP += constant.XPPerFocusSession
	l.save(ctx, ledger, rev)
	return true
}

// AwardListCompletion 整清单完成一次性记功
// 同一清单的一次完成周期只记一次，通过持久化的已记功 id 集合去重；
// 返回是否实际记账
func (l *Ledger) AwardListCompletion(ctx context.Context, mode constant.Mode, listID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	credited, creditRev := l.loadCredits(ctx, mode)
	if credited[listID] {
		return false
	}
	credited[listID] = true
	l.saveCredits(ctx, mode, credited, creditRev)

	ledger, rev := l.load(ctx)
	ledger.TotalXP += constant.XPPerListCompletion
	l.save(ctx, ledger, rev)
	return true
}

// RevokeListCompletion 清单回到未完成状态时撤销记功资格，允许未来重新记功
// 只移除 id，不回收已发放的 XP
func (l *Ledger) RevokeListCompletion(ctx context.Context, mode constant.Mode, listID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	credited, rev := l.loadCredits(ctx, mode)
	if !credited[listID] {
		return
	}
	delete(credited, listID)
	l.saveCredits(ctx, mode, credited, rev)
}

// IsListCredited 清单当前是否处于已记功状态
func (l *Ledger) IsListCredited(ctx context.Context, mode constant.Mode, listID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	credited, _ := l.loadCredits(ctx, mode)
	return credited[listID]
}

func (l *Ledger) loadCredits(ctx context.Context, mode constant.Mode) (map[int64]bool, int64) {
	var ids []int64
	rev, _, err := kvstore.LoadJSON(ctx, l.kv, constant.KeyCompletedLists(mode), &ids)
	if err != nil {
		log.Errorf("gamify: load completed-list set error: %v", err)
	}
	credited := make(map[int64]bool, len(ids))
	for _, id := range ids {
		credited[id] = true
	}
	return credited, rev
}

func (l *Ledger) saveCredits(ctx context.Context, mode constant.Mode, credited map[int64]bool, rev int64) {
	ids := make([]int64, 0, len(credited))
	for id := range credited {
		ids = append(ids, id)
	}
	if _, err := kvstore.SaveJSON(ctx, l.kv, constant.KeyCompletedLists(mode), rev, ids); err != nil {
		log.Errorf("gamify: save completed-list set error: %v", err)
	}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
