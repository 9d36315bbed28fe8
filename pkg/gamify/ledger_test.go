package gamify

import (
	"context"
	"testing"
	"time"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(focusModes map[constant.Mode]bool) (*Ledger, *clock.Fake) {
	kv := kvstore.NewMemoryStore()
	bus := eventbus.NewMemoryBus()
	clk := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return NewLedger(kv, bus, clk, focusModes), clk
}

func TestAwardAndRevokeAreInverse(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()

	l.AwardTask(ctx)
	l.AwardTask(ctx)
	ledger := l.Get(ctx)
	assert.Equal(t, 2*constant.XPPerTask, ledger.TotalXP)
	assert.Equal(t, 2, ledger.TasksCompleted)
	assert.Equal(t, 2, ledger.TasksCompletedToday)

	l.RevokeTask(ctx)
	ledger = l.Get(ctx)
	assert.Equal(t, constant.XPPerTask, ledger.TotalXP)
	assert.Equal(t, 1, ledger.TasksCompleted)
	assert.Equal(t, 1, ledger.TasksCompletedToday)
}

func TestRevokeClampsAtZero(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()

	l.RevokeTask(ctx)
	l.PenalizeRemoved(ctx)

	ledger := l.Get(ctx)
	assert.Equal(t, 0, ledger.TotalXP)
	assert.Equal(t, 0, ledger.TasksCompleted)
	assert.Equal(t, 0, ledger.TasksCompletedToday)
}

func TestLevelDerivation(t *testing.T) {
	cases := []struct {
		totalXP int
		level   int
		toNext  int
	}{
		{0, 1, 100},
		{99, 1, 1},
		{100, 2, 100},
		{250, 3, 50},
	}
	for _, c := range cases {
		s := &entity.StatsLedger{TotalXP: c.totalXP}
		assert.Equal(t, c.level, s.Level(), "totalXP=%d", c.totalXP)
		assert.Equal(t, c.toNext, s.XPToNextLevel(), "totalXP=%d", c.totalXP)
	}
}

func TestTodayCounterResetsAcrossDays(t *testing.T) {
	l, clk := newTestLedger(nil)
	ctx := context.Background()

	l.AwardTask(ctx)
	l.AwardTask(ctx)
	assert.Equal(t, 2, l.Get(ctx).TasksCompletedToday)

	clk.NextDay()

	// 跨天读取：今日计数归零，累计值保留
	ledger := l.Get(ctx)
	assert.Equal(t, 0, ledger.TasksCompletedToday)
	assert.Equal(t, 2, ledger.TasksCompleted)
	assert.Equal(t, 2*constant.XPPerTask, ledger.TotalXP)

	l.AwardTask(ctx)
	assert.Equal(t, 1, l.Get(ctx).TasksCompletedToday)
}

func TestPenalizeOnlyTouchesXP(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()

	l.AwardTask(ctx)
	l.PenalizeRemoved(ctx)

	ledger := l.Get(ctx)
	assert.Equal(t, 0, ledger.TotalXP)
	assert.Equal(t, 1, ledger.TasksCompleted)
	assert.Equal(t, 1, ledger.TasksCompletedToday)
}

func TestAwardFocusGatedByModePolicy(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()

	assert.False(t, l.AwardFocus(ctx, constant.ModeInattentive))
	assert.False(t, l.AwardFocus(ctx, constant.ModeCombined))
	assert.Equal(t, 0, l.Get(ctx).TotalXP)

	assert.True(t, l.AwardFocus(ctx, constant.ModeHyperactive))
	assert.Equal(t, constant.XPPerFocusSession, l.Get(ctx).TotalXP)
}

func TestAwardFocusCustomPolicy(t *testing.T) {
	l, _ := newTestLedger(map[constant.Mode]bool{constant.ModeInattentive: true})
	ctx := context.Background()

	assert.True(t, l.AwardFocus(ctx, constant.ModeInattentive))
	assert.False(t, l.AwardFocus(ctx, constant.ModeHyperactive))
}

func TestListCompletionCreditDedup(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()
	mode := constant.ModeCombined

	require.True(t, l.AwardListCompletion(ctx, mode, 5))
	assert.True(t, l.IsListCredited(ctx, mode, 5))
	assert.Equal(t, constant.XPPerListCompletion, l.Get(ctx).TotalXP)

	// 同一完成周期内只记一次
	assert.False(t, l.AwardListCompletion(ctx, mode, 5))
	assert.Equal(t, constant.XPPerListCompletion, l.Get(ctx).TotalXP)

	// 撤销资格后允许重新记功，已发的 XP 不追回
	l.RevokeListCompletion(ctx, mode, 5)
	assert.False(t, l.IsListCredited(ctx, mode, 5))
	assert.Equal(t, constant.XPPerListCompletion, l.Get(ctx).TotalXP)

	require.True(t, l.AwardListCompletion(ctx, mode, 5))
	assert.Equal(t, 2*constant.XPPerListCompletion, l.Get(ctx).TotalXP)
}

func TestListCompletionCreditsScopedByMode(t *testing.T) {
	l, _ := newTestLedger(nil)
	ctx := context.Background()

	require.True(t, l.AwardListCompletion(ctx, constant.ModeCombined, 5))
	assert.False(t, l.IsListCredited(ctx, constant.ModeInattentive, 5))
}
