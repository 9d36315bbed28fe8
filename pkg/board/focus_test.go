package board

import (
	"context"
	"testing"

	"adhd_task/constant"
	"adhd_task/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusStoreSaveValidatesTimer(t *testing.T) {
	env := newTestEnv()
	fs := NewFocusStore(env.kv, env.bus)
	ctx := context.Background()

	sel := &entity.FocusSelection{
		Tasks:        []entity.FocusTask{{ID: 1, Text: "专注这个"}},
		TimerMinutes: 25,
	}
	require.True(t, fs.Save(ctx, sel))

	loaded := fs.Load(ctx)
	require.NotNil(t, loaded)
	assert.Equal(t, 25, loaded.TimerMinutes)
	require.Len(t, loaded.Tasks, 1)

	// 边界外的时长静默拒绝，已保存的内容不受影响
	assert.False(t, fs.Save(ctx, &entity.FocusSelection{TimerMinutes: 0}))
	assert.False(t, fs.Save(ctx, &entity.FocusSelection{TimerMinutes: 121}))
	assert.False(t, fs.Save(ctx, nil))
	assert.Equal(t, 25, fs.Load(ctx).TimerMinutes)

	// 边界值本身合法
	assert.True(t, fs.Save(ctx, &entity.FocusSelection{TimerMinutes: constant.FocusTimerMinMinutes}))
	assert.True(t, fs.Save(ctx, &entity.FocusSelection{TimerMinutes: constant.FocusTimerMaxMinutes}))
}

func TestFocusStoreLoadWhenEmpty(t *testing.T) {
	env := newTestEnv()
	fs := NewFocusStore(env.kv, env.bus)

	assert.Nil(t, fs.Load(context.Background()))
}

func TestFocusSessionClampsMinutes(t *testing.T) {
	env := newTestEnv()

	s := NewFocusSession(constant.ModeHyperactive, 0, env.ledger)
	assert.Equal(t, constant.FocusTimerDefaultMinutes*60, s.Remaining())

	s = NewFocusSession(constant.ModeHyperactive, 500, env.ledger)
	assert.Equal(t, constant.FocusTimerMaxMinutes*60, s.Remaining())
}

func TestFocusSessionAwardsOnFinish(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	s := NewFocusSession(constant.ModeHyperactive, 25, env.ledger)
	s.mu.Lock()
	s.remaining = 1
	s.running = true
	s.mu.Unlock()

	s.tick()

	assert.True(t, s.Finished())
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, constant.XPPerFocusSession, env.ledger.Get(ctx).TotalXP)
}

func TestFocusSessionNoAwardOutsideHyperactive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	s := NewFocusSession(constant.ModeInattentive, 25, env.ledger)
	s.mu.Lock()
	s.remaining = 1
	s.running = true
	s.mu.Unlock()

	s.tick()

	assert.True(t, s.Finished())
	assert.Equal(t, 0, env.ledger.Get(ctx).TotalXP)
}

func TestFocusSessionRunningState(t *testing.T) {
	env := newTestEnv()

	s := NewFocusSession(constant.ModeHyperactive, 25, env.ledger)
	assert.False(t, s.Running())

	s.Start()
	assert.True(t, s.Running())

	s.Pause()
	assert.False(t, s.Running())

	s.Resume()
	assert.True(t, s.Running())
	s.Pause()
}

func TestFocusSessionPauseStopsTicking(t *testing.T) {
	env := newTestEnv()

	s := NewFocusSession(constant.ModeHyperactive, 25, env.ledger)
	s.Start()
	s.Pause()

	// 暂停后手动跳一拍不生效
	remaining := s.Remaining()
	s.tick()
	assert.Equal(t, remaining, s.Remaining())
	assert.False(t, s.Finished())
}
