package board

import (
	"context"
	"testing"

	"adhd_task/constant"
	"adhd_task/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplicaFollowsWrites(t *testing.T) {
	env := newTestEnv()
	b := env.newBoard(constant.ModeInattentive)
	ctx := context.Background()

	key := constant.KeyTaskLists(constant.ModeInattentive)
	replica := NewReplica(ctx, env.kv, env.bus,
		key,
		constant.TopicTaskListsUpdated(constant.ModeInattentive))
	defer replica.Close()

	// 初始读取：存储里还没有东西
	assert.Equal(t, int64(0), replica.Rev())

	b.Store.AddTask(ctx, 1, "写下来")

	// 写入方广播后副本已对账到最新版本
	var doc entity.TaskListsDoc
	require.True(t, replica.Snapshot(&doc))
	require.Len(t, doc.Lists, 1)
	assert.Equal(t, "写下来", doc.Lists[0].Tasks[0].Text)
	assert.Greater(t, replica.Rev(), int64(0))
}

func TestReplicaDropsEchoNotifications(t *testing.T) {
	env := newTestEnv()
	b := env.newBoard(constant.ModeInattentive)
	ctx := context.Background()

	key := constant.KeyTaskLists(constant.ModeInattentive)
	replica := NewReplica(ctx, env.kv, env.bus,
		key,
		constant.TopicTaskListsUpdated(constant.ModeInattentive))
	defer replica.Close()

	b.Store.AddTask(ctx, 1, "一次写入")
	rev := replica.Rev()

	// 版本号没变的通知直接丢弃，不替换副本
	assert.False(t, replica.Refresh(ctx))
	assert.Equal(t, rev, replica.Rev())
}

func TestTwoReplicasConverge(t *testing.T) {
	env := newTestEnv()
	b := env.newBoard(constant.ModeCombined)
	ctx := context.Background()

	key := constant.KeyTodayTasks(constant.ModeCombined)
	topic := constant.TopicTodayTasksUpdated(constant.ModeCombined)
	first := NewReplica(ctx, env.kv, env.bus, key, topic)
	second := NewReplica(ctx, env.kv, env.bus, key, topic)
	defer first.Close()
	defer second.Close()

	task := b.Queue.AddTask(ctx, "双视图")
	require.NotNil(t, task)
	b.Queue.ToggleTask(ctx, task.ID)

	var d1, d2 entity.DailyQueueDoc
	require.True(t, first.Snapshot(&d1))
	require.True(t, second.Snapshot(&d2))
	assert.Equal(t, first.Rev(), second.Rev())
	assert.Equal(t, d1, d2)
	assert.True(t, d1.Tasks[0].Done)
}

func TestReplicaFollowsStorageWipe(t *testing.T) {
	env := newTestEnv()
	b := env.newBoard(constant.ModeInattentive)
	ctx := context.Background()

	key := constant.KeyTaskLists(constant.ModeInattentive)
	topic := constant.TopicTaskListsUpdated(constant.ModeInattentive)
	replica := NewReplica(ctx, env.kv, env.bus, key, topic)
	defer replica.Close()

	b.Store.AddTask(ctx, 1, "第一条")
	b.Store.AddTask(ctx, 1, "第二条")
	require.Greater(t, replica.Rev(), int64(1))

	// 清库重建后版本号从头计数，比副本小；不同即替换，副本仍要跟上
	require.NoError(t, env.kv.Clear(ctx))
	b.Store.AddTask(ctx, 1, "重建后")

	assert.Equal(t, int64(1), replica.Rev())
	var doc entity.TaskListsDoc
	require.True(t, replica.Snapshot(&doc))
	require.Len(t, doc.Lists, 1)
	require.Len(t, doc.Lists[0].Tasks, 1)
	assert.Equal(t, "重建后", doc.Lists[0].Tasks[0].Text)
}

func TestReplicaUnsubscribesOnClose(t *testing.T) {
	env := newTestEnv()
	b := env.newBoard(constant.ModeInattentive)
	ctx := context.Background()

	key := constant.KeyTaskLists(constant.ModeInattentive)
	replica := NewReplica(ctx, env.kv, env.bus,
		key,
		constant.TopicTaskListsUpdated(constant.ModeInattentive))

	b.Store.AddTask(ctx, 1, "关注中")
	rev := replica.Rev()

	replica.Close()
	b.Store.AddTask(ctx, 1, "已退订")
	assert.Equal(t, rev, replica.Rev())
}
