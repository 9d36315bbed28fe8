package board

import (
	"context"
	"strings"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

// Queue 单模式的今日队列
// 持久化文档 {date, tasks}，日期与当天不一致时加载即重置为空队列并立即落盘
// （破坏性重置；可配置保留未完成任务，被丢弃的非空队列可选归档入库）
type Queue struct {
	mode   constant.Mode
	kv     kvstore.Store
	bus    eventbus.Bus
	clk    clock.Clock
	ledger *gamify.Ledger

	archive   ArchiveSink
	carryOver bool

	// store 同模式清单集合的回引，按 id 的单向联动用
	store *Store
}

// Load 读取今日队列，套用跨天重置律：
// 持久化日期 ≠ 当天时，无论旧内容是什么，结果都是 {date: 今天, tasks: []}
func (q *Queue) Load(ctx context.Context) *entity.DailyQueueDoc {
	doc, rev := q.loadRaw(ctx)
	today := q.clk.TodayKey()
	if doc.Date == today {
		return doc
	}

	fresh := entity.EmptyDailyQueueDoc(today)
	fresh.NextTaskID = doc.NextTaskID
	if fresh.NextTaskID < 1 {
		fresh.NextTaskID = 1
	}

	if len(doc.Tasks) > 0 {
		q.archiveDiscarded(ctx, doc)
		if q.carryOver {
			for _, t := range doc.Tasks {
				if !t.Done {
					fresh.Tasks = append(fresh.Tasks, t)
				}
			}
		}
	}

	q.save(ctx, fresh, rev)
	return fresh
}

func (q *Queue) loadRaw(ctx context.Context) (*entity.DailyQueueDoc, int64) {
	doc := &entity.DailyQueueDoc{}
	rev, ok, err := kvstore.LoadJSON(ctx, q.kv, constant.KeyTodayTasks(q.mode), doc)
	if err != nil {
		log.Errorf("board: load daily queue (%s) error: %v", q.mode, err)
		return entity.EmptyDailyQueueDoc(q.clk.TodayKey()), 0
	}
	if !ok {
		return entity.EmptyDailyQueueDoc(q.clk.TodayKey()), rev
	}
	if doc.Tasks == nil {
		doc.Tasks = []entity.Task{}
	}
	if doc.NextTaskID < 1 {
		doc.NextTaskID = 1
	}
	return doc, rev
}

func (q *Queue) save(ctx context.Context, doc *entity.DailyQueueDoc, rev int64) {
	if _, err := kvstore.SaveJSON(ctx, q.kv, constant.KeyTodayTasks(q.mode), rev, doc); err != nil {
		log.Errorf("board: save daily queue (%s) error: %v", q.mode, err)
		return
	}
	q.bus.Publish(constant.TopicTodayTasksUpdated(q.mode))
	q.bus.Publish(constant.TopicStorageChanged)
}

// archiveDiscarded 把跨天要丢弃的队列送入归档出口，尽力而为，失败只记日志
func (q *Queue) archiveDiscarded(ctx context.Context, doc *entity.DailyQueueDoc) {
	if q.archive == nil {
		return
	}
	if err := q.archive.ArchiveQueue(ctx, q.mode, doc); err != nil {
		log.Warnf("board: archive discarded queue (%s, %s) error: %v", q.mode, doc.Date, err)
	}
}

// loadToday 跨天检查后的读-改-写入口
func (q *Queue) loadToday(ctx context.Context) (*entity.DailyQueueDoc, int64) {
	q.Load(ctx)
	return q.loadRaw(ctx)
}

// AddTask 追加任务；空白文本静默拒绝
// 任务 id 与同模式清单集合共用一条序列（见 Store.allocTaskID）
func (q *Queue) AddTask(ctx context.Context, text string) *entity.Task {
	trimmed := strings.TrimSpace(text)
	if trimmed == constant.EmptyString {
		return nil
	}
	doc, rev := q.loadToday(ctx)
	id := doc.NextTaskID
	if q.store != nil {
		if next := q.store.peekNextTaskID(ctx); next > id {
			id = next
		}
	}
	task := entity.Task{ID: id, Text: trimmed, Done: false}
	doc.NextTaskID = id + 1
	doc.Tasks = append(doc.Tasks, task)
	q.save(ctx, doc, rev)
	return &task
}

// peekNextTaskID 当前计数器值，不分配
func (q *Queue) peekNextTaskID(ctx context.Context) int64 {
	doc, _ := q.loadRaw(ctx)
	return doc.NextTaskID
}

// AddTasks 批量加入（“Add Tasks” 选择器从清单复制的路径）
// 保留来源任务 id 与 provenance 字段，id 已在队列中的条目跳过；
// 返回实际加入的条数
func (q *Queue) AddTasks(ctx context.Context, tasks []entity.Task) int {
	doc, rev := q.loadToday(ctx)
	added := 0
	for _, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == constant.EmptyString {
			continue
		}
		if doc.FindTask(t.ID) >= 0 {
			continue
		}
		doc.Tasks = append(doc.Tasks, t)
		if t.ID >= doc.NextTaskID {
			doc.NextTaskID = t.ID + 1
		}
		added++
	}
	if added > 0 {
		q.save(ctx, doc, rev)
	}
	return added
}

// ToggleTask 翻转完成状态，稳定分区排序
// 同 id 任务存在于清单集合时单向联动过去（赋值，不是双向事务）
func (q *Queue) ToggleTask(ctx context.Context, taskID int64) bool {
	doc, rev := q.loadToday(ctx)
	ti := doc.FindTask(taskID)
	if ti < 0 {
		return false
	}
	doc.Tasks[ti].Done = !doc.Tasks[ti].Done
	nowDone := doc.Tasks[ti].Done
	doc.Tasks = partitionTasks(doc.Tasks)
	q.save(ctx, doc, rev)

	if q.mode.AwardsTaskXP() {
		if nowDone {
			q.ledger.AwardTask(ctx)
		} else {
			q.ledger.RevokeTask(ctx)
		}
	}

	if q.store != nil {
		q.store.setDoneByID(ctx, taskID, nowDone)
	}
	return true
}

// RemoveTask 删除任务，清单集合中的同 id 任务级联删除
func (q *Queue) RemoveTask(ctx context.Context, taskID int64) bool {
	doc, rev := q.loadToday(ctx)
	ti := doc.FindTask(taskID)
	if ti < 0 {
		return false
	}
	doc.Tasks = append(doc.Tasks[:ti], doc.Tasks[ti+1:]...)
	q.save(ctx, doc, rev)

	if q.store != nil {
		q.store.removeByID(ctx, taskID)
	}
	return true
}

// setDoneByID 清单到队列的镜像入口（混合型），只写状态不再联动回去
func (q *Queue) setDoneByID(ctx context.Context, taskID int64, done bool) {
	doc, rev := q.loadToday(ctx)
	ti := doc.FindTask(taskID)
	if ti < 0 {
		return
	}
	if doc.Tasks[ti].Done == done {
		return
	}
	doc.Tasks[ti].Done = done
	doc.Tasks = partitionTasks(doc.Tasks)
	q.save(ctx, doc, rev)
}
