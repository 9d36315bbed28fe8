package board

import (
	"context"
	"strings"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

// Store 单模式的命名任务清单集合
// 全部操作同步、本地执行，不会失败：非法输入（空文本、删除最后一个清单）
// 静默拒绝，不向调用方抛错，需要反馈的调用方自行检查前置条件
type Store struct {
	mode   constant.Mode
	kv     kvstore.Store
	bus    eventbus.Bus
	ledger *gamify.Ledger

	// queue 同模式今日队列的回引，混合型镜像和跨集合联动用
	queue *Queue
}

// load 读取清单集合文档，缺失或损坏时回到默认文档（一个空清单）
func (s *Store) load(ctx context.Context) (*entity.TaskListsDoc, int64) {
	doc := &entity.TaskListsDoc{}
	rev, ok, err := kvstore.LoadJSON(ctx, s.kv, constant.KeyTaskLists(s.mode), doc)
	if err != nil {
		log.Errorf("board: load task lists (%s) error: %v", s.mode, err)
		return entity.DefaultTaskListsDoc(), 0
	}
	if !ok || len(doc.Lists) == 0 {
		return entity.DefaultTaskListsDoc(), rev
	}
	if doc.NextTaskID < 1 {
		doc.NextTaskID = 1
	}
	return doc, rev
}

func (s *Store) save(ctx context.Context, doc *entity.TaskListsDoc, rev int64) {
	if _, err := kvstore.SaveJSON(ctx, s.kv, constant.KeyTaskLists(s.mode), rev, doc); err != nil {
		log.Errorf("board: save task lists (%s) error: %v", s.mode, err)
		return
	}
	s.bus.Publish(constant.TopicTaskListsUpdated(s.mode))
	s.bus.Publish(constant.TopicStorageChanged)
}

// Lists 当前清单集合快照
func (s *Store) Lists(ctx context.Context) []entity.TaskList {
	doc, _ := s.load(ctx)
	return doc.Lists
}

// CreateList 新建清单：id 取现有最大值加一，默认名，空任务序列
func (s *Store) CreateList(ctx context.Context) *entity.TaskList {
	doc, rev := s.load(ctx)
	list := entity.TaskList{
		ID:    doc.NextListID(),
		Name:  constant.DefaultListName,
		Tasks: []entity.Task{},
	}
	doc.Lists = append(doc.Lists, list)
	s.save(ctx, doc, rev)
	return &list
}

// DeleteList 删除清单；仅剩一个清单时静默拒绝（至少保留一个）
// 返回是否实际删除
func (s *Store) DeleteList(ctx context.Context, listID int64) bool {
	doc, rev := s.load(ctx)
	if len(doc.Lists) <= 1 {
		return false
	}
	idx := doc.FindList(listID)
	if idx < 0 {
		return false
	}
	doc.Lists = append(doc.Lists[:idx], doc.Lists[idx+1:]...)
	s.save(ctx, doc, rev)
	s.ledger.RevokeListCompletion(ctx, s.mode, listID)
	return true
}

// RenameList 重命名清单；空白名称静默拒绝
func (s *Store) RenameList(ctx context.Context, listID int64, newName string) bool {
	name := strings.TrimSpace(newName)
	if name == constant.EmptyString {
		return false
	}
	doc, rev := s.load(ctx)
	idx := doc.FindList(listID)
	if idx < 0 {
		return false
	}
	doc.Lists[idx].Name = name
	s.save(ctx, doc, rev)
	return true
}

// AddTask 向清单追加任务；空白文本静默拒绝
// 混合型下清单侧的新任务同时镜像进今日队列（同 id），两个集合保持同步
func (s *Store) AddTask(ctx context.Context, listID int64, text string) *entity.Task {
	trimmed := strings.TrimSpace(text)
	if trimmed == constant.EmptyString {
		return nil
	}
	doc, rev := s.load(ctx)
	idx := doc.FindList(listID)
	if idx < 0 {
		return nil
	}
	task := entity.Task{ID: s.allocTaskID(ctx, doc), Text: trimmed, Done: false}
	doc.NextTaskID = task.ID + 1
	doc.Lists[idx].Tasks = append(doc.Lists[idx].Tasks, task)
	s.save(ctx, doc, rev)

	if s.mode.MirrorsDailyQueue() && s.queue != nil {
		mirror := task
		mirror.SourceListID = doc.Lists[idx].ID
		mirror.SourceListName = doc.Lists[idx].Name
		s.queue.AddTasks(ctx, []entity.Task{mirror})
	}
	return &task
}

// allocTaskID 任务 id 在清单集合与今日队列间共用一条序列：
// 分配时取两侧计数器的较大值，任一侧新建的任务不会与另一侧撞号，
// 按 id 的跨集合联动（勾选镜像、级联删除）才有唯一目标
func (s *Store) allocTaskID(ctx context.Context, doc *entity.TaskListsDoc) int64 {
	id := doc.NextTaskID
	if s.queue != nil {
		if next := s.queue.peekNextTaskID(ctx); next > id {
			id = next
		}
	}
	return id
}

// peekNextTaskID 当前计数器值，不分配
func (s *Store) peekNextTaskID(ctx context.Context) int64 {
	doc, _ := s.load(ctx)
	return doc.NextTaskID
}

// ToggleTask 翻转完成状态
// 多动冲动型触发经验值记账；混合型触发今日队列镜像；
// 整清单完成/回退在混合型看板上触发清单记功的增减
func (s *Store) ToggleTask(ctx context.Context, listID, taskID int64) bool {
	doc, rev := s.load(ctx)
	li := doc.FindList(listID)
	if li < 0 {
		return false
	}
	ti := doc.Lists[li].FindTask(taskID)
	if ti < 0 {
		return false
	}

	doc.Lists[li].Tasks[ti].Done = !doc.Lists[li].Tasks[ti].Done
	nowDone := doc.Lists[li].Tasks[ti].Done
	doc.Lists[li].Tasks = partitionTasks(doc.Lists[li].Tasks)
	s.save(ctx, doc, rev)

	if s.mode.AwardsTaskXP() {
		if nowDone {
			s.ledger.AwardTask(ctx)
		} else {
			s.ledger.RevokeTask(ctx)
		}
	}

	s.updateListCredit(ctx, &doc.Lists[li])

	if s.mode.MirrorsDailyQueue() && s.queue != nil {
		s.queue.setDoneByID(ctx, taskID, nowDone)
	}
	return true
}

// RemoveTask 删除任务
// 从未完成过的任务在多动冲动型下扣小额经验值；
// 混合型下清单被删空后清单本身也会被剪除
func (s *Store) RemoveTask(ctx context.Context, listID, taskID int64) bool {
	doc, rev := s.load(ctx)
	li := doc.FindList(listID)
	if li < 0 {
		return false
	}
	ti := doc.Lists[li].FindTask(taskID)
	if ti < 0 {
		return false
	}

	wasDone := doc.Lists[li].Tasks[ti].Done
	doc.Lists[li].Tasks = append(doc.Lists[li].Tasks[:ti], doc.Lists[li].Tasks[ti+1:]...)

	pruned := false
	if len(doc.Lists[li].Tasks) == 0 && s.mode.PrunesEmptyLists() && len(doc.Lists) > 1 {
		s.ledger.RevokeListCompletion(ctx, s.mode, doc.Lists[li].ID)
		doc.Lists = append(doc.Lists[:li], doc.Lists[li+1:]...)
		pruned = true
	}
	s.save(ctx, doc, rev)

	if !wasDone && s.mode.AwardsTaskXP() {
		s.ledger.PenalizeRemoved(ctx)
	}
	if !pruned {
		s.updateListCredit(ctx, &doc.Lists[li])
	}
	return true
}

// updateListCredit 按派生状态增减清单记功（仅混合型看板展示清单完成奖励）
func (s *Store) updateListCredit(ctx context.Context, list *entity.TaskList) {
	if !s.mode.MirrorsDailyQueue() {
		return
	}
	switch list.Status() {
	case constant.ListStatusDone:
		s.ledger.AwardListCompletion(ctx, s.mode, list.ID)
	default:
		s.ledger.RevokeListCompletion(ctx, s.mode, list.ID)
	}
}

// addMirrorList 混合型镜像：为今日队列的新任务包一个同 id 的单任务清单
func (s *Store) addMirrorList(ctx context.Context, task entity.Task) {
	doc, rev := s.load(ctx)
	list := entity.TaskList{
		ID:    doc.NextListID(),
		Name:  task.Text,
		Tasks: []entity.Task{task},
	}
	doc.Lists = append(doc.Lists, list)
	if task.ID >= doc.NextTaskID {
		doc.NextTaskID = task.ID + 1
	}
	s.save(ctx, doc, rev)
}

// setDoneByID 按任务 id 设置完成状态，队列到清单的单向联动入口
// 只写状态，不再触发经验值记账（记账已在发起侧完成）
func (s *Store) setDoneByID(ctx context.Context, taskID int64, done bool) {
	doc, rev := s.load(ctx)
	for li := range doc.Lists {
		ti := doc.Lists[li].FindTask(taskID)
		if ti < 0 {
			continue
		}
		if doc.Lists[li].Tasks[ti].Done == done {
			return
		}
		doc.Lists[li].Tasks[ti].Done = done
		doc.Lists[li].Tasks = partitionTasks(doc.Lists[li].Tasks)
		s.save(ctx, doc, rev)
		s.updateListCredit(ctx, &doc.Lists[li])
		return
	}
}

// removeByID 按任务 id 级联删除，队列删除路径的联动入口
// 所属清单被删空时剪除清单（保留最后一个清单的约束仍然生效）
func (s *Store) removeByID(ctx context.Context, taskID int64) {
	doc, rev := s.load(ctx)
	for li := range doc.Lists {
		ti := doc.Lists[li].FindTask(taskID)
		if ti < 0 {
			continue
		}
		doc.Lists[li].Tasks = append(doc.Lists[li].Tasks[:ti], doc.Lists[li].Tasks[ti+1:]...)
		if len(doc.Lists[li].Tasks) == 0 && len(doc.Lists) > 1 {
			s.ledger.RevokeListCompletion(ctx, s.mode, doc.Lists[li].ID)
			doc.Lists = append(doc.Lists[:li], doc.Lists[li+1:]...)
		}
		s.save(ctx, doc, rev)
		return
	}
}
