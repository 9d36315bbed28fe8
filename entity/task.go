package entity

import "adhd_task/constant"

// Task 任务
// id 在所属集合内唯一，由持久化的单调计数器分配，删除后不复用
type Task struct {
	ID   int64  `json:"id"`   // 任务 id
	Text string `json:"text"` // 任务文本（已去除首尾空白）
	Done bool   `json:"done"` // 是否已完成

	// 从任务清单复制到今日队列时携带的来源信息
	SourceListID   int64  `json:"sourceListId,omitempty"`
	SourceListName string `json:"sourceListName,omitempty"`
}

// TaskList 命名任务清单
type TaskList struct {
	ID    int64  `json:"id"`    // 清单 id，在模式内唯一
	Name  string `json:"name"`  // 清单名称
	Tasks []Task `json:"tasks"` // 有序任务序列
}

// Status 清单派生状态，读取时计算，不持久化
// 空清单为 todo，全部完成（且非空）为 done，否则 doing
func (l *TaskList) Status() constant.ListStatus {
	if len(l.Tasks) == 0 {
		return constant.ListStatusTodo
	}
	done := 0
	for _, t := range l.Tasks {
		if t.Done {
			done++
		}
	}
	switch done {
	case 0:
		return constant.ListStatusTodo
	case len(l.Tasks):
		return constant.ListStatusDone
	default:
		return constant.ListStatusDoing
	}
}

// FindTask 按 id 查找任务，返回下标，未找到返回 -1
func (l *TaskList) FindTask(taskID int64) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// TaskListsDoc 某模式任务清单集合的持久化文档
type TaskListsDoc struct {
	Lists      []TaskList `json:"lists"`      // 清单集合，至少保留一个
	NextTaskID int64      `json:"nextTaskId"` // 任务 id 计数器，只增不减
}

// DefaultTaskListsDoc 初始文档：一个空的默认清单
func DefaultTaskListsDoc() *TaskListsDoc {
	return &TaskListsDoc{
		Lists: []TaskList{
			{ID: 1, Name: constant.DefaultListName, Tasks: []Task{}},
		},
		NextTaskID: 1,
	}
}

// FindList 按 id 查找清单，返回下标，未找到返回 -1
func (d *TaskListsDoc) FindList(listID int64) int {
	for i := range d.Lists {
		if d.Lists[i].ID == listID {
			return i
		}
	}
	return -1
}

// NextListID 分配新的清单 id（现有最大 id + 1，空集合为 1）
func (d *TaskListsDoc) NextListID() int64 {
	var max int64
	for i := range d.Lists {
		if d.Lists[i].ID > max {
			max = d.Lists[i].ID
		}
	}
	return max + 1
}
