package board

import "adhd_task/entity"

// partitionTasks 稳定分区：未完成的在前、已完成的在后，分区内保持相对顺序
// 这是展示层的排序，不改任务 id
func partitionTasks(tasks []entity.Task) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	for _, t := range tasks {
		if t.Done {
			out = append(out, t)
		}
	}
	return out
}
