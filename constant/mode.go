package constant

// =============================================
// ADHD 模式常量
// =============================================

// Mode ADHD 模式类型（注意缺陷型/多动冲动型/混合型）
type Mode string

const (
	// ModeInattentive 注意缺陷型
	ModeInattentive Mode = "inattentive"
	// ModeHyperactive 多动冲动型
	ModeHyperactive Mode = "hyperactive"
	// ModeCombined 混合型
	ModeCombined Mode = "combined"
)

// AllModes 全部模式列表
var AllModes = []Mode{ModeInattentive, ModeHyperactive, ModeCombined}

// String 返回模式的字符串值
func (m Mode) String() string {
	return string(m)
}

// IsValid 检查模式是否有效
func (m Mode) IsValid() bool {
	switch m {
	case ModeInattentive, ModeHyperactive, ModeCombined:
		return true
	}
	return false
}

// ParseMode 解析模式字符串，非法输入回退到混合型
func ParseMode(s string) Mode {
	m := Mode(s)
	if !m.IsValid() {
		return ModeCombined
	}
	return m
}

// MirrorsDailyQueue 任务清单与今日队列是否双向镜像（仅混合型）
func (m Mode) MirrorsDailyQueue() bool {
	return m == ModeCombined
}

// AwardsTaskXP 完成/撤销任务是否计入经验值（仅多动冲动型）
func (m Mode) AwardsTaskXP() bool {
	return m == ModeHyperactive
}

// PrunesEmptyLists 任务清单变空后是否自动删除清单（仅混合型）
func (m Mode) PrunesEmptyLists() bool {
	return m == ModeCombined
}

// =============================================
// 任务清单派生状态常量
// =============================================

// ListStatus 任务清单派生状态（不持久化，读取时计算）
type ListStatus string

const (
	// ListStatusTodo 没有任何已完成任务（含空清单）
	ListStatusTodo ListStatus = "todo"
	// ListStatusDoing 部分任务已完成
	ListStatusDoing ListStatus = "doing"
	// ListStatusDone 非空且全部任务已完成
	ListStatusDone ListStatus = "done"
)

// String 返回状态的字符串值
func (s ListStatus) String() string {
	return string(s)
}

// =============================================
// 分类结果置信度常量
// =============================================

// Confidence 分类结果置信度
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IsValid 检查置信度是否有效
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}
