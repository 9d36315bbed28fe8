package constant

const (
	EmptyString = ""
)

// =============================================
// 游戏化（XP）规则常量
// =============================================

const (
	// XPPerTask 完成一个任务奖励的经验值
	XPPerTask = 10
	// XPPenaltyUncompleted 删除未完成任务的惩罚经验值
	XPPenaltyUncompleted = 10
	// XPPerFocusSession 完成一次专注模式奖励的经验值
	XPPerFocusSession = 10
	// XPPerListCompletion 完成整个任务清单奖励的经验值
	XPPerListCompletion = 10
	// XPPerLevel 每升一级需要的经验值
	XPPerLevel = 100
)

// =============================================
// 专注模式常量
// =============================================

const (
	// FocusTimerMinMinutes 专注计时器最小分钟数
	FocusTimerMinMinutes = 1
	// FocusTimerMaxMinutes 专注计时器最大分钟数
	FocusTimerMaxMinutes = 120
	// FocusTimerDefaultMinutes 专注计时器默认分钟数
	FocusTimerDefaultMinutes = 25
)

// DefaultListName 新建任务清单的默认名称
const DefaultListName = "Task List"
