package clock

import "time"

// DayKeyLayout 日历日标识格式
const DayKeyLayout = "2006-01-02"

// Clock 时钟能力接口
// 跨天判断全部通过 TodayKey 比较字符串完成，注入假时钟即可确定性地模拟换日
type Clock interface {
	Now() time.Time
	// TodayKey 本地时区当前日历日标识
	TodayKey() string
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().In(time.Local)
}

func (realClock) TodayKey() string {
	return time.Now().In(time.Local).Format(DayKeyLayout)
}

// Fake 测试用固定时钟
type Fake struct {
	Current time.Time
}

func NewFake(t time.Time) *Fake {
	return &Fake{Current: t}
}

func (f *Fake) Now() time.Time {
	return f.Current
}

func (f *Fake) TodayKey() string {
	return f.Current.Format(DayKeyLayout)
}

// Advance 前进指定时长
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

// NextDay 前进到下一天
func (f *Fake) NextDay() {
	f.Current = f.Current.AddDate(0, 0, 1)
}
