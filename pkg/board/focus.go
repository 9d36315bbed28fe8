package board

import (
	"context"
	"sync"
	"time"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"

	log "github.com/sirupsen/logrus"
)

// FocusStore 专注模式选择的单槽位存取（模式无关，每次会话覆盖）
type FocusStore struct {
	kv  kvstore.Store
	bus eventbus.Bus
}

func NewFocusStore(kv kvstore.Store, bus eventbus.Bus) *FocusStore {
	return &FocusStore{kv: kv, bus: bus}
}

// Save 覆盖写入选择；计时分钟数必须在 1..120 内，否则静默拒绝
func (f *FocusStore) Save(ctx context.Context, sel *entity.FocusSelection) bool {
	if sel == nil {
		return false
	}
	if sel.TimerMinutes < constant.FocusTimerMinMinutes || sel.TimerMinutes > constant.FocusTimerMaxMinutes {
		return false
	}
	_, rev, err := loadFocusRaw(ctx, f.kv)
	if err != nil {
		return false
	}
	if _, err := kvstore.SaveJSON(ctx, f.kv, constant.KeyFocusSelection, rev, sel); err != nil {
		log.Errorf("board: save focus selection error: %v", err)
		return false
	}
	f.bus.Publish(constant.TopicStorageChanged)
	return true
}

// Load 读取当前选择，缺失或损坏时返回 nil
func (f *FocusStore) Load(ctx context.Context) *entity.FocusSelection {
	sel, _, err := loadFocusRaw(ctx, f.kv)
	if err != nil {
		return nil
	}
	return sel
}

func loadFocusRaw(ctx context.Context, kv kvstore.Store) (*entity.FocusSelection, int64, error) {
	sel := &entity.FocusSelection{}
	rev, ok, err := kvstore.LoadJSON(ctx, kv, constant.KeyFocusSelection, sel)
	if err != nil {
		log.Errorf("board: load focus selection error: %v", err)
		return nil, 0, err
	}
	if !ok {
		return nil, rev, nil
	}
	return sel, rev, nil
}

// FocusSession 专注会话倒计时
// 每秒一跳、每跳减一，不做漂移校正；暂停取消下一跳，恢复重新排跳
// 计时归零后按模式策略记一次专注经验值
type FocusSession struct {
	mode   constant.Mode
	ledger *gamify.Ledger

	mu        sync.Mutex
	remaining int // 剩余秒数
	running   bool
	finished  bool
	timer     *time.Timer
}

func NewFocusSession(mode constant.Mode, minutes int, ledger *gamify.Ledger) *FocusSession {
	if minutes < constant.FocusTimerMinMinutes {
		minutes = constant.FocusTimerDefaultMinutes
	}
	if minutes > constant.FocusTimerMaxMinutes {
		minutes = constant.FocusTimerMaxMinutes
	}
	return &FocusSession{
		mode:      mode,
		ledger:    ledger,
		remaining: minutes * 60,
	}
}

// Start 开始（或继续）倒计时
func (s *FocusSession) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.finished {
		return
	}
	s.running = true
	s.schedule()
}

// Pause 暂停：取消已排的下一跳
func (s *FocusSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Resume 恢复：重新排跳（不是挂起续跑，不补偿暂停期间的时间）
func (s *FocusSession) Resume() {
	s.Start()
}

// Remaining 剩余秒数
func (s *FocusSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Running 是否在倒计时中
func (s *FocusSession) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Finished 是否已走完
func (s *FocusSession) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// 调用方必须已持有锁
func (s *FocusSession) schedule() {
	s.timer = time.AfterFunc(time.Second, s.tick)
}

func (s *FocusSession) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.remaining--
	if s.remaining > 0 {
		s.schedule()
		s.mu.Unlock()
		return
	}
	s.remaining = 0
	s.running = false
	s.finished = true
	s.mu.Unlock()

	s.ledger.AwardFocus(context.Background(), s.mode)
}
