// Package factory 组装服务层单例：存储后端、广播总线、各模式看板、
// 游戏化账本、专注存储与两个 AI 服务在这里一次性接线
package factory

import (
	"context"
	"encoding/json"
	"sync"

	"adhd_task/config"
	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/model"
	"adhd_task/pkg/board"
	"adhd_task/pkg/clients/llm"
	redisclient "adhd_task/pkg/clients/redis"
	"adhd_task/pkg/clock"
	"adhd_task/pkg/eventbus"
	"adhd_task/pkg/gamify"
	"adhd_task/pkg/kvstore"
	repofactory "adhd_task/repository/factory"
	"adhd_task/repository/xormimplement"
	"adhd_task/service/assess"
	"adhd_task/service/decompose"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
)

var instance *Factory
var once sync.Once

type Factory struct {
	kv    kvstore.Store
	bus   eventbus.Bus
	clk   clock.Clock
	ledgr *gamify.Ledger

	boards map[constant.Mode]*board.Board
	focus  *board.FocusStore
	llm    *llm.Client
	repos  repofactory.Factory

	decomposeService *decompose.Service
	assessService    *assess.Service

	// 进行中的专注会话，单槽位，开新会话即替换
	focusMu      sync.Mutex
	focusSession *board.FocusSession
}

// 单例模式
func GetServiceFactory() *Factory {
	once.Do(func() {
		instance = build()
	})
	return instance
}

func build() *Factory {
	ctx := context.Background()
	conf := config.GetInstance()

	kv, bus := newBackend(conf.GetStringOrDefault(config.StorageBackend, StorageBackendMemory))

	// 结构版本不匹配时整库清空重建
	wiped, err := kvstore.EnsureSchema(ctx, kv, constant.KeySchemaVersion, constant.SchemaVersion)
	if err != nil {
		panic(err)
	}
	if wiped {
		log.Warnf("storage schema version changed, all data wiped, now at version %s", constant.SchemaVersion)
	}

	clk := clock.New()
	ledgr := gamify.NewLedger(kv, bus, clk, focusXPModes(conf.GetStringSliceOrDefault(config.GamifyFocusXPModes, nil)))

	var archive board.ArchiveSink
	var repos repofactory.Factory
	if conf.GetBoolOrDefault(config.BoardArchiveDiscarded, false) {
		repos = xormimplement.GetRepositoryFactoryInstance()
		archive = &archiveSink{repos: repos}
	}

	boards := make(map[constant.Mode]*board.Board, len(constant.AllModes))
	for _, mode := range constant.AllModes {
		boards[mode] = board.New(mode, board.Deps{
			KV:                  kv,
			Bus:                 bus,
			Clock:               clk,
			Ledger:              ledgr,
			Archive:             archive,
			CarryOverIncomplete: conf.GetBoolOrDefault(config.BoardCarryOverIncomplete, false),
		})
	}

	llmClient := llm.GetInstance()
	// 持久化槽位里的凭证优先于环境变量
	var token string
	if _, ok, err := kvstore.LoadJSON(ctx, kv, constant.KeyAPICredential, &token); err == nil && ok && token != "" {
		llmClient.SetToken(token)
	}

	return &Factory{
		kv:               kv,
		bus:              bus,
		clk:              clk,
		ledgr:            ledgr,
		boards:           boards,
		focus:            board.NewFocusStore(kv, bus),
		llm:              llmClient,
		repos:            repos,
		decomposeService: decompose.NewService(llmClient),
		assessService:    assess.NewService(llmClient),
	}
}

// newBackend 按配置选择存储与信号后端；redis 后端让多实例共享同一份数据
func newBackend(backend string) (kvstore.Store, eventbus.Bus) {
	switch backend {
	case StorageBackendRedis:
		client := redisclient.GetInstance().Client
		return kvstore.NewRedisStore(client), eventbus.NewRedisBus(client)
	default:
		return kvstore.NewMemoryStore(), eventbus.NewMemoryBus()
	}
}

func focusXPModes(names []string) map[constant.Mode]bool {
	if len(names) == 0 {
		return gamify.DefaultFocusXPModes()
	}
	modes := make(map[constant.Mode]bool, len(names))
	for _, name := range names {
		mode := constant.Mode(name)
		if mode.IsValid() {
			modes[mode] = true
		}
	}
	return modes
}

// Board 按模式取看板，非法模式兜底混合型
func (f *Factory) Board(mode constant.Mode) *board.Board {
	if b, ok := f.boards[mode]; ok {
		return b
	}
	return f.boards[constant.ModeCombined]
}

func (f *Factory) FocusStore() *board.FocusStore {
	return f.focus
}

func (f *Factory) Ledger() *gamify.Ledger {
	return f.ledgr
}

// StartFocusSession 以已保存的计时时长开启专注倒计时
// 进行中的旧会话先暂停再替换；计时走完由会话按模式策略记专注经验值
func (f *Factory) StartFocusSession(ctx context.Context, mode constant.Mode) *board.FocusSession {
	minutes := constant.FocusTimerDefaultMinutes
	if sel := f.focus.Load(ctx); sel != nil && sel.TimerMinutes > 0 {
		minutes = sel.TimerMinutes
	}

	f.focusMu.Lock()
	defer f.focusMu.Unlock()
	if f.focusSession != nil {
		f.focusSession.Pause()
	}
	f.focusSession = board.NewFocusSession(mode, minutes, f.ledgr)
	f.focusSession.Start()
	return f.focusSession
}

// FocusSession 当前专注会话，没开过时为 nil
func (f *Factory) FocusSession() *board.FocusSession {
	f.focusMu.Lock()
	defer f.focusMu.Unlock()
	return f.focusSession
}

// ListQueueArchives 查询跨天重置丢弃队列的归档；归档未开启时返回空集
func (f *Factory) ListQueueArchives(ctx context.Context, condition *model.QueueArchiveListCondition) ([]*entity.QueueArchive, error) {
	if f.repos == nil {
		return []*entity.QueueArchive{}, nil
	}

	session := f.repos.NewSession(ctx)
	defer func() {
		if err := session.Close(); err != nil {
			log.Errorf("archive session close failed: %v", err)
		}
	}()

	repo, err := f.repos.NewQueueArchiveRepository(session)
	if err != nil {
		return nil, err
	}
	return repo.List(condition)
}

// SetCredential 写入上游凭证槽位并立即生效
func (f *Factory) SetCredential(ctx context.Context, token string) error {
	var current string
	rev, _, err := kvstore.LoadJSON(ctx, f.kv, constant.KeyAPICredential, &current)
	if err != nil {
		return err
	}
	if _, err := kvstore.SaveJSON(ctx, f.kv, constant.KeyAPICredential, rev, token); err != nil {
		return err
	}
	f.llm.SetToken(token)
	f.bus.Publish(constant.TopicStorageChanged)
	return nil
}

// HasCredential 上游凭证是否已配置
func (f *Factory) HasCredential() bool {
	return f.llm.HasToken()
}

func (f *Factory) NewDecomposeService() *decompose.Service {
	return f.decomposeService
}

func (f *Factory) NewAssessService() *assess.Service {
	return f.assessService
}

// archiveSink 把被跨天重置丢弃的队列写进 pg 归档表
type archiveSink struct {
	repos repofactory.Factory
}

func (a *archiveSink) ArchiveQueue(ctx context.Context, mode constant.Mode, doc *entity.DailyQueueDoc) error {
	data, err := json.Marshal(doc.Tasks)
	if err != nil {
		return errors.WithStack(err)
	}

	session := a.repos.NewSession(ctx)
	defer func() {
		if err := session.Close(); err != nil {
			log.Errorf("archive session close failed: %v", err)
		}
	}()

	repo, err := a.repos.NewQueueArchiveRepository(session)
	if err != nil {
		return err
	}
	return repo.Insert(&entity.QueueArchive{
		Mode:      mode.String(),
		QueueDate: doc.Date,
		TasksJSON: string(data),
	})
}
