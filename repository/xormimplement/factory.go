package xormimplement

import (
	"context"
	"fmt"
	"sync"

	"adhd_task/config"
	"adhd_task/entity"
	"adhd_task/repository"
	"adhd_task/repository/factory"
	"adhd_task/repository/interfaces"

	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"
)

var once sync.Once
var instance *Factory

type Factory struct {
	// 连接 pg
	engine *xorm.Engine
}

// 获取一个factory实例
func GetRepositoryFactoryInstance() factory.Factory {
	once.Do(func() {
		instance = &Factory{
			engine: openDB(
				config.GetInstance().GetString(config.BaseDbXormType),
				config.GetInstance().GetString(config.BaseDbXormHost),
				config.GetInstance().GetString(config.BaseDbXormPort),
				config.GetInstance().GetString(config.BaseDbXormUsername),
				config.GetInstance().GetString(config.BaseDbXormName),
				config.GetInstance().GetString(config.BaseDbXormPassword),
				config.GetInstance().GetBool(config.BaseDbXormShowsql),
			),
		}
		// 归档表按需建表，失败只记日志，归档属于旁路能力
		if err := instance.engine.Sync2(new(entity.QueueArchive)); err != nil {
			logrus.Errorf("queue_archives table sync failed: %v", err)
		}
	})
	return instance
}

// 设置xorm的连接参数
func openDB(dbType string, host string, port string, userName string, name string, password string, showSql bool) *xorm.Engine {
	//拼接数据库参数
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		host,
		userName,
		password,
		name,
		port)
	//设置连接参数
	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database name: %s", err, name)
		panic(err)
	}
	//是否展示sql文件
	engine.ShowSQL(showSql)
	return engine
}

// 创建一个会话
func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

// NewQueueArchiveRepository 创建队列归档仓库
func (f *Factory) NewQueueArchiveRepository(session interfaces.Session) (repository.QueueArchiveRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewQueueArchiveRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}
