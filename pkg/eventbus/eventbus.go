// Package eventbus 提供按主题发布/订阅的广播能力
// 写入持久化之后发布信号，其他视图收到后重读存储对账；
// 信号到达与并发写之间没有顺序保证，系统接受最终一致
package eventbus

// Handler 信号处理函数，参数为收到的主题名
type Handler func(topic string)

// Bus 事件总线接口
type Bus interface {
	// Publish 向主题的全部订阅者广播
	Publish(topic string)
	// Subscribe 订阅主题，返回取消订阅函数
	Subscribe(topic string, h Handler) (unsubscribe func())
}
