// Package event 提供放置系统向 UI 层（音效、提示）发送信号的事件分发器
package event

// EventType 事件类型
type EventType string

// Event 事件结构
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型由事件类型决定
}

// Listener 事件订阅者接口
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 允许普通函数作为订阅者
type ListenerFunc func(event Event)

// OnEvent 实现 Listener 接口
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
// 与游戏循环同线程同步调用，不做加锁
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Dispatch 将事件发送给该类型的所有订阅者（按订阅顺序）
// nil 分发器上调用是安全的空操作
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
