// internal/event/event.go
package event

import "sync"

// EventType тип события
type EventType string

// Event структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет использовать функцию как подписчика.
type ListenerFunc func(event Event)

// OnEvent вызывает f.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher диспетчер событий.
// События тика копятся в очереди и рассылаются только после фиксации тика.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[EventType][]Listener
	queue     []Event
}

// NewDispatcher создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch немедленная отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.Lock()
	listeners := append([]Listener(nil), d.listeners[event.Type]...)
	d.mu.Unlock()
	for _, listener := range listeners {
		listener.OnEvent(event)
	}
}

// Enqueue откладывает событие до Flush.
func (d *Dispatcher) Enqueue(event Event) {
	d.mu.Lock()
	d.queue = append(d.queue, event)
	d.mu.Unlock()
}

// Flush рассылает накопленные события в порядке поступления.
func (d *Dispatcher) Flush() {
	d.Deliver(d.Take())
}

// Take забирает накопленные события, не рассылая их.
func (d *Dispatcher) Take() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	queue := d.queue
	d.queue = nil
	return queue
}

// Deliver рассылает события, ранее забранные через Take.
func (d *Dispatcher) Deliver(events []Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}

// Discard выбрасывает накопленные события (тик отменён).
func (d *Dispatcher) Discard() {
	d.mu.Lock()
	d.queue = nil
	d.mu.Unlock()
}

// Pending число событий в очереди.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}
