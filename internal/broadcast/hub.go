// internal/broadcast/hub.go
package broadcast

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"go-survivor/internal/app"
)

const writeTimeout = 5 * time.Second

type client struct {
	frames chan []byte
}

// Hub рассылает снапшоты сессии зрителям по websocket.
// Медленный зритель пропускает кадры, симуляцию он не тормозит.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Present кодирует снапшот в msgpack и раздаёт его подключённым зрителям.
func (h *Hub) Present(s *app.Snapshot) {
	frame, err := msgpack.Marshal(s)
	if err != nil {
		log.Printf("Failed to encode snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = frame
	for c := range h.clients {
		offer(c.frames, frame)
	}
}

// offer кладёт кадр в канал ёмкостью 1, вытесняя непрочитанный.
func offer(ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}

// Clients число подключённых зрителей.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register() *client {
	c := &client{frames: make(chan []byte, 1)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.frames <- h.latest
	}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ServeHTTP принимает websocket-подключение зрителя и пишет ему кадры,
// пока соединение открыто.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("Websocket accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	c := h.register()
	defer h.unregister(c)

	// Зритель ничего не присылает; CloseRead обслуживает управляющие кадры
	// и отменяет ctx при разрыве.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-c.frames:
			if err := write(ctx, conn, frame); err != nil {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, frame)
}
