package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event คือ message ที่ push หา admin client
// type: "new-order" (มี order) หรือ "ring" (มี unacked count)
type Event struct {
	Type      string              `json:"type"`
	Order     *services.OrderView `json:"order,omitempty"`
	Unacked   int                 `json:"unacked,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// OrderHub กระจาย order ใหม่ + เสียงปลุกให้ทุก admin ที่ต่อ WS อยู่
// ห้องเดียวทั้งร้าน ไม่ต้องแยก room แบบแชท
type OrderHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishNewOrder implements services.OrderPublisher (best-effort)
func (h *OrderHub) PublishNewOrder(order services.OrderView) {
	select {
	case h.broadcast <- Event{Type: "new-order", Order: &order, Timestamp: time.Now()}:
	default:
		log.Println("ws: broadcast buffer full, new-order event dropped")
	}
}

// PublishRing ใช้เป็น ringer ของ alert.Machine
func (h *OrderHub) PublishRing(unacked int) {
	select {
	case h.broadcast <- Event{Type: "ring", Unacked: unacked, Timestamp: time.Now()}:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/admin/orders (ผ่าน admin auth middleware มาแล้ว)
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	// อ่านทิ้งไปเรื่อย ๆ จน connection หลุด (client ไม่มีอะไรจะส่ง)
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
