package terminal

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is one payment lifecycle notification pushed to admin
// dashboards.
type Event struct {
	Type            string    `json:"type"` // "capture", "cancel", "refund"
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	SaleID          string    `json:"sale_id,omitempty"`
	AmountCents     int64     `json:"amount_cents"`
	At              time.Time `json:"at"`
}

// Feed broadcasts payment events to connected websocket clients.
type Feed struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{conns: make(map[*websocket.Conn]bool)}
}

// HandleWS upgrades the request and keeps the connection registered
// until the peer goes away. Inbound messages are discarded; the feed
// is push-only.
func (f *Feed) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("terminal: websocket upgrade: %v", err)
		return
	}

	f.mu.Lock()
	f.conns[conn] = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.conns, conn)
		f.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("terminal: websocket read: %v", err)
			}
			return
		}
	}
}

// Broadcast sends the event to every connected client. Writes that
// fail drop the connection.
func (f *Feed) Broadcast(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteJSON(e); err != nil {
			log.Printf("terminal: websocket write: %v", err)
			conn.Close()
			delete(f.conns, conn)
		}
	}
}

// ClientCount reports the number of connected listeners.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}
