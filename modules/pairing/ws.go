package pairing

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 개발용 - 모든 origin 허용
		return true
	},
}

// watcher - 업로드 알림을 기다리는 데스크탑 연결
type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub - 세션별 업로드 알림 구독 관리
// 폴링 엔드포인트가 여전히 소비의 유일한 경로이며, 허브는 알림만 보냄
type Hub struct {
	mu       sync.Mutex
	watchers map[string][]*watcher
}

// NewHub - Hub 생성
func NewHub() *Hub {
	return &Hub{
		watchers: make(map[string][]*watcher),
	}
}

// Watch - 세션 업로드 알림 구독
func (h *Hub) Watch(sessionID string, conn *websocket.Conn) {
	w := &watcher{
		conn: conn,
		send: make(chan []byte, 8),
	}

	h.mu.Lock()
	h.watchers[sessionID] = append(h.watchers[sessionID], w)
	h.mu.Unlock()

	log.Printf("🔍 [Pairing] Watcher connected for session %s", sessionID)

	go w.writePump()
	go w.readPump(h, sessionID)
}

// Notify - 세션의 모든 구독자에게 업로드 완료 알림 후 정리
func (h *Hub) Notify(sessionID string) {
	event := UploadEvent{
		Type:      "uploaded",
		SessionID: sessionID,
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ [Pairing] Failed to marshal upload event: %v", err)
		return
	}

	h.mu.Lock()
	watchers := h.watchers[sessionID]
	delete(h.watchers, sessionID)
	h.mu.Unlock()

	for _, w := range watchers {
		select {
		case w.send <- messageBytes:
		default:
		}
		close(w.send)
	}

	if len(watchers) > 0 {
		log.Printf("📢 [Pairing] Notified %d watcher(s) for session %s", len(watchers), sessionID)
	}
}

// remove - 연결이 끊긴 구독자 제거
func (h *Hub) remove(sessionID string, target *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers := h.watchers[sessionID]
	for i, w := range watchers {
		if w == target {
			h.watchers[sessionID] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
	if len(h.watchers[sessionID]) == 0 {
		delete(h.watchers, sessionID)
	}
}

// writePump - 구독자로 메시지 쓰기
func (w *watcher) writePump() {
	defer w.conn.Close()

	for message := range w.send {
		if err := w.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	w.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump - 연결 종료 감지용 (수신 메시지는 무시)
func (w *watcher) readPump(h *Hub, sessionID string) {
	defer func() {
		h.remove(sessionID, w)
		w.conn.Close()
	}()

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}
