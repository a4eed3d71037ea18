package pairing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherNotifiedOnUpload(t *testing.T) {
	h, r := newTestHandler(t)

	server := httptest.NewServer(r)
	defer server.Close()

	sessionID := startSession(t, r)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/upload-status?session=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// 핸드셰이크 후 구독 등록이 끝날 때까지 대기
	require.Eventually(t, func() bool {
		h.hub.mu.Lock()
		defer h.hub.mu.Unlock()
		return len(h.hub.watchers[sessionID]) == 1
	}, time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, mobileUploadRequest(t, sessionID, true))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event UploadEvent
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "uploaded", event.Type)
	assert.Equal(t, sessionID, event.SessionID)

	// 알림은 폴링 소비에 영향을 주지 않음
	code, status := checkStatus(t, r, sessionID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUploaded, status.Status)
	require.NotNil(t, status.FileInfo)
}

func TestWatchRequiresSessionParam(t *testing.T) {
	_, r := newTestHandler(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/ws/upload-status", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifyWithoutWatchers(t *testing.T) {
	hub := NewHub()

	// 구독자가 없어도 안전하게 무시됨
	hub.Notify("never-watched")

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.watchers)
}
