package pairing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
	"github.com/gaogang1011/exhibition-app/modules/common/config"
)

// 모바일 업로드 multipart 필드명
const uploadFieldName = "photo"

// 업로드 파일 최대 크기 (32MB)
const maxUploadSize = 32 << 20

type Handler struct {
	registry *Registry
	store    *artifact.Store
	hub      *Hub
}

func NewHandler(store *artifact.Store) *Handler {
	return &Handler{
		registry: NewRegistry(),
		store:    store,
		hub:      NewHub(),
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/start-upload-session", h.HandleStartSession).Methods("GET")
	r.HandleFunc("/upload.html", h.HandleUploadPage).Methods("GET")
	r.HandleFunc("/api/mobile-upload/{sessionId}", h.HandleMobileUpload).Methods("POST")
	r.HandleFunc("/api/check-upload-status/{sessionId}", h.HandleCheckStatus).Methods("GET")
	r.HandleFunc("/ws/upload-status", h.HandleWatch)
	log.Println("✅ Pairing routes registered")
}

// HandleStartSession - GET /api/start-upload-session
// 데스크탑이 새 페어링 세션을 요청
func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	cfg := config.GetConfig()
	session := h.registry.Create()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StartSessionResponse{
		SessionID: session.ID,
		Origin:    cfg.PublicOrigin,
	})
}

// HandleUploadPage - GET /upload.html?id=<sessionId>
// 모바일 기기에서 여는 촬영/업로드 폼
func (h *Handler) HandleUploadPage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("id")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if sessionID == "" || !h.registry.Exists(sessionID) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundPage)
		return
	}

	fmt.Fprintf(w, uploadPage, sessionID)
}

// HandleMobileUpload - POST /api/mobile-upload/{sessionId}
// 모바일에서 촬영한 사진 업로드
func (h *Handler) HandleMobileUpload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !h.registry.Exists(sessionID) {
		log.Printf("❌ [Pairing] Upload to unknown session: %s", sessionID)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundPage)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("❌ [Pairing] Invalid multipart form: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, errorPage, "업로드 형식이 올바르지 않습니다.")
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		log.Printf("❌ [Pairing] Missing file in upload: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, errorPage, "사진 파일이 첨부되지 않았습니다.")
		return
	}
	defer file.Close()

	fileInfo, err := h.store.SaveUpload(file, header)
	if err != nil {
		log.Printf("❌ [Pairing] Failed to save upload: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, errorPage, "사진 저장에 실패했습니다. 다시 시도해주세요.")
		return
	}

	if err := h.registry.RecordUpload(sessionID, fileInfo); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundPage)
			return
		}
		log.Printf("❌ [Pairing] Failed to record upload: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, errorPage, "이미 업로드가 완료된 세션입니다.")
		return
	}

	// 대기 중인 데스크탑에 알림 (폴링이 최종 소비 경로)
	h.hub.Notify(sessionID)

	fmt.Fprint(w, confirmPage)
}

// HandleCheckStatus - GET /api/check-upload-status/{sessionId}
// 데스크탑 폴링 - uploaded를 반환하는 순간 세션이 제거됨
func (h *Handler) HandleCheckStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	w.Header().Set("Content-Type", "application/json")

	fileInfo, uploaded, err := h.registry.PollAndConsume(sessionID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(StatusResponse{Status: StatusError})
		return
	}

	if !uploaded {
		json.NewEncoder(w).Encode(StatusResponse{Status: StatusWaiting})
		return
	}

	json.NewEncoder(w).Encode(StatusResponse{
		Status:   StatusUploaded,
		FileInfo: fileInfo,
	})
}

// HandleWatch - GET /ws/upload-status?session=<sessionId>
// 데스크탑이 웹소켓으로 업로드 완료 알림을 구독
func (h *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.Watch(sessionID, conn)
}
