package gallery

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
)

type Handler struct {
	service *Service
}

func NewHandler(store *artifact.Store) *Handler {
	return &Handler{
		service: NewService(store),
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/gallery-list", h.HandleList).Methods("GET")
	r.HandleFunc("/api/download/{filename}", h.HandleDownload).Methods("GET")
	r.HandleFunc("/api/preview/{filename}", h.HandlePreview).Methods("GET")
	log.Println("✅ Gallery routes registered")
}

// HandleList - GET /api/gallery-list
// 생성 결과를 최신순으로 반환 (페이지네이션 없음)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	images, err := h.service.List()
	if err != nil {
		log.Printf("❌ [Gallery] Failed to list results: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to list gallery"})
		return
	}

	json.NewEncoder(w).Encode(ListResponse{Images: images})
}

// HandleDownload - GET /api/download/{filename}?size=small|medium|large
// size 미지정/large는 원본 바이트 그대로 스트리밍
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]
	maxWidth := sizeToMaxWidth(r.URL.Query().Get("size"))

	data, err := h.service.LoadResized(filename, maxWidth)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ [Gallery] Download failed for %s: %v", filename, err)
		http.Error(w, "Failed to load file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(filename))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// HandlePreview - GET /api/preview/{filename}
// 갤러리 썸네일용 WebP 프리뷰
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]

	data, err := h.service.LoadPreview(filename)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ [Gallery] Preview failed for %s: %v", filename, err)
		http.Error(w, "Failed to build preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
