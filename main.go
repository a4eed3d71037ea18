package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	aiprocess "github.com/gaogang1011/exhibition-app/modules/ai-process"
	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
	"github.com/gaogang1011/exhibition-app/modules/common/config"
	"github.com/gaogang1011/exhibition-app/modules/gallery"
	"github.com/gaogang1011/exhibition-app/modules/pairing"
)

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "exhibition-app",
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 아티팩트 저장소 준비
	store := artifact.NewStore(cfg.PublicDir)
	if err := store.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to prepare artifact store: %v", err)
	}

	// 라우터 설정
	r := mux.NewRouter()

	// CORS 미들웨어 적용
	r.Use(enableCORS)

	// 라우트 설정
	r.HandleFunc("/health", healthCheck).Methods("GET")

	pairing.NewHandler(store).RegisterRoutes(r)
	aiprocess.NewHandler(store).RegisterRoutes(r)
	gallery.NewHandler(store).RegisterRoutes(r)

	// 정적 파일 서빙 - 생성 결과 + 프론트엔드
	r.PathPrefix("/ai-results/").Handler(
		http.StripPrefix("/ai-results/", http.FileServer(http.Dir(store.ResultsDir()))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.PublicDir)))

	log.Printf("🚀 Exhibition App Server starting on port %s", cfg.Port)
	log.Printf("📷 Mobile upload: %s/upload.html?id=<sessionId>", cfg.PublicOrigin)
	log.Printf("🖼  Gallery: %s/api/gallery-list", cfg.PublicOrigin)
	log.Printf("❤️  Health check: %s/health", cfg.PublicOrigin)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
