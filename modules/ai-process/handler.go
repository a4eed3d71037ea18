package aiprocess

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
)

// multipart 필드명 및 크기 제한
const (
	uploadFieldName = "photo"
	maxUploadSize   = 32 << 20
)

type Handler struct {
	service *Service
	store   *artifact.Store
}

func NewHandler(store *artifact.Store) *Handler {
	return &Handler{
		service: NewService(store),
		store:   store,
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/ai-process", h.HandleProcess).Methods("POST", "OPTIONS")
	log.Println("✅ AI process routes registered")
}

// HandleProcess - POST /api/ai-process
// 입력 확보 → 묘사 → 프롬프트 조합 → 생성 → 다운로드 → 저장 → URL 응답
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format", err.Error(), ErrCodeInvalidRequest)
		return
	}

	mode := r.FormValue("mode")
	prompt := r.FormValue("prompt")
	style := r.FormValue("style")

	// 외부 호출 전에 입력을 한 번에 검증
	input, perr := h.resolveInput(r, mode)
	if perr != nil {
		log.Printf("❌ [AIProcess] Invalid input: %v", perr)
		status := http.StatusBadRequest
		if perr.Code == ErrCodeInternalError {
			status = http.StatusInternalServerError
		}
		writeError(w, status, perr.Message, "", perr.Code)
		return
	}

	log.Printf("🎨 [AIProcess] Processing request: mode=%s, style=%s, prompt_len=%d",
		input.Mode, style, len(prompt))

	// 클라이언트가 중간에 끊겨도 진행 중인 외부 호출과 저장은 끝까지 수행
	ctx := context.WithoutCancel(r.Context())

	fileName, err := h.service.Process(ctx, input, prompt, style)
	if err != nil {
		status, resp := mapPipelineError(err)
		log.Printf("❌ [AIProcess] Pipeline failed: %v", err)
		writeError(w, status, resp.Error, resp.Details, resp.ErrorCode)
		return
	}

	resultURL := "/ai-results/" + fileName
	log.Printf("✅ [AIProcess] Done: %s", resultURL)

	json.NewEncoder(w).Encode(ProcessResponse{AIImageURL: resultURL})
}

// resolveInput - 모드별 입력 해석
// image 모드만 방금 업로드된 파일을 저장하고, qr 모드는 페어링으로 저장된
// 파일명을 uploads 폴더에서 이름으로만 찾는다 (소유권 검사 없음)
func (h *Handler) resolveInput(r *http.Request, mode string) (Input, *PipelineError) {
	switch mode {
	case ModeText:
		return Input{Mode: ModeText}, nil

	case ModeImage:
		file, header, err := r.FormFile(uploadFieldName)
		if err != nil {
			return Input{}, validationErr(ErrCodeImageRequired, "Image file is required for image mode")
		}
		defer file.Close()

		stored, err := h.store.SaveUpload(file, header)
		if err != nil {
			return Input{}, &PipelineError{Stage: StageResolve, Code: ErrCodeInternalError, Message: "Failed to save uploaded image", Err: err}
		}
		return Input{Mode: ModeImage, ImagePath: stored.Path}, nil

	case ModeQR:
		name := r.FormValue("qrUploadedFileName")
		if name == "" {
			return Input{}, validationErr(ErrCodeImageRequired, "qrUploadedFileName is required for qr mode")
		}
		path, err := h.store.UploadPath(name)
		if err != nil {
			return Input{}, validationErr(ErrCodeInvalidRequest, "Invalid uploaded file name")
		}
		return Input{Mode: ModeQR, ImagePath: path}, nil

	default:
		return Input{}, validationErr(ErrCodeInvalidRequest, "Unknown mode: expected text, image or qr")
	}
}

// mapPipelineError - 파이프라인 에러를 HTTP 상태와 사용자 메시지로 변환
func mapPipelineError(err error) (int, ErrorResponse) {
	var perr *PipelineError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "Something went wrong while creating your image. Please try again.",
			ErrorCode: ErrCodeInternalError,
		}
	}

	switch perr.Code {
	case ErrCodeInvalidRequest, ErrCodeImageRequired:
		return http.StatusBadRequest, ErrorResponse{
			Error:     perr.Message,
			ErrorCode: perr.Code,
		}
	case ErrCodeContentPolicy:
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "Your request was rejected by the image safety system. Please try a different photo or prompt.",
			ErrorCode: ErrCodeContentPolicy,
		}
	case ErrCodeInputFile:
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "The source image could not be read. Please upload it again.",
			ErrorCode: ErrCodeInputFile,
		}
	case ErrCodeDownloadFailed:
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "Failed to retrieve the generated image. Please try again.",
			ErrorCode: ErrCodeDownloadFailed,
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "Something went wrong while creating your image. Please try again.",
			Details:   perr.Error(),
			ErrorCode: ErrCodeInternalError,
		}
	}
}

// writeError - 에러 JSON 응답
func writeError(w http.ResponseWriter, status int, message, details, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:     message,
		Details:   details,
		ErrorCode: code,
	})
}
