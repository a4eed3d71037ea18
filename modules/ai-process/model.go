package aiprocess

// 생성 모드
const (
	ModeText  = "text"  // 텍스트 프롬프트만
	ModeImage = "image" // 방금 업로드된 이미지 사용
	ModeQR    = "qr"    // 모바일 페어링으로 업로드된 파일명 사용
)

// Input - 모드 검증을 거친 파이프라인 입력
// ImagePath는 text 모드에서 빈 문자열
type Input struct {
	Mode      string
	ImagePath string
}

// ProcessResponse - 생성 성공 응답
type ProcessResponse struct {
	AIImageURL string `json:"aiImageUrl"`
}

// ErrorResponse - 생성 실패 응답
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeImageRequired  = "IMAGE_REQUIRED"
	ErrCodeInputFile      = "INPUT_FILE_ERROR"
	ErrCodeContentPolicy  = "CONTENT_POLICY_VIOLATION"
	ErrCodeDownloadFailed = "DOWNLOAD_FAILED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
