package nanobanana

// GenerateRequest - 이미지 생성 요청
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"` // 비어있으면 config의 GEMINI_MODEL 사용
}

// GenerateResponse - 이미지 생성 응답 (바이트 직접 반환)
type GenerateResponse struct {
	Success      bool   `json:"success"`
	ImageData    []byte `json:"-"`
	MimeType     string `json:"mime_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
