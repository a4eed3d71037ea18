package dalle

// GenerateRequest - 이미지 생성 요청
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"` // 기본 1024x1024
}

// GenerateResponse - 이미지 생성 응답 (호스팅 URL 반환)
type GenerateResponse struct {
	Success      bool   `json:"success"`
	ImageURL     string `json:"image_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
