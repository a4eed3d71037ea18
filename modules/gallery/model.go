package gallery

import "time"

// ImageInfo - 갤러리 목록 항목
type ImageInfo struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
}

// ListResponse - 갤러리 목록 응답
type ListResponse struct {
	Images []ImageInfo `json:"images"`
}

// 다운로드 사이즈 힌트별 최대 너비 (px)
const (
	SizeSmallMaxWidth  = 512
	SizeMediumMaxWidth = 1024
)

// sizeToMaxWidth - 사이즈 힌트 해석 (large/미지정/그 외는 원본)
func sizeToMaxWidth(size string) int {
	switch size {
	case "small":
		return SizeSmallMaxWidth
	case "medium":
		return SizeMediumMaxWidth
	default:
		return 0
	}
}
