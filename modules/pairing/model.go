package pairing

import (
	"time"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
)

// 세션 상태
const (
	StatusWaiting  = "waiting"
	StatusUploaded = "uploaded"
	StatusError    = "error"
)

// Session - 모바일 페어링 세션
// FileInfo는 status=uploaded일 때만 존재
type Session struct {
	ID        string
	Status    string
	FileInfo  *artifact.StoredFile
	CreatedAt time.Time
}

// StartSessionResponse - 세션 생성 응답
type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
	Origin    string `json:"origin"`
}

// StatusResponse - 업로드 상태 조회 응답
type StatusResponse struct {
	Status   string               `json:"status"`
	FileInfo *artifact.StoredFile `json:"fileInfo,omitempty"`
}

// UploadEvent - 웹소켓으로 푸시되는 업로드 알림
type UploadEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}
