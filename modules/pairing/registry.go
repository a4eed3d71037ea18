package pairing

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
)

var (
	// ErrSessionNotFound - 세션이 없거나 이미 소비됨
	ErrSessionNotFound = errors.New("session not found")
	// ErrAlreadyUploaded - 업로드 결과는 세션당 한 번만 기록 가능
	ErrAlreadyUploaded = errors.New("session already has an upload")
)

// Registry - 프로세스 내 페어링 세션 저장소
// TTL이 없어서 버려진 세션은 프로세스 재시작까지 남는다 (알려진 한계)
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry - Registry 생성
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create - 새 세션 생성 (status: waiting)
func (r *Registry) Create() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		Status:    StatusWaiting,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	total := len(r.sessions)
	r.mu.Unlock()

	log.Printf("✅ [Pairing] Created session: %s (active: %d)", session.ID, total)
	return session
}

// Exists - 세션 존재 여부 (소비하지 않음)
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// RecordUpload - 모바일 업로드 결과 기록 (세션당 1회)
func (r *Registry) RecordUpload(id string, fileInfo *artifact.StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if session.Status == StatusUploaded {
		return ErrAlreadyUploaded
	}

	session.Status = StatusUploaded
	session.FileInfo = fileInfo

	log.Printf("📱 [Pairing] Upload recorded for session %s: %s", id, fileInfo.FileName)
	return nil
}

// PollAndConsume - 업로드 상태 조회
// uploaded면 파일 정보를 반환하면서 세션을 제거 - 결과는 정확히 한 번만 전달됨
func (r *Registry) PollAndConsume(id string) (*artifact.StoredFile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, false, ErrSessionNotFound
	}

	if session.Status != StatusUploaded {
		return nil, false, nil
	}

	// 확인-제거를 한 락 안에서 수행해야 at-most-once가 보장됨
	delete(r.sessions, id)
	log.Printf("✅ [Pairing] Session %s consumed (remaining: %d)", id, len(r.sessions))
	return session.FileInfo, true, nil
}
