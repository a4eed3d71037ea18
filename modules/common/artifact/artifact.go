package artifact

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 저장 파일명 접두사
const (
	UploadPrefix = "upload-"
	ResultPrefix = "ai-result-"
)

// StoredFile - 업로드된 원본 파일 정보
type StoredFile struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
	FileName     string `json:"fileName"`
}

// ResultInfo - 생성 결과 파일 정보
type ResultInfo struct {
	Name    string
	ModTime time.Time
}

// Store - 로컬 아티팩트 저장소 (결과물 루트 + uploads 하위 폴더)
type Store struct {
	resultsDir string
	uploadsDir string
	httpClient *http.Client
}

// NewStore - Store 생성 (publicDir 하위에 ai-results 트리 구성)
func NewStore(publicDir string) *Store {
	resultsDir := filepath.Join(publicDir, "ai-results")
	return &Store{
		resultsDir: resultsDir,
		uploadsDir: filepath.Join(resultsDir, "uploads"),
		httpClient: &http.Client{},
	}
}

// ResultsDir - 결과물 루트 경로
func (s *Store) ResultsDir() string {
	return s.resultsDir
}

// UploadsDir - 업로드 폴더 경로
func (s *Store) UploadsDir() string {
	return s.uploadsDir
}

// EnsureDirs - 저장 폴더 생성
func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directories: %w", err)
	}
	log.Printf("✅ Artifact store ready: %s", s.resultsDir)
	return nil
}

// NewUploadName - 업로드 파일명 생성 (원본 확장자 유지)
func NewUploadName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return UploadPrefix + uuid.NewString() + ext
}

// NewResultName - 결과 파일명 생성
func NewResultName(ext string) string {
	if ext == "" {
		ext = ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ResultPrefix + uuid.NewString() + ext
}

// SaveUpload - multipart 파일을 uploads 폴더에 동기 저장
// 핸들러가 응답하기 전에 쓰기가 완료되므로 부분 파일이 노출되지 않음
func (s *Store) SaveUpload(file multipart.File, header *multipart.FileHeader) (*StoredFile, error) {
	fileName := NewUploadName(header.Filename)
	fullPath := filepath.Join(s.uploadsDir, fileName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	written, err := io.Copy(dst, file)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}

	log.Printf("📥 Upload saved: %s (%d bytes, original: %s)", fileName, written, header.Filename)

	return &StoredFile{
		Path:         fullPath,
		OriginalName: header.Filename,
		FileName:     fileName,
	}, nil
}

// SaveResult - 생성된 이미지 바이트를 결과물 루트에 저장
func (s *Store) SaveResult(data []byte, ext string) (string, error) {
	name := NewResultName(ext)
	fullPath := filepath.Join(s.resultsDir, name)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	log.Printf("💾 Result saved: %s (%d bytes)", name, len(data))
	return name, nil
}

// UploadPath - 업로드 파일명으로 전체 경로 조회 (경로 탈출 차단)
func (s *Store) UploadPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid upload file name: %q", name)
	}
	return filepath.Join(s.uploadsDir, name), nil
}

// ResultPath - 결과 파일명으로 전체 경로 조회 (경로 탈출 차단)
func (s *Store) ResultPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid result file name: %q", name)
	}
	return filepath.Join(s.resultsDir, name), nil
}

// ListResults - 생성 결과 파일 목록 (최신순 정렬)
func (s *Store) ListResults() ([]ResultInfo, error) {
	entries, err := os.ReadDir(s.resultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	results := []ResultInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ResultPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Printf("⚠️  Failed to stat %s: %v", entry.Name(), err)
			continue
		}
		results = append(results, ResultInfo{
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	// 최신 파일이 먼저 오도록 정렬
	sort.Slice(results, func(i, j int) bool {
		return results[i].ModTime.After(results[j].ModTime)
	})

	return results, nil
}

// DownloadFromURL - 외부 URL에서 이미지 다운로드
func (s *Store) DownloadFromURL(ctx context.Context, imageURL string) ([]byte, error) {
	log.Printf("📥 Downloading image from: %s", imageURL)

	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ HTTP GET failed: %v", err)
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ Download failed - Status: %d, URL: %s", resp.StatusCode, imageURL)
		return nil, fmt.Errorf("failed to download image: status %d, body: %s", resp.StatusCode, string(body))
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	log.Printf("✅ Image downloaded successfully: %d bytes", len(imageData))
	return imageData, nil
}
