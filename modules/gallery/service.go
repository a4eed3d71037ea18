package gallery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
	"github.com/gaogang1011/exhibition-app/modules/common/utils"
)

type Service struct {
	store *artifact.Store
}

func NewService(store *artifact.Store) *Service {
	return &Service{store: store}
}

// List - 생성 결과 목록 (최신순)
func (s *Service) List() ([]ImageInfo, error) {
	results, err := s.store.ListResults()
	if err != nil {
		return nil, err
	}

	images := make([]ImageInfo, 0, len(results))
	for _, r := range results {
		images = append(images, ImageInfo{
			URL:       "/ai-results/" + r.Name,
			Filename:  r.Name,
			Timestamp: r.ModTime,
		})
	}
	return images, nil
}

// LoadOriginal - 결과 파일 원본 바이트 로드
func (s *Service) LoadOriginal(name string) ([]byte, error) {
	path, err := s.store.ResultPath(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// LoadResized - 최대 너비 제한으로 축소 후 저장 포맷 그대로 재인코딩
// 원본이 이미 제한 이하면 원본 바이트를 그대로 반환 (절대 확대하지 않음)
func (s *Service) LoadResized(name string, maxWidth int) ([]byte, error) {
	data, err := s.LoadOriginal(name)
	if err != nil {
		return nil, err
	}

	if maxWidth <= 0 {
		return data, nil
	}

	img, format, err := utils.DecodeImage(data)
	if err != nil {
		// 디코드 불가 파일은 원본 그대로 전달
		log.Printf("⚠️  [Gallery] Failed to decode %s, serving original: %v", name, err)
		return data, nil
	}

	if img.Bounds().Dx() <= maxWidth {
		return data, nil
	}

	resized := utils.ScaleToMaxWidth(img, maxWidth)
	encoded, err := utils.EncodeImage(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode resized image: %w", err)
	}

	log.Printf("🔄 [Gallery] Resized %s: %dpx → %dpx wide", name, img.Bounds().Dx(), maxWidth)
	return encoded, nil
}

// 프리뷰 WebP 인코딩 품질
const previewQuality = 90

// LoadPreview - 썸네일용 WebP 프리뷰 (최대 512px)
func (s *Service) LoadPreview(name string) ([]byte, error) {
	data, err := s.LoadOriginal(name)
	if err != nil {
		return nil, err
	}

	img, _, err := utils.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	// 제한 이하 원본은 축소 없이 바로 변환
	if img.Bounds().Dx() <= SizeSmallMaxWidth {
		return utils.ConvertToWebP(data, previewQuality)
	}

	resized := utils.ScaleToMaxWidth(img, SizeSmallMaxWidth)
	return utils.EncodeImage(resized, "webp")
}

// contentTypeFor - 확장자로 Content-Type 결정
func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
