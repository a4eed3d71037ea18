package gallery

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaogang1011/exhibition-app/modules/common/artifact"
	"github.com/gaogang1011/exhibition-app/modules/common/utils"
)

func newTestHandler(t *testing.T) (*mux.Router, *artifact.Store) {
	t.Helper()

	store := artifact.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDirs())

	r := mux.NewRouter()
	NewHandler(store).RegisterRoutes(r)
	return r, store
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// writeResult - 결과 폴더에 파일 직접 배치 (수정 시각 지정)
func writeResult(t *testing.T, store *artifact.Store, name string, data []byte, modTime time.Time) {
	t.Helper()
	path := filepath.Join(store.ResultsDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestGalleryListNewestFirst(t *testing.T) {
	router, store := newTestHandler(t)

	now := time.Now()
	writeResult(t, store, "ai-result-old.png", pngBytes(t, 10, 10), now.Add(-2*time.Hour))
	writeResult(t, store, "ai-result-new.png", pngBytes(t, 10, 10), now)
	writeResult(t, store, "ai-result-mid.png", pngBytes(t, 10, 10), now.Add(-1*time.Hour))
	// 접두사가 다른 파일은 목록에서 제외
	writeResult(t, store, "notes.txt", []byte("x"), now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/gallery-list", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 3)
	assert.Equal(t, "ai-result-new.png", resp.Images[0].Filename)
	assert.Equal(t, "ai-result-mid.png", resp.Images[1].Filename)
	assert.Equal(t, "ai-result-old.png", resp.Images[2].Filename)
	assert.Equal(t, "/ai-results/ai-result-new.png", resp.Images[0].URL)
}

func TestGalleryListEmpty(t *testing.T) {
	router, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/gallery-list", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Images)
}

func TestDownloadOriginal(t *testing.T) {
	router, store := newTestHandler(t)

	original := pngBytes(t, 64, 48)
	writeResult(t, store, "ai-result-a.png", original, time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/download/ai-result-a.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// size 미지정은 바이트 그대로
	assert.Equal(t, original, rec.Body.Bytes())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ai-result-a.png")
}

func TestDownloadSmallShrinksWide(t *testing.T) {
	router, store := newTestHandler(t)

	writeResult(t, store, "ai-result-wide.png", pngBytes(t, 1100, 700), time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/download/ai-result-wide.png?size=small", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	img, format, err := utils.DecodeImage(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, SizeSmallMaxWidth, img.Bounds().Dx())
}

func TestDownloadMediumLimit(t *testing.T) {
	router, store := newTestHandler(t)

	writeResult(t, store, "ai-result-wide.png", pngBytes(t, 1600, 900), time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/download/ai-result-wide.png?size=medium", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	img, _, err := utils.DecodeImage(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, SizeMediumMaxWidth, img.Bounds().Dx())
}

func TestDownloadSmallNeverEnlarges(t *testing.T) {
	router, store := newTestHandler(t)

	original := pngBytes(t, 300, 200)
	writeResult(t, store, "ai-result-small.png", original, time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/download/ai-result-small.png?size=small", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// 제한 이하의 원본은 재인코딩 없이 그대로
	assert.Equal(t, original, rec.Body.Bytes())
}

func TestDownloadMissingFile(t *testing.T) {
	router, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/download/ai-result-nope.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreviewShrinksToWebP(t *testing.T) {
	router, store := newTestHandler(t)

	writeResult(t, store, "ai-result-wide.png", pngBytes(t, 1100, 700), time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/preview/ai-result-wide.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	img, format, err := utils.DecodeImage(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, SizeSmallMaxWidth, img.Bounds().Dx())
}

func TestPreviewSmallOriginalKeepsSize(t *testing.T) {
	router, store := newTestHandler(t)

	writeResult(t, store, "ai-result-small.png", pngBytes(t, 300, 200), time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/preview/ai-result-small.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// 제한 이하 원본은 크기 그대로 WebP 변환
	img, format, err := utils.DecodeImage(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestPreviewMissingFile(t *testing.T) {
	router, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/preview/ai-result-nope.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSizeToMaxWidth(t *testing.T) {
	assert.Equal(t, SizeSmallMaxWidth, sizeToMaxWidth("small"))
	assert.Equal(t, SizeMediumMaxWidth, sizeToMaxWidth("medium"))
	assert.Equal(t, 0, sizeToMaxWidth("large"))
	assert.Equal(t, 0, sizeToMaxWidth(""))
	assert.Equal(t, 0, sizeToMaxWidth("huge"))
}
