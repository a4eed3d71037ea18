package artifact

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(t.TempDir())
	require.NoError(t, store.EnsureDirs())
	return store
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestEnsureDirs(t *testing.T) {
	store := newTestStore(t)

	assert.DirExists(t, store.ResultsDir())
	assert.DirExists(t, store.UploadsDir())
	assert.Equal(t, filepath.Join(store.ResultsDir(), "uploads"), store.UploadsDir())
}

func TestSaveUpload(t *testing.T) {
	store := newTestStore(t)

	req := multipartRequest(t, "photo", "my photo.JPG", []byte("fake image bytes"))
	file, header, err := req.FormFile("photo")
	require.NoError(t, err)
	defer file.Close()

	stored, err := store.SaveUpload(file, header)
	require.NoError(t, err)

	assert.Equal(t, "my photo.JPG", stored.OriginalName)
	assert.True(t, strings.HasPrefix(stored.FileName, UploadPrefix))
	assert.True(t, strings.HasSuffix(stored.FileName, ".jpg"), "extension lowercased and preserved")
	assert.NotContains(t, stored.FileName, "my photo", "original name must not leak into stored name")

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), data)
}

func TestSaveResult(t *testing.T) {
	store := newTestStore(t)

	name, err := store.SaveResult([]byte{0x89, 0x50, 0x4e, 0x47}, ".png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, ResultPrefix))
	assert.True(t, strings.HasSuffix(name, ".png"))

	path, err := store.ResultPath(name)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestUploadPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "../secret.png", "a/b.png", "./x.png"} {
		_, err := store.UploadPath(name)
		assert.Error(t, err, "name %q should be rejected", name)
	}

	path, err := store.UploadPath("upload-abc.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.UploadsDir(), "upload-abc.png"), path)
}

func TestListResultsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	names := []string{}
	for i := 0; i < 3; i++ {
		name, err := store.SaveResult([]byte("img"), ".png")
		require.NoError(t, err)
		names = append(names, name)
	}

	// mtime을 명시적으로 벌려서 정렬을 검증
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path, err := store.ResultPath(name)
		require.NoError(t, err)
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}

	// uploads 폴더의 파일은 목록에 나오면 안 됨
	req := multipartRequest(t, "photo", "src.png", []byte("upload"))
	file, header, err := req.FormFile("photo")
	require.NoError(t, err)
	defer file.Close()
	_, err = store.SaveUpload(file, header)
	require.NoError(t, err)

	results, err := store.ListResults()
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, names[2], results[0].Name)
	assert.Equal(t, names[1], results[1].Name)
	assert.Equal(t, names[0], results[2].Name)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].ModTime.After(results[i].ModTime))
	}
}

func TestDownloadFromURL(t *testing.T) {
	store := newTestStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	data, err := store.DownloadFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestDownloadFromURLFailure(t *testing.T) {
	store := newTestStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := store.DownloadFromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
