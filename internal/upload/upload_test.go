package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 56)...)
	mp4Bytes = append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isommp42"), make([]byte, 40)...)
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newStore(t *testing.T) *Store {
	return NewStore(t.TempDir(), "http://cdn.test/", 1024, 4096)
}

func TestSave_Image(t *testing.T) {
	s := newStore(t)

	saved, err := s.Save(fileHeader(t, "kaaba.png", pngBytes), false)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{13}-[0-9a-f]{8}\.png$`), saved.Filename)
	assert.Equal(t, "kaaba.png", saved.OriginalName)
	assert.Equal(t, "image/png", saved.MimeType)
	assert.Equal(t, models.MediaTypeImage, saved.MediaType)
	assert.Equal(t, int64(len(pngBytes)), saved.Size)
	assert.Equal(t, "http://cdn.test/uploads/"+saved.Filename, saved.URL)

	onDisk, err := os.ReadFile(filepath.Join(s.Dir, saved.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, onDisk)
}

func TestSave_ExtensionFollowsContent(t *testing.T) {
	s := newStore(t)

	saved, err := s.Save(fileHeader(t, "photo.txt", pngBytes), false)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(saved.Filename))
}

func TestSave_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    []byte
		allowVideo bool
	}{
		{"plain text", "notes.png", []byte("just some text pretending to be an image"), true},
		{"video on image endpoint", "umroh.mp4", mp4Bytes, false},
		{"image over ceiling", "big.png", append(pngBytes, make([]byte, 2048)...), false},
		{"video over ceiling", "big.mp4", append(mp4Bytes, make([]byte, 8192)...), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)

			_, err := s.Save(fileHeader(t, tt.file, tt.content), tt.allowVideo)
			require.Error(t, err)
			assert.Equal(t, apperror.Validation, apperror.From(err).Kind)

			entries, err := os.ReadDir(s.Dir)
			if err == nil {
				assert.Empty(t, entries)
			}
		})
	}
}

func TestSave_Video(t *testing.T) {
	s := newStore(t)

	saved, err := s.Save(fileHeader(t, "manasik.mp4", mp4Bytes), true)
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeVideo, saved.MediaType)
	assert.Equal(t, ".mp4", filepath.Ext(saved.Filename))
}

func TestSave_AllowedTypes(t *testing.T) {
	tests := []struct {
		name      string
		content   []byte
		mimeType  string
		mediaType string
		ext       string
	}{
		{"jpeg", append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 32)...), "image/jpeg", models.MediaTypeImage, ".jpg"},
		{"png", pngBytes, "image/png", models.MediaTypeImage, ".png"},
		{"webp", append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 32)...), "image/webp", models.MediaTypeImage, ".webp"},
		{"gif", append([]byte("GIF89a\x01\x00\x01\x00"), make([]byte, 32)...), "image/gif", models.MediaTypeImage, ".gif"},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`), "image/svg+xml", models.MediaTypeImage, ".svg"},
		{"mp4", mp4Bytes, "video/mp4", models.MediaTypeVideo, ".mp4"},
		{"webm", append([]byte("\x1a\x45\xdf\xa3\x9f\x42\x86\x81\x01\x42\x82\x84webm\x42\x87\x81\x02"), make([]byte, 32)...), "video/webm", models.MediaTypeVideo, ".webm"},
		{"quicktime", append([]byte("\x00\x00\x00\x14ftypqt  \x00\x00\x02\x00qt  "), make([]byte, 32)...), "video/quicktime", models.MediaTypeVideo, ".mov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)

			saved, err := s.Save(fileHeader(t, "upload.bin", tt.content), true)
			require.NoError(t, err)
			assert.Equal(t, tt.mimeType, saved.MimeType)
			assert.Equal(t, tt.mediaType, saved.MediaType)
			assert.Equal(t, tt.ext, filepath.Ext(saved.Filename))

			// The image-only endpoint takes images and nothing else
			_, err = s.Save(fileHeader(t, "upload.bin", tt.content), false)
			if tt.mediaType == models.MediaTypeImage {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSave_MissingFile(t *testing.T) {
	_, err := newStore(t).Save(nil, false)
	require.Error(t, err)
	assert.Equal(t, apperror.Validation, apperror.From(err).Kind)
}

func TestResolve(t *testing.T) {
	s := newStore(t)
	root, err := filepath.Abs(s.Dir)
	require.NoError(t, err)

	path, ok := s.Resolve("/a.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a.png"), path)

	for _, bad := range []string{"", "/", "../secret", "/../../etc/passwd", "x/../../y"} {
		_, ok := s.Resolve(bad)
		assert.False(t, ok, bad)
	}
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	saved, err := s.Save(fileHeader(t, "a.png", pngBytes), false)
	require.NoError(t, err)

	require.NoError(t, s.Remove(saved.Filename))
	_, err = os.Stat(filepath.Join(s.Dir, saved.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(saved.Filename))
}
