package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Allowed content types, checked against the sniffed type rather than the
// client's Content-Type header.
var (
	ImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml"}
	VideoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
)

// Saved describes a file written to the upload directory.
type Saved struct {
	Filename     string
	OriginalName string
	MimeType     string
	MediaType    string
	Size         int64
	URL          string
}

// Store validates uploads and writes them under Dir.
type Store struct {
	Dir           string
	BaseURL       string
	MaxImageBytes int64
	MaxVideoBytes int64

	now func() time.Time
}

func NewStore(dir, baseURL string, maxImageBytes, maxVideoBytes int64) *Store {
	return &Store{
		Dir:           dir,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		MaxImageBytes: maxImageBytes,
		MaxVideoBytes: maxVideoBytes,
		now:           time.Now,
	}
}

// Save checks the file's sniffed type and size and writes it to disk.
// Videos are only accepted when allowVideo is set.
func (s *Store) Save(fh *multipart.FileHeader, allowVideo bool) (*Saved, error) {
	if fh == nil {
		return nil, apperror.New(apperror.Validation, "No file uploaded")
	}

	// 1. Sniff the real content type
	src, err := fh.Open()
	if err != nil {
		return nil, apperror.Wrap(apperror.Validation, "Could not read uploaded file", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, apperror.Wrap(apperror.Validation, "Could not read uploaded file", err)
	}

	mediaType, ok := classify(mtype, allowVideo)
	if !ok {
		if allowVideo {
			return nil, apperror.New(apperror.Validation, "File type not allowed. Use JPEG, PNG, WebP, GIF, SVG, MP4, WebM or MOV")
		}
		return nil, apperror.New(apperror.Validation, "File type not allowed. Use JPEG, PNG, WebP, GIF or SVG")
	}

	// 2. Enforce the size ceiling for that kind
	limit := s.MaxImageBytes
	if mediaType == models.MediaTypeVideo {
		limit = s.MaxVideoBytes
	}
	if fh.Size > limit {
		return nil, apperror.New(apperror.Validation, tooLarge(mediaType, limit))
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, apperror.Wrap(apperror.Unknown, "Failed to save file", err)
	}

	// 3. Write under a generated name
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, apperror.Wrap(apperror.Unknown, "Failed to save file", err)
	}
	filename := s.newFilename(extensionFor(mtype))
	dst := filepath.Join(s.Dir, filename)

	out, err := os.Create(dst)
	if err != nil {
		return nil, apperror.Wrap(apperror.Unknown, "Failed to save file", err)
	}
	written, err := io.Copy(out, io.LimitReader(src, limit+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return nil, apperror.Wrap(apperror.Unknown, "Failed to save file", err)
	}
	if written > limit {
		os.Remove(dst)
		return nil, apperror.New(apperror.Validation, tooLarge(mediaType, limit))
	}

	return &Saved{
		Filename:     filename,
		OriginalName: filepath.Base(fh.Filename),
		MimeType:     baseType(mtype.String()),
		MediaType:    mediaType,
		Size:         written,
		URL:          s.URLFor(filename),
	}, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Store) Remove(filename string) error {
	path, ok := s.Resolve(filename)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) URLFor(filename string) string {
	return fmt.Sprintf("%s/uploads/%s", s.BaseURL, filename)
}

// Resolve maps a request path to a file inside Dir. It reports false for
// anything that would escape the directory.
func (s *Store) Resolve(rel string) (string, bool) {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if rel == "" {
		return "", false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", false
		}
	}

	root, err := filepath.Abs(s.Dir)
	if err != nil {
		return "", false
	}
	path := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

func (s *Store) newFilename(ext string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), id[:8], ext)
}

func classify(m *mimetype.MIME, allowVideo bool) (string, bool) {
	for _, t := range ImageTypes {
		if m.Is(t) {
			return models.MediaTypeImage, true
		}
	}
	if allowVideo {
		for _, t := range VideoTypes {
			if m.Is(t) {
				return models.MediaTypeVideo, true
			}
		}
	}
	return "", false
}

func extensionFor(m *mimetype.MIME) string {
	if m.Is("image/jpeg") {
		return ".jpg"
	}
	return m.Extension()
}

func baseType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func tooLarge(mediaType string, limit int64) string {
	return fmt.Sprintf("File too large. Maximum %s size is %dMB", mediaType, limit/(1024*1024))
}
