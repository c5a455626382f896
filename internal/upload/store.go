package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studytoolsai/internal/extract"

	"github.com/google/uuid"
)

// DefaultMaxFileSize bounds uploads when MAX_FILE_SIZE is not configured (10 MiB).
const DefaultMaxFileSize = 10 << 20

// allowedMediaTypes is the upload allow-list. Anything else is rejected
// before the extraction core ever sees the file.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"text/plain":      true,
}

var (
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMediaTypeNotAllowed = errors.New("media type not allowed")
	ErrEmptyFile           = errors.New("uploaded file is empty")
)

// Store writes uploaded parts into a fixed uploads directory. Filenames get a
// timestamp plus random suffix so concurrent requests never collide; each
// request owns a distinct path and no locking is needed.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates the uploads directory if absent and returns a store bound
// to it.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Save validates the multipart part against the size limit and media-type
// allow-list, writes its bytes to a uniquely named file under the uploads
// directory, and hands back the UploadedFile the extraction core takes
// ownership of.
func (s *Store) Save(header *multipart.FileHeader) (extract.UploadedFile, error) {
	if header.Size == 0 {
		return extract.UploadedFile{}, fmt.Errorf("%w: %s", ErrEmptyFile, header.Filename)
	}
	if header.Size > s.maxSize {
		return extract.UploadedFile{}, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, header.Filename, header.Size, s.maxSize)
	}

	mediaType := MediaTypeFor(header)
	if !allowedMediaTypes[mediaType] {
		return extract.UploadedFile{}, fmt.Errorf("%w: %s", ErrMediaTypeNotAllowed, mediaType)
	}

	src, err := header.Open()
	if err != nil {
		return extract.UploadedFile{}, fmt.Errorf("open uploaded file %s: %w", header.Filename, err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), strings.ToLower(filepath.Ext(header.Filename)))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return extract.UploadedFile{}, fmt.Errorf("create temporary file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return extract.UploadedFile{}, fmt.Errorf("write temporary file for %s: %w", header.Filename, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return extract.UploadedFile{}, fmt.Errorf("close temporary file for %s: %w", header.Filename, err)
	}

	return extract.UploadedFile{
		TempPath:     path,
		MediaType:    mediaType,
		OriginalName: header.Filename,
	}, nil
}

// MediaTypeFor resolves the declared media type of a part. The part's
// Content-Type header wins; when a client sends nothing useful the file
// extension decides, mirroring how browsers fill in multipart uploads.
func MediaTypeFor(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
