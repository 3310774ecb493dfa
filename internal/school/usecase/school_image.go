package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/storage"
)

//nolint:gochecknoglobals // global for fast reuse
var imageContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errImageTooLarge = errors.New("image exceeds max size")

type SchoolImageInput struct {
	File        io.Reader
	ContentType string
}

type SchoolImageOutput struct {
	Key string
}

// SchoolImage stores an uploaded image in object storage and returns the key
// to persist in the school record.
func (s *Usecase) SchoolImage(ctx context.Context, in SchoolImageInput) (*SchoolImageOutput, error) {
	ctx, span := s.startSpan(ctx, "SchoolImage")
	defer span.End()

	if in.File == nil {
		return nil, goerror.NewInvalidInput(nil, "image", "image file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := imageContentTypeExt[contentType]
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "image", "unsupported image content type")
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.school.image_bucket"))
	if bucket == "" {
		slog.ErrorContext(ctx, "school image bucket is not configured")
		return nil, goerror.NewServer(errors.New("image bucket not configured"))
	}

	maxSize := s.cfg.GetInt64("modules.school.image_max_size_bytes")
	if maxSize <= 0 {
		maxSize = 5 << 20
	}

	key := "schools/" + s.uuid.Generate() + ext

	reader := &maxBytesReader{
		r:   in.File,
		max: maxSize,
	}
	if _, err := s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
	}); err != nil {
		if errors.Is(err, errImageTooLarge) {
			return nil, goerror.NewInvalidInput(errImageTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload school image", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SchoolImageOutput{Key: key}, nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errImageTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errImageTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errImageTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
