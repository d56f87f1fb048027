// Package storage persists media attached to received events under a
// configured directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/walink/walink/internal/media"
	"github.com/walink/walink/internal/models"
)

// Store writes received media files. Files are created once and never
// updated or deleted here; there is no index of what has been written.
type Store interface {
	// Save writes one file and returns its full path.
	Save(filename string, data []byte) (string, error)

	// SaveAsync performs the write as a best-effort background task whose
	// outcome is logged, decoupled from the caller's response path.
	SaveAsync(filename string, data []byte)
}

type mediaStore struct {
	dir    string
	logger *zap.Logger
}

// NewMediaStore creates the media directory if needed and returns a store
// over it.
func NewMediaStore(dir string, logger *zap.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	return &mediaStore{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *mediaStore) Save(filename string, data []byte) (string, error) {
	// Base only: derived names must not escape the media directory.
	path := filepath.Join(s.dir, filepath.Base(filename))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return path, nil
}

func (s *mediaStore) SaveAsync(filename string, data []byte) {
	go func() {
		path, err := s.Save(filename, data)
		if err != nil {
			s.logger.Error("Failed to save media file",
				zap.String("filename", filename),
				zap.Error(err))
			return
		}
		s.logger.Info("Media file saved",
			zap.String("path", path),
			zap.Int("bytes", len(data)))
	}()
}

// DeriveFilename picks the name for a received attachment: the declared
// filename for documents, otherwise the message id (falling back to a
// timestamp) plus an extension inferred from the declared filename or the
// MIME subtype.
func DeriveFilename(event *models.InboundEvent) string {
	m := event.Media

	if event.Type == models.KindDocument && m.Filename != "" {
		return filepath.Base(m.Filename)
	}

	base := event.MessageID
	if base == "" {
		base = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	ext := media.ExtFromFilename(m.Filename)
	if ext == "" {
		ext = media.ExtFromMime(m.Mimetype)
	}
	ext, _, _ = strings.Cut(ext, ";")

	return base + ext
}
