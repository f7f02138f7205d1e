package publisher

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"landing_page_studio/generator"
)

// Publisher writes export artifacts to a directory.
type Publisher struct {
	dir    string
	logger *slog.Logger
}

// New creates a Publisher rooted at dir, creating it if needed.
func New(dir string, logger *slog.Logger) (*Publisher, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{dir: dir, logger: logger}, nil
}

// Write renders c in each format and returns the written paths.
func (p *Publisher) Write(c generator.ContentModel, formats ...Format) ([]string, error) {
	if len(formats) == 0 {
		formats = []Format{FormatHTML, FormatComponent}
	}
	var paths []string
	for _, f := range formats {
		content, err := Render(c, f)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(p.dir, Filename(c, f))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		p.logger.Info("artifact written", "format", f, "path", path, "digest", Digest(content))
		paths = append(paths, path)
	}
	return paths, nil
}

// Digest is the hex BLAKE3 hash of an artifact, used as its HTTP ETag.
func Digest(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
