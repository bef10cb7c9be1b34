package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

var ErrInvalidPath = errors.New("filestore: invalid path")

// Store manages files under a single storage root. Every path it accepts or
// returns is relative to that root and uses forward slashes.
type Store interface {
	ResolvePath(rel string) (string, error)
	IsTemporary(rel string) bool
	SaveTemporary(filename string, r io.Reader) (string, error)
	EntityDirectory(entityKind, entityID string) string
	MoveToEntityDirectory(tempRel, entityKind, entityID string) (string, error)
	RemoveIfExists(rel string)
	RemoveTreeIfExists(rel string)
	ListFiles(dirRel string) ([]FileInfo, error)
	TempDir() string
}

type FileInfo struct {
	Path    string
	ModTime time.Time
}

type Config struct {
	Root    string
	TempDir string
}

type localStore struct {
	log     *logger.Logger
	root    string
	tempDir string
}

func New(log *logger.Logger, cfg Config) (Store, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, fmt.Errorf("filestore: root required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("filestore: resolve root: %w", err)
	}
	tempDir := strings.Trim(strings.TrimSpace(cfg.TempDir), "/")
	if tempDir == "" {
		tempDir = "tmp"
	}
	if err := os.MkdirAll(filepath.Join(abs, tempDir), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create temp dir: %w", err)
	}
	return &localStore{
		log:     log.With("service", "FileStore"),
		root:    abs,
		tempDir: tempDir,
	}, nil
}

// ResolvePath maps a stored relative path to an absolute path under the root.
// Absolute inputs and paths escaping the root are rejected.
func (s *localStore) ResolvePath(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	cleaned := path.Clean(filepath.ToSlash(rel))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *localStore) IsTemporary(rel string) bool {
	cleaned := path.Clean(filepath.ToSlash(strings.TrimSpace(rel)))
	return strings.HasPrefix(cleaned, s.tempDir+"/")
}

// SaveTemporary writes r to tmp/<uuid>/<filename> and returns that relative path.
func (s *localStore) SaveTemporary(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filepath.FromSlash(strings.TrimSpace(filename)))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: filename %q", ErrInvalidPath, filename)
	}
	rel := path.Join(s.tempDir, uuid.NewString(), name)
	abs, err := s.ResolvePath(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("filestore: mkdir temp: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("filestore: create temp: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("filestore: write temp: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("filestore: close temp: %w", err)
	}
	return rel, nil
}

func (s *localStore) EntityDirectory(entityKind, entityID string) string {
	return path.Join(entityKind, entityID)
}

// MoveToEntityDirectory renames a temporary upload into
// <entityKind>/<entityID>/<filename> and returns the new relative path. When
// the name is taken, a short random suffix is added before the extension.
func (s *localStore) MoveToEntityDirectory(tempRel, entityKind, entityID string) (string, error) {
	if strings.TrimSpace(entityKind) == "" || strings.TrimSpace(entityID) == "" {
		return "", fmt.Errorf("%w: entity kind and id required", ErrInvalidPath)
	}
	src, err := s.ResolvePath(tempRel)
	if err != nil {
		return "", err
	}
	dstRel := path.Join(s.EntityDirectory(entityKind, entityID), path.Base(filepath.ToSlash(tempRel)))
	dst, err := s.ResolvePath(dstRel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("filestore: mkdir entity dir: %w", err)
	}
	// Never replace a file that a committed row may still reference.
	if _, err := os.Stat(dst); err == nil {
		dstRel = uniqueSibling(dstRel)
		if dst, err = s.ResolvePath(dstRel); err != nil {
			return "", err
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("filestore: move %q: %w", tempRel, err)
	}
	s.log.Debug("File moved", "from", tempRel, "to", dstRel)
	return dstRel, nil
}

func uniqueSibling(rel string) string {
	ext := path.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	return stem + "-" + uuid.NewString()[:8] + ext
}

// RemoveIfExists deletes a single file. Failures are logged and swallowed.
func (s *localStore) RemoveIfExists(rel string) {
	abs, err := s.ResolvePath(rel)
	if err != nil {
		s.log.Warn("Skip file removal", "path", rel, "error", err)
		return
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("File removal failed", "path", rel, "error", err)
		return
	}
	s.log.Debug("File removed", "path", rel)
}

// RemoveTreeIfExists deletes a directory tree. Failures are logged and swallowed.
func (s *localStore) RemoveTreeIfExists(rel string) {
	abs, err := s.ResolvePath(rel)
	if err != nil {
		s.log.Warn("Skip tree removal", "path", rel, "error", err)
		return
	}
	if err := os.RemoveAll(abs); err != nil {
		s.log.Warn("Tree removal failed", "path", rel, "error", err)
		return
	}
	s.log.Debug("Tree removed", "path", rel)
}

// ListFiles walks dirRel and returns every regular file beneath it. A missing
// directory yields an empty list.
func (s *localStore) ListFiles(dirRel string) ([]FileInfo, error) {
	absDir, err := s.ResolvePath(dirRel)
	if err != nil {
		return nil, err
	}
	var out []FileInfo
	err = filepath.WalkDir(absDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, FileInfo{Path: filepath.ToSlash(rel), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filestore: list %q: %w", dirRel, err)
	}
	return out, nil
}

// TempDir returns the relative directory holding temporary uploads.
func (s *localStore) TempDir() string { return s.tempDir }
