// Package filestore keeps a whole post collection in one JSON array file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/postkeeper/core/internal/domain/entities"
	"github.com/postkeeper/core/internal/infrastructure/config"
	"github.com/postkeeper/core/internal/infrastructure/logger"
	"github.com/postkeeper/core/internal/ports"
)

const defaultFileMode os.FileMode = 0o644

// RecordStore implements ports.RecordStore on a single JSON file.
// It does no locking of its own.
type RecordStore struct {
	path   string
	mode   os.FileMode
	sync   bool
	logger *logger.Logger
}

var _ ports.RecordStore = (*RecordStore)(nil)

// New creates a record store for the file configured in cfg
func New(cfg config.StoreConfig, appLogger *logger.Logger) *RecordStore {
	mode := cfg.FileMode
	if mode == 0 {
		mode = defaultFileMode
	}
	if appLogger == nil {
		appLogger = logger.NewNop()
	}
	return &RecordStore{
		path:   cfg.Path,
		mode:   mode,
		sync:   cfg.Sync,
		logger: appLogger.WithComponent("filestore"),
	}
}

// Path returns the store file path
func (s *RecordStore) Path() string {
	return s.path
}

// Init creates the store file holding an empty collection if it is missing.
// An existing file is left untouched. It reports whether a file was created.
func (s *RecordStore) Init() (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, &entities.StoreReadError{Path: s.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, &entities.StoreWriteError{Path: s.path, Err: fmt.Errorf("create dir: %w", err)}
	}
	if err := s.writeAtomic([]byte("[]\n")); err != nil {
		return false, &entities.StoreWriteError{Path: s.path, Err: err}
	}

	s.logger.Infow("Initialized empty record store", "path", s.path)
	return true, nil
}

// LoadAll reads and parses the whole collection
func (s *RecordStore) LoadAll(ctx context.Context) ([]*entities.Post, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts, err := s.load()
	s.logger.LogStoreOperation("load", s.path, len(posts), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *RecordStore) load() ([]*entities.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &entities.StoreReadError{Path: s.path, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &entities.StoreReadError{Path: s.path, Err: errors.New("content is not a JSON array")}
	}

	var posts []*entities.Post
	if err := json.Unmarshal(trimmed, &posts); err != nil {
		return nil, &entities.StoreReadError{Path: s.path, Err: fmt.Errorf("decode posts: %w", err)}
	}

	for i, p := range posts {
		if p == nil {
			return nil, &entities.StoreReadError{Path: s.path, Err: fmt.Errorf("record %d is null", i)}
		}
	}
	if posts == nil {
		posts = []*entities.Post{}
	}
	return posts, nil
}

// SaveAll replaces the stored collection with posts. The write is not
// cancelled by ctx: once called it runs to completion.
func (s *RecordStore) SaveAll(ctx context.Context, posts []*entities.Post) error {
	start := time.Now()

	if posts == nil {
		posts = []*entities.Post{}
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		err = &entities.StoreWriteError{Path: s.path, Err: fmt.Errorf("encode posts: %w", err)}
		s.logger.LogStoreOperation("save", s.path, len(posts), time.Since(start), err)
		return err
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		err = &entities.StoreWriteError{Path: s.path, Err: err}
		s.logger.LogStoreOperation("save", s.path, len(posts), time.Since(start), err)
		return err
	}

	s.logger.LogStoreOperation("save", s.path, len(posts), time.Since(start), nil)
	return nil
}

// writeAtomic writes content to a temp file in the target directory and
// renames it over the store file.
func (s *RecordStore) writeAtomic(content []byte) error {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if s.sync {
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return fmt.Errorf("sync temp file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, s.mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true

	if s.sync {
		syncDir(dir)
	}
	return nil
}

// syncDir flushes the directory entry after a rename. Not every platform
// supports fsync on directories, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
