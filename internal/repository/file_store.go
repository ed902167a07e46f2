package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps each collection in <dir>/<name>.json. Writes within one
// process are serialized per collection; separate processes sharing a
// directory are last-writer-wins.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &FileStore{dir: dir, locks: map[string]*sync.Mutex{}}
}

func (s *FileStore) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read(name)
}

func (s *FileStore) read(name string) ([]byte, error) {
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioError("read", name, err)
	}
	return b, nil
}

func (s *FileStore) Write(ctx context.Context, name string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return s.write(name, doc)
}

func (s *FileStore) Update(ctx context.Context, name string, fn func(doc []byte) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	cur, err := s.read(name)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return s.write(name, next)
}

// write replaces the file through a temp file and rename so readers never
// see a partial document.
func (s *FileStore) write(name string, doc []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ioError("write", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return ioError("write", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return ioError("write", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return ioError("write", name, err)
	}
	if err := tmp.Close(); err != nil {
		return ioError("write", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return ioError("write", name, err)
	}
	return nil
}
