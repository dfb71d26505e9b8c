package usecase

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
)

// inlineMain runs posted work immediately and counts posts.
type inlineMain struct {
	mu    sync.Mutex
	posts int
}

func (m *inlineMain) Post(fn func()) {
	m.mu.Lock()
	m.posts++
	m.mu.Unlock()
	fn()
}

// memStore is an in-memory port.DownloadStore.
type memStore struct {
	dir      string
	files    map[string][]byte
	writeErr error
	// taken makes the next N writes report the destination as existing.
	taken int
}

func newMemStore() *memStore {
	return &memStore{dir: "/home/user/Downloads", files: make(map[string][]byte)}
}

func (s *memStore) Dir() string { return s.dir }

func (s *memStore) WriteFile(_ context.Context, path string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	if s.taken > 0 {
		s.taken--
		s.files[path] = []byte("someone else")
		return port.ErrDestinationExists
	}
	if _, ok := s.files[path]; ok {
		return port.ErrDestinationExists
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) WriteStream(ctx context.Context, path string, r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return n, err
	}
	return n, s.WriteFile(ctx, path, buf.Bytes())
}

// Exists lets memStore double as port.PathProber for name deduplication.
func (s *memStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[filepath.Clean(path)]
	return ok, nil
}

// recordingScripts is a port.ScriptRunner that keeps every script.
type recordingScripts struct {
	scripts []string
}

func (r *recordingScripts) Evaluate(_ context.Context, src string) {
	r.scripts = append(r.scripts, src)
}
