package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Uploader повністю замінює вміст зовнішнього дзеркала новим файлом.
type Uploader interface {
	Upload(ctx context.Context, data []byte) error
}

// FSUploader пише дзеркало у локальний файл (режим без зовнішнього сховища).
type FSUploader struct{ path string }

func NewFSUploader(path string) *FSUploader { return &FSUploader{path: path} }

func (u *FSUploader) Upload(_ context.Context, data []byte) error {
	tmp := u.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(u.path), 0o755); err != nil {
		return fmt.Errorf("creating mirror dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing mirror file: %w", err)
	}
	return os.Rename(tmp, u.path)
}

// MemoryUploader тримає останній завантажений файл у пам'яті; тестовий двійник.
type MemoryUploader struct {
	mu      sync.Mutex
	last    []byte
	uploads int
	Err     error // якщо виставлено — Upload повертає цю помилку
}

func NewMemoryUploader() *MemoryUploader { return &MemoryUploader{} }

func (u *MemoryUploader) Upload(_ context.Context, data []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	u.last = append([]byte(nil), data...)
	u.uploads++
	return nil
}

func (u *MemoryUploader) Last() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.last
}

func (u *MemoryUploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}
