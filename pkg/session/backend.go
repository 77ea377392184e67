package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/medreq/pkg/utils/json"
)

// ErrNotFound is returned by a Backend when the key is absent.
var ErrNotFound = errors.New("session: key not found")

// Backend is a flat string key/value store modelled on browser localStorage.
type Backend interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// MemoryBackend keeps items in process memory.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

func (m *MemoryBackend) GetItem(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBackend) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryBackend) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored items.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// FileBackend stores all items as one JSON object in a file readable only by
// the owner. The file is removed once it holds no items.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend returns a FileBackend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the file location.
func (f *FileBackend) Path() string {
	return f.path
}

// load reads the file. A file that is not a JSON object is reported as
// corrupt and treated as empty so logout and login can replace it.
func (f *FileBackend) load() (items map[string]string, corrupt bool, err error) {
	items = make(map[string]string)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return items, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(b) == 0 {
		return items, false, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		logger.Warnw("Ignoring corrupt session file", "path", f.path, "error", err.Error())
		return make(map[string]string), true, nil
	}
	return items, false, nil
}

func (f *FileBackend) save(items map[string]string) error {
	if len(items) == 0 {
		err := os.Remove(f.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}

	// 先写临时文件再 rename，避免中途失败留下半个文件
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileBackend) GetItem(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, _, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileBackend) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, _, err := f.load()
	if err != nil {
		return err
	}
	items[key] = value
	return f.save(items)
}

func (f *FileBackend) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, corrupt, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok && !corrupt {
		return nil
	}
	delete(items, key)
	return f.save(items)
}

// RedisBackend stores items as plain redis strings under a key prefix.
type RedisBackend struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedisBackend returns a RedisBackend using keys "<prefix><key>".
func NewRedisBackend(rdb goredis.UniversalClient, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (r *RedisBackend) GetItem(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisBackend) SetItem(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisBackend) RemoveItem(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}
