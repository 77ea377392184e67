// Package id generates request identifiers.
//
// IDs are ULIDs: 26 Crockford Base32 characters, lexicographically sortable
// by creation time.
//
//	01AN4Z07BY79KA1307SR9X4MV3
//	前 10 字符: 时间戳 (毫秒)
//	后 16 字符: 随机熵
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator defines the interface for ID generators.
type Generator interface {
	Generate() string
}

// ULIDGenerator produces monotonic ULIDs and is safe for concurrent use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// ULIDOption is a functional option for ULIDGenerator.
type ULIDOption func(*ULIDGenerator)

// WithEntropy sets the random source. It is wrapped in a monotonic reader.
func WithEntropy(r io.Reader) ULIDOption {
	return func(g *ULIDGenerator) {
		g.entropy = ulid.Monotonic(r, 0)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ULIDOption {
	return func(g *ULIDGenerator) {
		g.now = now
	}
}

// NewULIDGenerator creates a new ULID generator.
func NewULIDGenerator(opts ...ULIDOption) *ULIDGenerator {
	// 单调熵源保证同一毫秒内生成的 ID 仍然有序
	g := &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 返回新的 ULID 字符串
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

var (
	defaultGen  Generator
	defaultOnce sync.Once
)

// NewULID returns a ULID from the package-level generator.
func NewULID() string {
	defaultOnce.Do(func() {
		defaultGen = NewULIDGenerator()
	})
	return defaultGen.Generate()
}

// IsValidULID reports whether s parses as a ULID.
func IsValidULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// ULIDTime extracts the embedded timestamp.
func ULIDTime(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
