package blob

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Storage is where quote photos are written.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PublicURL(key string) string
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ObjectName builds a collision-free key: a random uuid followed by the
// sanitised base name of the upload.
func ObjectName(filename string) string {
	return uuid.NewString() + "-" + Sanitize(filename)
}

// Sanitize replaces every character outside [A-Za-z0-9_.-] with "_".
func Sanitize(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return unsafeChars.ReplaceAllString(base, "_")
}

// Memory keeps objects in process. Used when no bucket is configured.
type Memory struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

type Object struct {
	ContentType string
	Data        []byte
}

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: strings.TrimRight(baseURL, "/"), objects: map[string]Object{}}
}

func (m *Memory) Put(ctx context.Context, key, contentType string, body io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return eris.Wrapf(err, "blob: read %s", key)
	}
	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: buf.Bytes()}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}

func (m *Memory) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}
