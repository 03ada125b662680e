// Package objectstore stores uploaded brand documents on local disk, S3 or MinIO.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	appcfg "github.com/brandhub/core/internal/config"
)

var ErrNotFound = errors.New("object not found")

// Store provides access to object storage.
type Store interface {
	// Put uploads an object and returns the URL it can be fetched from.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a URL produced by Put back to its key.
	KeyFromURL(rawURL string) (string, bool)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg appcfg.StorageConfig, localDir string) (Store, error) {
	switch cfg.Driver {
	case appcfg.StorageS3:
		return NewS3Store(cfg.S3)
	case appcfg.StorageMinio:
		return NewMinioStore(ctx, cfg.S3)
	case appcfg.StorageLocal, "":
		return NewLocalStore(localDir, cfg.Local.PublicURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func normalizeObjectKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	parts := strings.Split(key, "/")
	out := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "/")
}

func encodeObjectKey(key string) string {
	parts := strings.Split(normalizeObjectKey(key), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// keyAfterPrefix strips prefix from rawURL and decodes the remainder as a key.
func keyAfterPrefix(rawURL, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(rawURL, prefix+"/") {
		return "", false
	}
	rest := strings.TrimPrefix(rawURL, prefix+"/")
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	key := normalizeObjectKey(decoded)
	return key, key != ""
}
