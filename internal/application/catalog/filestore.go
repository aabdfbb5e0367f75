package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileStore abstracts physical file storage for attachment payloads.
// Keys are opaque references recorded on attachment rows.
type FileStore interface {
	// Save writes the payload under the given key
	Save(ctx context.Context, key string, data []byte, contentType string) error

	// Read returns the payload stored under the key
	Read(ctx context.Context, key string) ([]byte, error)

	// Delete removes the payload. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a payload is stored under the key
	Exists(ctx context.Context, key string) (bool, error)
}

// GenerateKey builds a unique storage key for an uploaded file,
// keeping the original extension
func GenerateKey(filename string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(suffix), ext)
}
