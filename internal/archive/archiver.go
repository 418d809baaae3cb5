package archive

import "context"

// Archiver stores the original photo bytes under a key. Archival is
// best-effort: callers discard errors and never gate the response on it.
type Archiver interface {
	Store(ctx context.Context, key string, data []byte) error
}

// NoopArchiver is used when no archive backend is configured.
type NoopArchiver struct{}

func (NoopArchiver) Store(ctx context.Context, key string, data []byte) error {
	return nil
}
