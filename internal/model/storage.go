package model

import (
	"context"
	"io"
)

// ArtifactStorage holds model artifacts in object storage.
type ArtifactStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
