// Package storage provides the image store collaborator. The rest of the
// application only ever holds the opaque reference strings issued here.
package storage

import (
	"context"
	"io"
)

// Store saves image data and hands back an opaque reference. References are
// persisted on posts and passed back to Remove when a post or its image is
// deleted; callers never interpret them as paths.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}
