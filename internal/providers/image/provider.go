package image

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("image_hosting_not_configured")

// Provider hosts uploaded images and returns a public URL.
type Provider interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	return "", ErrNotConfigured
}
