package service

import (
	"context"
	"io"
)

// ImageUploader stores a product or shop image and returns the public URL it
// will be served from.
type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
