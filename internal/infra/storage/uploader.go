// Package storage implements image uploads on top of portable blob buckets.
package storage

import (
	"context"
	"io"
	"strings"

	"gocloud.dev/blob"

	"nearbasket/config"
	"nearbasket/internal/domain/service"
	"nearbasket/internal/errors"
)

// blobUploader stores images in a gocloud bucket. The bucket URL decides the
// backing store (file://, mem://, or a cloud provider), so the rest of the
// code never cares where bytes actually live.
type blobUploader struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobUploader opens the configured bucket and returns it as a
// service.ImageUploader. The caller owns the returned closer.
func NewBlobUploader(ctx context.Context, cfg *config.Config) (service.ImageUploader, func() error, error) {
	if cfg.Storage == nil || cfg.Storage.BucketURL == "" {
		return nil, nil, errors.New("storage bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Storage.BucketURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open storage bucket")
	}

	uploader := &blobUploader{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}

	return uploader, bucket.Close, nil
}

// Upload writes the image under key and returns the URL it will be served
// from. A failed write leaves no partial object behind.
func (u *blobUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := u.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "write image")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "commit image")
	}

	return u.publicBaseURL + "/" + key, nil
}
