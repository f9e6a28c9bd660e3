// Package blobstore keeps rendered receipts in a gocloud.dev bucket.
package blobstore

import (
	"context"
	"log/slog"

	"marketplace/config"
	"marketplace/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

type bucketReceiptStore struct {
	bucket *blob.Bucket
}

// NewReceiptStore wraps an open bucket.
func NewReceiptStore(bucket *blob.Bucket) service.ReceiptStore {
	return &bucketReceiptStore{bucket: bucket}
}

// Get reads the object stored under key.
func (s *bucketReceiptStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrReceiptNotFound
		}

		return nil, errors.Wrapf(err, "failed to read receipt %s", key)
	}

	return data, nil
}

// Put writes data under key, replacing any previous object.
func (s *bucketReceiptStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return errors.Wrapf(err, "failed to write receipt %s", key)
	}

	return nil
}

// BucketParams holds dependencies for the receipt bucket, injected by Fx
type BucketParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBucket opens the configured receipt bucket and closes it on shutdown.
func NewBucket(params BucketParams) (*blob.Bucket, error) {
	url := params.Config.Receipts.BucketURL

	bucket, err := blob.OpenBucket(params.Ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open receipt bucket %s", url)
	}

	params.Logger.Info("Receipt bucket opened", slog.String("url", url))

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}

// Module provides the receipt store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBucket, NewReceiptStore),
)
