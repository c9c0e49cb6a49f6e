// Package storage wraps the MinIO Go client for the object storage backend of
// card snapshots. It works against AWS S3 and self-hosted MinIO alike.
//
// The Client interface only carries the operations snapshots need, so tests can
// replace it with the testify mock in core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
