// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, so both AWS S3 and self-hosted MinIO can serve as the
// file store the sync tasks read feeds from and write exports, cursors and run reports to.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # FileStore
//
// FileStore is the path-oriented view the sync engine consumes: List, Get, Put and
// Delete. Bucket implements it over a Client. A missing object is reported as
// ErrNotFound so callers (the cursor store) can tell "first run" apart from a failure.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	files := storage.NewBucket(client, cfg.Storage.Bucket)
//	entries, err := files.List(ctx, "feeds/inventory")
package storage
