package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned by FileStore.Get when the object does not exist.
var ErrNotFound = errors.New("object not found")

// EntryType distinguishes regular files from directory prefixes in a listing.
type EntryType string

const (
	// TypeFile is a regular object.
	TypeFile EntryType = "file"
	// TypeDir is a common prefix ("folder").
	TypeDir EntryType = "dir"
)

// Entry is one item of a directory listing.
type Entry struct {
	// Name is the base name (no directory).
	Name string `json:"name"`
	// Path is the full object key.
	Path string `json:"path"`
	// Type is file or dir.
	Type EntryType `json:"type"`
	// Size is the object size in bytes (0 for directories).
	Size int64 `json:"size"`
	// Modified is the last modification time.
	Modified time.Time `json:"modified"`
}

// FileStore is the file transport the sync tasks read feeds from and write
// exports, cursors and reports to.
type FileStore interface {
	// List returns the direct children of dir.
	List(ctx context.Context, dir string) ([]Entry, error)
	// Get returns the full content of the object at p.
	Get(ctx context.Context, p string) ([]byte, error)
	// Put stores data at p, replacing any existing object.
	Put(ctx context.Context, p string, data []byte) error
	// Delete removes the object at p.
	Delete(ctx context.Context, p string) error
}

// Bucket is a FileStore backed by a single S3/MinIO bucket.
type Bucket struct {
	client Client
	bucket string
}

// NewBucket creates a FileStore over the given bucket.
func NewBucket(client Client, bucket string) *Bucket {
	return &Bucket{client: client, bucket: bucket}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.bucket
}

// List returns the direct children of dir. Directory marker objects
// (the zero-byte "dir/" object) are not reported.
func (b *Bucket) List(ctx context.Context, dir string) ([]Entry, error) {
	prefix := strings.Trim(dir, "/")
	if prefix != "" {
		prefix += "/"
	}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var entries []Entry
	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, obj.Err)
		}
		if obj.Key == prefix {
			continue
		}

		entry := Entry{
			Path:     obj.Key,
			Size:     obj.Size,
			Modified: obj.LastModified,
			Type:     TypeFile,
		}
		if strings.HasSuffix(obj.Key, "/") {
			entry.Type = TypeDir
		}
		entry.Name = path.Base(strings.TrimSuffix(obj.Key, "/"))
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get returns the full content of the object at p.
func (b *Bucket) Get(ctx context.Context, p string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, p, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(p, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapNotFound(p, err)
	}
	return data, nil
}

// Put stores data at p.
func (b *Bucket) Put(ctx context.Context, p string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, p, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(p),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", p, err)
	}
	return nil
}

// Delete removes the object at p.
func (b *Bucket) Delete(ctx context.Context, p string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, p, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}

func wrapNotFound(p string, err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", p, err)
}

func contentType(p string) string {
	switch path.Ext(p) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "text/plain"
	}
}
