// SPDX-License-Identifier: MIT

// Package artifact uploads result documents (flux tables, variability
// ranges, knockout reports) to a blob store. Two drivers exist: a local
// directory and an S3-compatible bucket. Keys are slash-separated and
// relative; objects are write-once.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Driver identifies a store implementation.
type Driver string

const (
	// DriverFS stores objects under a local directory.
	DriverFS Driver = "fs"
	// DriverS3 stores objects in an S3 or MinIO bucket.
	DriverS3 Driver = "s3"
)

var (
	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("artifact: invalid key")
	// ErrExists is returned by Put when the key is already stored.
	ErrExists = errors.New("artifact: object already exists")
	// ErrUnknownDriver is returned by Open for an unsupported driver.
	ErrUnknownDriver = errors.New("artifact: unknown driver")
)

// Info describes a stored object.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// PutOptions carries optional object attributes.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Store is the blob surface used by the CLI.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Config selects and parameterises a driver.
type Config struct {
	Driver    Driver
	Root      string // fs
	Bucket    string // s3
	Region    string // s3, default us-east-1
	Endpoint  string // s3, optional custom endpoint
	PathStyle bool   // s3
}

// Open builds the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFS:
		return NewFS(cfg.Root)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket: cfg.Bucket, Region: cfg.Region, Endpoint: cfg.Endpoint, PathStyle: cfg.PathStyle,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
