// Package minio reads slice files from MinIO or any S3-compatible bucket.
// Object keys are treated as slash-separated paths below a root prefix.
package minio

import (
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sw965/atrium/source"
)

type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// Config holds connection settings for New.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Bucket    string
	Prefix    string
}

func New(cfg Config) (*Source, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, err
	}
	return NewSource(client, cfg.Bucket, cfg.Prefix), nil
}

// NewSource wraps an existing client. prefix is prepended to every path.
func NewSource(client *minio.Client, bucket, prefix string) *Source {
	return &Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *Source) key(name string) string {
	k := strings.TrimPrefix(path.Join(s.prefix, filepathToSlash(name)), "/")
	if k == "." {
		return ""
	}
	return k
}

// ReadDir lists the objects and common prefixes directly below dir.
// A directory with no objects below it is reported as not found.
func (s *Source) ReadDir(ctx context.Context, dir string) ([]source.Entry, error) {
	prefix := s.key(dir)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var entries []source.Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		if name == "" {
			continue
		}
		entries = append(entries, source.Entry{Name: name, IsDir: isDir})
	}
	if len(entries) == 0 {
		return nil, &notFoundError{name: dir}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Open fetches one object. Missing keys map to source.ErrNotFound.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.key(name)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, &notFoundError{name: name}
		}
		return nil, err
	}
	return s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
}

type notFoundError struct {
	name string
}

func (e *notFoundError) Error() string {
	return "minio: " + e.name + ": not found"
}

func (e *notFoundError) Unwrap() error {
	return source.ErrNotFound
}

func filepathToSlash(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
