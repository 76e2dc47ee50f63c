// Package storage stores uploaded images and returns their public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Buckets group uploads by what they illustrate.
const (
	BucketProjects = "project-images"
	BucketPages    = "page-images"
	BucketContacts = "contact-images"
)

var ErrUnknownBucket = errors.New("unknown bucket")

// Storage saves and deletes blobs by key.
type Storage interface {
	// Save stores data under key and returns its public URL.
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a URL returned by Save back to its key.
	KeyFromURL(url string) (key string, ok bool)
}

// ValidBucket reports whether b is one of the known buckets.
func ValidBucket(b string) bool {
	return b == BucketProjects || b == BucketPages || b == BucketContacts
}

// NewKey returns a fresh key "<bucket>/<uuid><ext>".
func NewKey(bucket, ext string) (string, error) {
	if !ValidBucket(bucket) {
		return "", ErrUnknownBucket
	}
	return path.Join(bucket, uuid.NewString()+ext), nil
}

// keyFromURL strips prefix from url and rejects keys escaping the store.
func keyFromURL(prefix, url string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	clean := path.Clean(key)
	if key == "" || clean != key || strings.HasPrefix(clean, "../") || clean == ".." || path.IsAbs(clean) {
		return "", false
	}
	return clean, true
}
