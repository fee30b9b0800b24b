package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Bucket is a public object-storage bucket.
type Bucket string

const (
	BucketPublicImages Bucket = "public-images"
	BucketResume       Bucket = "resume"
	BucketAbout        Bucket = "about"
)

// ErrUnknownBucket is returned for a bucket outside the fixed set.
var ErrUnknownBucket = errors.New("storage: unknown bucket")

// ParseBucket validates a bucket name.
func ParseBucket(name string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(name)); b {
	case BucketPublicImages, BucketResume, BucketAbout:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBucket, name)
}

// Buckets resolves public URLs for stored objects. Uploading is handled
// by whatever hosts the buckets.
type Buckets struct {
	BaseURL string
}

// PublicURL returns the public URL of path inside bucket. It returns ""
// when no base URL is configured.
func (b Buckets) PublicURL(bucket Bucket, path string) (string, error) {
	if _, err := ParseBucket(string(bucket)); err != nil {
		return "", err
	}
	if b.BaseURL == "" {
		return "", nil
	}
	u, err := url.JoinPath(b.BaseURL, string(bucket), strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("storage: bad bucket base URL: %w", err)
	}
	return u, nil
}

// AssetURL returns the public URL of a stored asset.
func (b Buckets) AssetURL(a Asset) (string, error) {
	return b.PublicURL(a.Bucket, a.Path)
}
