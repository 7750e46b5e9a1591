// Package media removes stored objects (gallery images, payment proofs) from object storage.
// Uploads happen client-side; the backend only keeps the references it is handed.
package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type Store interface {
	Delete(ctx context.Context, ref string) error
}

type Noop struct{}

func (Noop) Delete(context.Context, string) error { return nil }

type OSS struct {
	bucket *oss.Bucket
}

func NewOSS(endpoint, accessKey, secretKey, bucketName string) (*OSS, error) {
	client, err := oss.New(normalizeEndpoint(endpoint), accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", bucketName, err)
	}
	return &OSS{bucket: bucket}, nil
}

func (o *OSS) Delete(ctx context.Context, ref string) error {
	key := ObjectKey(ref)
	if key == "" {
		return fmt.Errorf("empty object reference")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// ObjectKey turns a stored reference (bare key or full URL) into a bucket object key.
func ObjectKey(ref string) string {
	ref = strings.TrimSpace(ref)
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	return strings.TrimPrefix(ref, "/")
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return endpoint
}
