package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Storage is the object store the handlers depend on: write by path, delete
// by path, derive public URLs. Implemented by GCS in production and by an
// in-memory fake in tests.
type Storage interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
	// ObjectPath is the inverse of PublicURL: it extracts the object path
	// from one of our public URLs, or returns "" for foreign URLs.
	ObjectPath(rawURL string) string
}

// GCS stores objects in a Google Cloud Storage bucket.
type GCS struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCS connects to Google Cloud Storage. Credentials come from ADC
// (service account on the host, GOOGLE_APPLICATION_CREDENTIALS) unless an
// explicit JSON key is passed. baseURL overrides the public URL prefix when
// the bucket is served through a CDN; empty means the standard
// storage.googleapis.com form.
func NewGCS(ctx context.Context, bucket, credentialsJSON, baseURL string) (*GCS, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://storage.googleapis.com/%s", bucket)
	}

	return &GCS{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (g *GCS) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	w := g.client.Bucket(g.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return g.PublicURL(path), nil
}

func (g *GCS) Delete(ctx context.Context, path string) error {
	return g.client.Bucket(g.bucket).Object(path).Delete(ctx)
}

func (g *GCS) PublicURL(path string) string {
	return g.baseURL + "/" + path
}

func (g *GCS) ObjectPath(rawURL string) string {
	return objectPath(g.baseURL, rawURL)
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func objectPath(baseURL, rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if _, err := url.Parse(rawURL); err != nil {
		return ""
	}
	rest, ok := strings.CutPrefix(rawURL, baseURL+"/")
	if !ok {
		return ""
	}
	return rest
}
