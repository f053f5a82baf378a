package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
)

const publicURLPrefix = "https://storage.googleapis.com/"

// MediaClient stores user-owned media in Cloud Storage under
// users/{userId}/{category}/.
type MediaClient struct {
	client *storage.Client
	bucket string
}

func NewMediaClient(ctx context.Context, bucket, credentialsPath string) (*MediaClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &MediaClient{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload streams r into the user's category namespace and reports
// progress. The returned channel delivers zero or more Progress events
// with non-decreasing percent, then exactly one Done or Failed event,
// and then closes. An upload already in flight runs to its terminal
// event even if the initiator stopped listening.
func (c *MediaClient) Upload(ctx context.Context, userID, category string, r io.Reader, size int64, contentType string) <-chan service.UploadEvent {
	out := make(chan service.UploadEvent, 16)

	go func() {
		defer close(out)

		name := objectName(userID, category)
		obj := c.client.Bucket(c.bucket).Object(name)

		wc := obj.NewWriter(ctx)
		wc.ContentType = contentType

		pw := &progressWriter{
			w:     wc,
			total: size,
			report: func(percent int) {
				// Progress is advisory; a slow consumer just misses
				// intermediate values.
				select {
				case out <- service.UploadEvent{Kind: service.UploadProgress, Percent: percent}:
				default:
				}
			},
		}

		if _, err := io.Copy(pw, r); err != nil {
			wc.Close()
			terminal(ctx, out, service.UploadEvent{Kind: service.UploadFailed, Err: errors.Internal("Failed to upload file", err)})
			return
		}
		if err := wc.Close(); err != nil {
			terminal(ctx, out, service.UploadEvent{Kind: service.UploadFailed, Err: errors.Internal("Failed to finalize upload", err)})
			return
		}

		url := publicURLPrefix + c.bucket + "/" + name
		terminal(ctx, out, service.UploadEvent{Kind: service.UploadDone, Percent: 100, URL: url})
	}()

	return out
}

func (c *MediaClient) Delete(ctx context.Context, downloadURL string) error {
	name, err := objectPathFromURL(c.bucket, downloadURL)
	if err != nil {
		return errors.BadRequest("Invalid download reference", err)
	}

	if err := c.client.Bucket(c.bucket).Object(name).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete file", err)
	}
	return nil
}

func (c *MediaClient) Close() error {
	return c.client.Close()
}

func terminal(ctx context.Context, out chan<- service.UploadEvent, event service.UploadEvent) {
	select {
	case out <- event:
	case <-ctx.Done():
	}
}

// objectName builds the per-user, per-category object path. Filenames
// are random with a fixed suffix per category.
func objectName(userID, category string) string {
	prefix := "file"
	switch category {
	case service.MediaCategoryBodyPhotos:
		prefix = "body_photo"
	case service.MediaCategoryGarments:
		prefix = "garment"
	}
	return fmt.Sprintf("users/%s/%s/%s_%s.jpg", userID, category, prefix, uuid.New().String())
}

// objectPathFromURL resolves the object path embedded in a public
// download URL of the form https://storage.googleapis.com/bucket/path.
func objectPathFromURL(bucket, downloadURL string) (string, error) {
	if !strings.HasPrefix(downloadURL, publicURLPrefix) {
		return "", fmt.Errorf("not a storage download URL")
	}

	path := downloadURL[len(publicURLPrefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", fmt.Errorf("download URL does not match bucket %q", bucket)
	}

	return parts[1], nil
}

// progressWriter reports whole-percent progress as bytes pass through.
// Percentages never decrease and top out at 100.
type progressWriter struct {
	w       io.Writer
	total   int64
	written int64
	last    int
	report  func(percent int)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.total > 0 && p.report != nil {
		percent := int(p.written * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent > p.last {
			p.last = percent
			p.report(percent)
		}
	}
	return n, err
}
