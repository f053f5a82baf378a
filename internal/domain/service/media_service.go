package service

import (
	"context"
	"io"
)

// Media categories, each with its own per-user storage namespace.
const (
	MediaCategoryBodyPhotos = "body_photos"
	MediaCategoryGarments   = "garments"
)

type UploadEventKind int

const (
	UploadProgress UploadEventKind = iota
	UploadDone
	UploadFailed
)

// UploadEvent is one value of an upload sequence: zero or more Progress
// events with non-decreasing Percent, then exactly one Done or Failed.
type UploadEvent struct {
	Kind    UploadEventKind
	Percent int
	URL     string
	Err     error
}

// MediaService wraps object storage for user-owned media.
type MediaService interface {
	// Upload streams the object into the user's category namespace. The
	// returned channel closes after its single terminal event.
	Upload(ctx context.Context, userID, category string, r io.Reader, size int64, contentType string) <-chan UploadEvent
	// Delete resolves the storage path embedded in the download URL and
	// removes the object. Failure is reported, not retried.
	Delete(ctx context.Context, downloadURL string) error
}
