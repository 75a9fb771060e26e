// Package upload implements the client-side image upload helper: batch
// validation before any network call, a single multipart request, and an
// ordered in-memory list of the uploaded URLs.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
)

// MaxFileSize is the per-file ceiling (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

// MaxImages is the cumulative ceiling per listing.
const MaxImages = 5

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Validation failures. Each aborts the whole batch before any upload request
// is issued.
var (
	ErrBadType  = errors.New("Only JPEG, PNG, and WebP images are allowed")
	ErrTooLarge = errors.New("Each image must be smaller than 5MB")
	ErrTooMany  = fmt.Errorf("Maximum %d images allowed per item", MaxImages)
)

// Backend is the slice of the HTTP client the uploader needs.
type Backend interface {
	PostMultipart(ctx context.Context, path string, files []api.FileUpload, out any) error
}

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type imagesPayload struct {
	Images []string `json:"images"`
}

// Uploader accumulates uploaded image URLs for one listing draft.
//
// Concurrent Upload calls are not deduplicated; callers gate on Uploading()
// instead of relying on internal serialization.
type Uploader struct {
	backend Backend
	notify  Notifier

	mu        sync.Mutex
	urls      []string
	uploading bool
}

func NewUploader(backend Backend, notify Notifier) *Uploader {
	return &Uploader{backend: backend, notify: notify}
}

// Upload validates the batch and, if it passes, issues one multipart request
// and appends the returned URLs. Validation order: type, size, count.
func (u *Uploader) Upload(ctx context.Context, files []api.FileUpload) error {
	if len(files) == 0 {
		return nil
	}

	for _, f := range files {
		if !allowedTypes[f.ContentType] {
			u.notify.Error(ErrBadType.Error())
			return ErrBadType
		}
	}
	for _, f := range files {
		if len(f.Data) > MaxFileSize {
			u.notify.Error(ErrTooLarge.Error())
			return ErrTooLarge
		}
	}

	u.mu.Lock()
	if len(u.urls)+len(files) > MaxImages {
		u.mu.Unlock()
		u.notify.Error(ErrTooMany.Error())
		return ErrTooMany
	}
	u.uploading = true
	u.mu.Unlock()

	var payload imagesPayload
	err := u.backend.PostMultipart(ctx, api.EndpointUploadImages, files, &payload)

	u.mu.Lock()
	u.uploading = false
	if err == nil {
		u.urls = append(u.urls, payload.Images...)
	}
	u.mu.Unlock()

	if err != nil {
		u.notify.Error(errMessage(err, "Failed to upload images"))
		return err
	}

	u.notify.Success(fmt.Sprintf("Successfully uploaded %d image(s)", len(payload.Images)))
	return nil
}

// Images returns a copy of the accumulated URL list, in upload order.
func (u *Uploader) Images() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.urls))
	copy(out, u.urls)
	return out
}

// RemoveAt drops the URL at position i. Out-of-range positions are ignored.
func (u *Uploader) RemoveAt(i int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if i < 0 || i >= len(u.urls) {
		return
	}
	u.urls = append(u.urls[:i], u.urls[i+1:]...)
}

// Clear forgets all accumulated URLs.
func (u *Uploader) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.urls = nil
}

// Uploading reports whether an upload call is in flight. Exposed for UI
// gating.
func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
