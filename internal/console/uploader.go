package console

import (
	"context"
	"fmt"
	"io"

	"github.com/ovenbird/bakehouse/internal/client"
)

// AttachmentSink is the upload slice of the API client.
type AttachmentSink interface {
	Upload(ctx context.Context, inquiryID uint, name, contentType string, r io.Reader) (*client.Attachment, error)
}

type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult records the outcome for one file of a batch.
type UploadResult struct {
	Name       string
	Attachment *client.Attachment
	Err        error
}

// Uploader pushes attachment batches for an inquiry. Limits are checked
// locally first so obviously bad files never hit the wire; the server still
// enforces its own.
type Uploader struct {
	svc          AttachmentSink
	MaxBytes     int64
	MaxFiles     int
	AllowedTypes map[string]bool
}

func NewUploader(svc AttachmentSink, maxBytes int64, maxFiles int, allowed map[string]bool) *Uploader {
	return &Uploader{svc: svc, MaxBytes: maxBytes, MaxFiles: maxFiles, AllowedTypes: allowed}
}

func (u *Uploader) validate(f FileUpload) error {
	if u.MaxBytes > 0 && f.Size > u.MaxBytes {
		return fmt.Errorf("%s is %d bytes, limit is %d", f.Name, f.Size, u.MaxBytes)
	}
	if len(u.AllowedTypes) > 0 && !u.AllowedTypes[f.ContentType] {
		return fmt.Errorf("%s has unsupported type %q", f.Name, f.ContentType)
	}
	return nil
}

// UploadBatch sends the files one at a time. A file that fails, whether at
// validation or on the wire, is recorded and the batch carries on; one bad
// file never sinks the rest.
func (u *Uploader) UploadBatch(ctx context.Context, inquiryID uint, files []FileUpload) ([]UploadResult, error) {
	if u.MaxFiles > 0 && len(files) > u.MaxFiles {
		return nil, fmt.Errorf("batch of %d exceeds the %d file limit", len(files), u.MaxFiles)
	}

	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		res := UploadResult{Name: f.Name}
		if err := u.validate(f); err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		att, err := u.svc.Upload(ctx, inquiryID, f.Name, f.ContentType, f.Reader)
		if err != nil {
			res.Err = err
		} else {
			res.Attachment = att
		}
		results = append(results, res)
	}
	return results, nil
}
