package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

type AttachmentsService struct {
	api *Client
}

func NewAttachmentsService(api *Client) *AttachmentsService {
	return &AttachmentsService{api: api}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Upload posts one file under the "file" form field. The part carries the
// file's real content type, not application/octet-stream, so the server's
// type check sees what the caller declared.
func (s *AttachmentsService) Upload(ctx context.Context, inquiryID uint, name string, contentType string, r io.Reader) (*Attachment, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	var att Attachment
	path := fmt.Sprintf("/api/v1/admin/inquiries/%d/attachments", inquiryID)
	if err := s.api.PostMultipart(ctx, path, &buf, w.FormDataContentType(), &att); err != nil {
		return nil, err
	}
	return &att, nil
}

func (s *AttachmentsService) List(ctx context.Context, inquiryID uint) ([]Attachment, error) {
	var atts []Attachment
	path := fmt.Sprintf("/api/v1/admin/inquiries/%d/attachments", inquiryID)
	if err := s.api.Get(ctx, path, &atts); err != nil {
		return nil, err
	}
	return atts, nil
}

func (s *AttachmentsService) Delete(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/attachments/%d", id), nil)
}

func (s *AttachmentsService) DeleteAll(ctx context.Context, inquiryID uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d/attachments", inquiryID), nil)
}

func (s *AttachmentsService) Stats(ctx context.Context, inquiryID uint) (*AttachmentStats, error) {
	var stats AttachmentStats
	path := fmt.Sprintf("/api/v1/admin/inquiries/%d/attachments/stats", inquiryID)
	if err := s.api.Get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
