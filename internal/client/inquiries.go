package client

import (
	"context"
	"fmt"
	"net/url"
)

type InquiriesService struct {
	api *Client
}

func NewInquiriesService(api *Client) *InquiriesService {
	return &InquiriesService{api: api}
}

type InquiryRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Message    string `json:"message"`
	CategoryID uint   `json:"inquiry_category_id,omitempty"`
}

func (s *InquiriesService) Create(ctx context.Context, req InquiryRequest) (*Inquiry, error) {
	var inq Inquiry
	if err := s.api.Post(ctx, "/api/v1/inquiries", req, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiriesService) Get(ctx context.Context, id uint) (*Inquiry, error) {
	var inq Inquiry
	if err := s.api.Get(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d", id), &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiriesService) ListPaginated(ctx context.Context, page, size int) (*InquiryPage, error) {
	var resp struct {
		Data []Inquiry `json:"data"`
		Meta PageMeta  `json:"meta"`
	}
	path := fmt.Sprintf("/api/v1/admin/inquiries?page=%d&size=%d", page, size)
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &InquiryPage{Inquiries: resp.Data, Meta: resp.Meta}, nil
}

func (s *InquiriesService) Search(ctx context.Context, query string) ([]Inquiry, error) {
	var inquiries []Inquiry
	path := "/api/v1/admin/inquiries/search?q=" + url.QueryEscape(query)
	if err := s.api.Get(ctx, path, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *InquiriesService) Reply(ctx context.Context, id uint, text string) (*Inquiry, error) {
	var inq Inquiry
	body := map[string]string{"message": text}
	if err := s.api.Post(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d/reply", id), body, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiriesService) Resolve(ctx context.Context, id uint) (*Inquiry, error) {
	var inq Inquiry
	if err := s.api.Post(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d/resolve", id), nil, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiriesService) Reopen(ctx context.Context, id uint) (*Inquiry, error) {
	var inq Inquiry
	if err := s.api.Post(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d/reopen", id), nil, &inq); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiriesService) Delete(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/inquiries/%d", id), nil)
}
