package client

import (
	"context"
	"fmt"
)

type ReviewsService struct {
	api *Client
}

func NewReviewsService(api *Client) *ReviewsService {
	return &ReviewsService{api: api}
}

type ReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

func (s *ReviewsService) Create(ctx context.Context, req ReviewRequest) (*Review, error) {
	var rev Review
	path := fmt.Sprintf("/api/v1/products/%d/reviews", req.ProductID)
	if err := s.api.Post(ctx, path, req, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListByProduct returns the approved reviews the storefront shows.
func (s *ReviewsService) ListByProduct(ctx context.Context, productID uint) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/api/v1/products/%d/reviews", productID)
	if err := s.api.Get(ctx, path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewsService) ProductStats(ctx context.Context, productID uint) (*ProductReviewStats, error) {
	var stats ProductReviewStats
	path := fmt.Sprintf("/api/v1/products/%d/reviews/stats", productID)
	if err := s.api.Get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProductQueue returns every review of a product regardless of moderation
// status. Admin-only; the public listing stays approved-only.
func (s *ReviewsService) ProductQueue(ctx context.Context, productID uint) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/api/v1/admin/products/%d/reviews", productID)
	if err := s.api.Get(ctx, path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AdminList returns reviews in every state, optionally filtered by status.
func (s *ReviewsService) AdminList(ctx context.Context, status string) ([]Review, error) {
	path := "/api/v1/admin/reviews"
	if status != "" {
		path += "?status=" + status
	}
	var reviews []Review
	if err := s.api.Get(ctx, path, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewsService) SetStatus(ctx context.Context, id uint, status string) (*Review, error) {
	var rev Review
	body := map[string]string{"status": status}
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/v1/admin/reviews/%d/status", id), body, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

func (s *ReviewsService) Delete(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/reviews/%d", id), nil)
}

func (s *ReviewsService) ModerationStats(ctx context.Context) (*ReviewStats, error) {
	var stats ReviewStats
	if err := s.api.Get(ctx, "/api/v1/admin/reviews/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
