package client

import (
	"context"
	"fmt"
	"net/url"
)

type ProductsService struct {
	api *Client
}

func NewProductsService(api *Client) *ProductsService {
	return &ProductsService{api: api}
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	CategoryID  uint    `json:"category_id,omitempty"`
}

type ProductPage struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}

func (s *ProductsService) List(ctx context.Context, page, size int) (*ProductPage, error) {
	var resp ProductPage
	path := fmt.Sprintf("/api/v1/products?page=%d&size=%d", page, size)
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ProductsService) Get(ctx context.Context, id uint) (*Product, error) {
	var p Product
	if err := s.api.Get(ctx, fmt.Sprintf("/api/v1/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductsService) Search(ctx context.Context, query string, page, size int) ([]Product, int64, error) {
	var resp struct {
		Total    int64     `json:"total"`
		Products []Product `json:"products"`
	}
	path := fmt.Sprintf("/api/v1/products/search?q=%s&page=%d&size=%d", url.QueryEscape(query), page, size)
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Products, resp.Total, nil
}

func (s *ProductsService) Create(ctx context.Context, req ProductRequest) (*Product, error) {
	var p Product
	if err := s.api.Post(ctx, "/api/v1/admin/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductsService) Update(ctx context.Context, id uint, req ProductRequest) (*Product, error) {
	var p Product
	if err := s.api.Put(ctx, fmt.Sprintf("/api/v1/admin/products/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductsService) SetAvailability(ctx context.Context, id uint, available bool) (*Product, error) {
	body := map[string]bool{"available": available}
	var p Product
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/v1/admin/products/%d/availability", id), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductsService) Delete(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/products/%d", id), nil)
}
