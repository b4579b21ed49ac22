package client

import (
	"context"
	"fmt"
)

type CategoriesService struct {
	api *Client
}

func NewCategoriesService(api *Client) *CategoriesService {
	return &CategoriesService{api: api}
}

func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Get(ctx, "/api/v1/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoriesService) Create(ctx context.Context, name string) (*Category, error) {
	var cat Category
	if err := s.api.Post(ctx, "/api/v1/admin/categories", map[string]string{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CategoriesService) Update(ctx context.Context, id uint, name string) (*Category, error) {
	var cat Category
	if err := s.api.Put(ctx, fmt.Sprintf("/api/v1/admin/categories/%d", id), map[string]string{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete surfaces the server's conflict message untouched when products
// still reference the category; the screen shows it as-is.
func (s *CategoriesService) Delete(ctx context.Context, id uint) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/v1/admin/categories/%d", id), nil)
}
