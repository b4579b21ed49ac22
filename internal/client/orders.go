package client

import (
	"context"
	"encoding/json"
	"fmt"
)

type OrdersService struct {
	api *Client
}

func NewOrdersService(api *Client) *OrdersService {
	return &OrdersService{api: api}
}

func (s *OrdersService) List(ctx context.Context) ([]Order, error) {
	var raw []map[string]any
	if err := s.api.Get(ctx, "/api/v1/admin/orders", &raw); err != nil {
		return nil, err
	}
	return normalizeOrders(raw), nil
}

func (s *OrdersService) ListPaginated(ctx context.Context, page, size int) (*OrderPage, error) {
	var resp struct {
		Data []map[string]any `json:"data"`
		Meta json.RawMessage  `json:"meta"`
	}
	path := fmt.Sprintf("/api/v1/admin/orders/paginated?page=%d&size=%d", page, size)
	if err := s.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}

	result := &OrderPage{Orders: normalizeOrders(resp.Data)}
	if len(resp.Meta) > 0 {
		if err := json.Unmarshal(resp.Meta, &result.Meta); err != nil {
			return nil, fmt.Errorf("decode page meta: %w", err)
		}
	}
	return result, nil
}

func (s *OrdersService) Get(ctx context.Context, id uint) (*Order, error) {
	var raw map[string]any
	if err := s.api.Get(ctx, fmt.Sprintf("/api/v1/admin/orders/%d", id), &raw); err != nil {
		return nil, err
	}
	order := normalizeOrder(raw)
	return &order, nil
}

// UpdateStatus asks the server for a transition and returns the stored
// order, whose status is authoritative.
func (s *OrdersService) UpdateStatus(ctx context.Context, id uint, status string) (*Order, error) {
	body := map[string]string{"status": status}
	var raw map[string]any
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/v1/admin/orders/%d/status", id), body, &raw); err != nil {
		return nil, err
	}
	order := normalizeOrder(raw)
	return &order, nil
}

// Submit places a storefront order.
func (s *OrdersService) Submit(ctx context.Context, req OrderRequest) (*Order, error) {
	var raw map[string]any
	if err := s.api.Post(ctx, "/api/v1/orders", req, &raw); err != nil {
		return nil, err
	}
	order := normalizeOrder(raw)
	return &order, nil
}

type OrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	DeliveryAddress string             `json:"delivery_address,omitempty"`
	DeliveryDate    string             `json:"delivery_date,omitempty"`
	Items           []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	ProductID    uint   `json:"product_id"`
	Quantity     uint   `json:"quantity"`
	Instructions string `json:"instructions,omitempty"`
}
