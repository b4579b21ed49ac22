package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrdersListNormalizesVariants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/admin/orders", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "customer_name": "Ada", "status": "PENDING", "total": 5,
			 "items": [{"product_id": 1, "product_name": "rye", "quantity": 1, "unit_price": 5, "line_total": 5}]},
			{"id": 2, "customerName": "Bob", "orderStatus": "READY", "totalAmount": 7,
			 "orderItems": [{"productId": 2, "productName": "bun", "quantity": 1, "unitPrice": 7, "totalPrice": 7}]}
		]`))
	}))
	defer srv.Close()

	svc := NewOrdersService(New(srv.URL, nil))
	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// both shapes come out as the same canonical Order
	require.Equal(t, "Ada", orders[0].CustomerName)
	require.Equal(t, "Bob", orders[1].CustomerName)
	require.Equal(t, "READY", orders[1].Status)
	require.Equal(t, 7.0, orders[1].Total)
	require.Equal(t, "bun", orders[1].Items[0].ProductName)
}

func TestOrdersListPaginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "20", r.URL.Query().Get("size"))
		w.Write([]byte(`{
			"data": [{"id": 21, "customer_name": "Cam", "status": "PENDING", "total": 3}],
			"meta": {"page": 2, "size": 20, "total": 45, "total_pages": 3, "has_prev": true, "has_next": true}
		}`))
	}))
	defer srv.Close()

	svc := NewOrdersService(New(srv.URL, nil))
	page, err := svc.ListPaginated(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, uint(21), page.Orders[0].ID)
	require.Equal(t, 2, page.Meta.Page)
	require.Equal(t, int64(45), page.Meta.Total)
	require.True(t, page.Meta.HasNext)
}

func TestOrdersUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/admin/orders/7/status", r.URL.Path)
		w.Write([]byte(`{"id": 7, "customer_name": "Ada", "status": "CONFIRMED", "total": 5}`))
	}))
	defer srv.Close()

	svc := NewOrdersService(New(srv.URL, nil))
	order, err := svc.UpdateStatus(context.Background(), 7, "CONFIRMED")
	require.NoError(t, err)
	require.Equal(t, "CONFIRMED", order.Status)
}

func TestOrdersUpdateStatusSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","message":"invalid order status \"SHIPPED\""}`))
	}))
	defer srv.Close()

	svc := NewOrdersService(New(srv.URL, nil))
	_, err := svc.UpdateStatus(context.Background(), 7, "SHIPPED")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "invalid order status")
}
