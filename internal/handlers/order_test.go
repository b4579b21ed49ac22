package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/models"
)

func TestCreateOrderComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	loaf := env.createProduct("sourdough", 6.50, true)
	roll := env.createProduct("roll", 1.25, true)

	body := map[string]any{
		"customer_name":  "Ada",
		"customer_email": "ada@example.com",
		"items": []map[string]any{
			{"product_id": loaf.ID, "quantity": 2},
			{"product_id": roll.ID, "quantity": 4, "instructions": "sliced"},
		},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", body)
	require.NoError(t, env.Orders.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	got := decodeBody[models.Order](t, rec)
	require.NotZero(t, got.ID)
	require.Equal(t, models.OrderStatusPending, got.Status)
	require.Equal(t, 18.0, got.Total)
	require.Len(t, got.Items, 2)
	require.Equal(t, "sourdough", got.Items[0].ProductName)
	require.Equal(t, 6.50, got.Items[0].UnitPrice)
	require.Equal(t, 13.0, got.Items[0].LineTotal)
	require.Equal(t, "sliced", got.Items[1].Instructions)
}

func TestCreateOrderUnavailableProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("day-old scone", 1.0, false)

	body := map[string]any{
		"customer_name":  "Ada",
		"customer_email": "ada@example.com",
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 1}},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", body)
	require.NoError(t, env.Orders.CreateOrder(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("bun", 1.0, true)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{
			"customer_email": "a@b.c",
			"items":          []map[string]any{{"product_id": p.ID, "quantity": 1}},
		}},
		{"bad email", map[string]any{
			"customer_name":  "Ada",
			"customer_email": "not-an-email",
			"items":          []map[string]any{{"product_id": p.ID, "quantity": 1}},
		}},
		{"no items", map[string]any{
			"customer_name":  "Ada",
			"customer_email": "a@b.c",
			"items":          []map[string]any{},
		}},
		{"zero quantity", map[string]any{
			"customer_name":  "Ada",
			"customer_email": "a@b.c",
			"items":          []map[string]any{{"product_id": p.ID, "quantity": 0}},
		}},
		{"unknown product", map[string]any{
			"customer_name":  "Ada",
			"customer_email": "a@b.c",
			"items":          []map[string]any{{"product_id": 999, "quantity": 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", tc.body)
			require.NoError(t, env.Orders.CreateOrder(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)

	order := models.Order{CustomerName: "Ada", CustomerEmail: "a@b.c", Status: models.OrderStatusPending}
	require.NoError(t, env.DB.Create(&order).Error)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{"status": "confirmed"})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	require.NoError(t, env.Orders.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[models.Order](t, rec)
	require.Equal(t, models.OrderStatusConfirmed, got.Status, "status is normalized and stored uppercase")

	rec, c = env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{"status": "SHIPPED"})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	require.NoError(t, env.Orders.UpdateStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var stored models.Order
	require.NoError(t, env.DB.First(&stored, order.ID).Error)
	require.Equal(t, models.OrderStatusConfirmed, stored.Status, "rejected transition must not change the row")
}

func TestGetOrdersPaginated(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 15; i++ {
		order := models.Order{
			CustomerName:  fmt.Sprintf("customer %d", i),
			CustomerEmail: "c@example.com",
			Status:        models.OrderStatusPending,
		}
		require.NoError(t, env.DB.Create(&order).Error)
	}

	type page struct {
		Data []models.Order `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/admin/orders/paginated?page=2&size=10", nil)
	require.NoError(t, env.Orders.GetOrdersPaginated(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[page](t, rec)
	require.Len(t, got.Data, 5)
	require.Equal(t, int64(15), got.Meta.Total)
	require.Equal(t, int64(2), got.Meta.TotalPages)
	require.True(t, got.Meta.HasPrev)
	require.False(t, got.Meta.HasNext)
}
