package client

import (
	"github.com/spf13/cast"
)

// Older backend builds were inconsistent about the order payload: the item
// list arrived as "items", "order_items" or "orderItems", with snake_case or
// camelCase item fields. Everything is mapped into the canonical Order here,
// at the service boundary, so no duck-typed shape ever reaches a screen.

func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func normalizeOrder(raw map[string]any) Order {
	o := Order{
		ID:              cast.ToUint(pick(raw, "id")),
		CustomerName:    cast.ToString(pick(raw, "customer_name", "customerName")),
		CustomerEmail:   cast.ToString(pick(raw, "customer_email", "customerEmail")),
		CustomerPhone:   cast.ToString(pick(raw, "customer_phone", "customerPhone")),
		DeliveryAddress: cast.ToString(pick(raw, "delivery_address", "deliveryAddress")),
		DeliveryDate:    cast.ToString(pick(raw, "delivery_date", "deliveryDate")),
		Status:          cast.ToString(pick(raw, "status", "orderStatus")),
		Total:           cast.ToFloat64(pick(raw, "total", "totalAmount")),
	}

	items := pick(raw, "items", "order_items", "orderItems")
	for _, entry := range cast.ToSlice(items) {
		m := cast.ToStringMap(entry)
		if m == nil {
			continue
		}
		o.Items = append(o.Items, OrderItem{
			ID:           cast.ToUint(pick(m, "id")),
			ProductID:    cast.ToUint(pick(m, "product_id", "productId")),
			ProductName:  cast.ToString(pick(m, "product_name", "productName")),
			Quantity:     cast.ToUint(pick(m, "quantity")),
			UnitPrice:    cast.ToFloat64(pick(m, "unit_price", "unitPrice")),
			LineTotal:    cast.ToFloat64(pick(m, "line_total", "lineTotal", "totalPrice")),
			Instructions: cast.ToString(pick(m, "instructions")),
		})
	}
	return o
}

func normalizeOrders(raw []map[string]any) []Order {
	orders := make([]Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, normalizeOrder(r))
	}
	return orders
}
