package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/events"
	"github.com/ovenbird/bakehouse/internal/models"
	"github.com/ovenbird/bakehouse/internal/util"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type orderItemRequest struct {
	ProductID    uint   `json:"product_id"`
	Quantity     uint   `json:"quantity"`
	Instructions string `json:"instructions"`
}

type orderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryDate    string             `json:"delivery_date"`
	Items           []orderItemRequest `json:"items"`
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// CreateOrder is the storefront submission endpoint. Unit prices and totals
// are taken from the product catalog, never from the request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse order")
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if req.CustomerName == "" {
		return errorResponse(c, http.StatusBadRequest, "customer name is required")
	}
	if req.CustomerEmail == "" || !strings.Contains(req.CustomerEmail, "@") {
		return errorResponse(c, http.StatusBadRequest, "a valid customer email is required")
	}
	if len(req.Items) == 0 {
		return errorResponse(c, http.StatusBadRequest, "order must contain at least one item")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity == 0 {
			return errorResponse(c, http.StatusBadRequest, "item quantity must be > 0")
		}
		var prod models.Product
		if err := h.DB.First(&prod, it.ProductID).Error; err != nil {
			return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown product %d", it.ProductID))
		}
		if !prod.Available {
			return errorResponse(c, http.StatusConflict, fmt.Sprintf("product %q is not available", prod.Name))
		}
		lineTotal := prod.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			ProductID:    prod.ID,
			ProductName:  prod.Name,
			Quantity:     it.Quantity,
			UnitPrice:    prod.Price,
			LineTotal:    lineTotal,
			Instructions: it.Instructions,
		})
		total += lineTotal
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    req.DeliveryDate,
		Status:          models.OrderStatusPending,
		Total:           total,
		Items:           items,
	}

	if err := h.DB.Create(&order).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "order_created", "orderID": order.ID, "total": order.Total})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid order id")
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	db := h.DB.Preload("Items").Model(&models.Order{})
	if status := c.QueryParam("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var orders []models.Order
	if err := db.Order("id DESC").Find(&orders).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrdersPaginated(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	db := h.DB.Model(&models.Order{})
	if status := c.QueryParam("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	var orders []models.Order
	if err := db.Preload("Items").Order("id ASC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// UpdateStatus moves an order through its lifecycle. The stored value is
// returned so clients can reconcile against server truth.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid order id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse request")
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if !models.OrderStatuses[req.Status] {
		return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid order status %q", req.Status))
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "order not found")
	}

	previous := order.Status
	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"from":    previous,
		"to":      order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
