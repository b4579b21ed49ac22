package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/es"
	"github.com/ovenbird/bakehouse/internal/events"
	"github.com/ovenbird/bakehouse/internal/models"
	"github.com/ovenbird/bakehouse/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
	Featured    *bool   `json:"featured"`
	ImageURL    string  `json:"image_url"`
	CategoryID  uint    `json:"category_id"`
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := es.IndexProduct(ctx, h.ES, p); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	db := h.DB.Model(&models.Product{})
	if cid := parseIntDefault(c.QueryParam("category_id"), 0); cid > 0 {
		db = db.Where("category_id = ?", cid)
	}
	if c.QueryParam("featured") == "1" {
		db = db.Where("featured = ?", true)
	}
	if c.QueryParam("available") == "1" {
		db = db.Where("available = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
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

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse product")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}
	if req.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, "price must be >= 0")
	}
	if req.CategoryID != 0 {
		var cat models.Category
		if err := h.DB.First(&cat, req.CategoryID).Error; err != nil {
			return errorResponse(c, http.StatusBadRequest, "unknown category")
		}
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   true,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
	if req.Available != nil {
		prod.Available = *req.Available
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
	}

	if err := h.DB.Create(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "product_created", "productID": prod.ID, "name": prod.Name})
	h.index(c, &prod)

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse product")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}
	if req.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, "price must be >= 0")
	}
	if req.CategoryID != 0 {
		var cat models.Category
		if err := h.DB.First(&cat, req.CategoryID).Error; err != nil {
			return errorResponse(c, http.StatusBadRequest, "unknown category")
		}
	}

	prod.Name = req.Name
	prod.Description = req.Description
	prod.Price = req.Price
	prod.ImageURL = req.ImageURL
	prod.CategoryID = req.CategoryID
	if req.Available != nil {
		prod.Available = *req.Available
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "product_updated", "productID": prod.ID, "name": prod.Name})
	h.index(c, &prod)

	return c.JSON(http.StatusOK, prod)
}

// SetAvailability toggles the availability flag independently of the edit
// form, as the storefront admin does.
func (h *ProductHandler) SetAvailability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse request")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	prod.Available = req.Available
	if err := h.DB.Save(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "product_availability", "productID": prod.ID, "available": prod.Available})
	h.index(c, &prod)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "product_deleted", "productID": id})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := es.DeleteProduct(ctx, h.ES, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}
