package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse category")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}

	cat := models.Category{Name: req.Name}
	if err := h.DB.Create(&cat).Error; err != nil {
		return errorResponse(c, http.StatusConflict, "category already exists")
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid category id")
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "category not found")
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse category")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}

	cat.Name = req.Name
	if err := h.DB.Save(&cat).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory refuses to remove a category while products still point at
// it, answering with a message the admin screen can show as-is instead of
// leaving clients to pattern-match a foreign key error.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid category id")
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "category not found")
	}

	var refs int64
	if err := h.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	if refs > 0 {
		msg := fmt.Sprintf("cannot delete category %q: %d product(s) still reference it, reassign or delete products first", cat.Name, refs)
		return errorResponse(c, http.StatusConflict, msg)
	}

	if err := h.DB.Delete(&models.Category{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
