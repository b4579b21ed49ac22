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
)

type ReviewHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type reviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "review_events", fmt.Sprint(event["reviewID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// CreateReview accepts a storefront review; it enters moderation as pending.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var prod models.Product
	if err := h.DB.First(&prod, productID).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "product not found")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse review")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return errorResponse(c, http.StatusBadRequest, "a valid email is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errorResponse(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}

	review := models.Review{
		ProductID: productID,
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Status:    models.ReviewStatusPending,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "review_created", "reviewID": review.ID, "productID": productID})

	return c.JSON(http.StatusCreated, review)
}

// GetProductReviews lists a product's approved reviews. Unmoderated content
// never leaves through this endpoint; the full queue lives behind the admin
// group.
func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var reviews []models.Review
	err = h.DB.Where("product_id = ? AND status = ?", productID, models.ReviewStatusApproved).
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetProductReviewQueue returns every review of a product regardless of
// status, for the moderation screen.
func (h *ReviewHandler) GetProductReviewQueue(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var reviews []models.Review
	if err := h.DB.Where("product_id = ?", productID).Order("id DESC").Find(&reviews).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetProductReviewStats reports the approved-review average and count shown
// on the product page.
func (h *ReviewHandler) GetProductReviewStats(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var stats struct {
		Count   int64   `json:"count"`
		Average float64 `json:"average"`
	}
	db := h.DB.Model(&models.Review{}).
		Where("product_id = ? AND status = ?", productID, models.ReviewStatusApproved)
	if err := db.Count(&stats.Count).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	if stats.Count > 0 {
		row := db.Select("AVG(rating)").Row()
		if err := row.Scan(&stats.Average); err != nil {
			return errorResponse(c, http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	db := h.DB.Model(&models.Review{})
	if status := c.QueryParam("status"); status != "" {
		if !models.ReviewStatuses[status] {
			return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid review status %q", status))
		}
		db = db.Where("status = ?", status)
	}

	var reviews []models.Review
	if err := db.Order("id DESC").Find(&reviews).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

// SetStatus is the moderation gate. A review holds exactly one status, so
// the pending/approved/rejected buckets can never overlap.
func (h *ReviewHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid review id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse request")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ReviewStatuses[req.Status] {
		return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid review status %q", req.Status))
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "review not found")
	}

	review.Status = req.Status
	if err := h.DB.Save(&review).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "review_moderated", "reviewID": review.ID, "status": review.Status})

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid review id")
	}
	if err := h.DB.Delete(&models.Review{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{"type": "review_deleted", "reviewID": id})

	return c.NoContent(http.StatusNoContent)
}

// ModerationStats returns per-status counts for the admin summary header.
func (h *ReviewHandler) ModerationStats(c echo.Context) error {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := h.DB.Model(&models.Review{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	stats := map[string]int64{
		models.ReviewStatusPending:  0,
		models.ReviewStatusApproved: 0,
		models.ReviewStatusRejected: 0,
	}
	for _, r := range rows {
		stats[r.Status] = r.N
	}
	return c.JSON(http.StatusOK, stats)
}
