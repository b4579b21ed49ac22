package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/models"
	"github.com/ovenbird/bakehouse/internal/util"
)

const minInquiryMessageLen = 10

type InquiryHandler struct {
	DB *gorm.DB
}

type inquiryRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	CategoryID uint   `json:"inquiry_category_id"`
}

// CreateInquiry is the public contact form endpoint.
func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	var req inquiryRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse inquiry")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return errorResponse(c, http.StatusBadRequest, "a valid email is required")
	}
	if len(req.Message) < minInquiryMessageLen {
		return errorResponse(c, http.StatusBadRequest, "message must be at least 10 characters")
	}

	inquiry := models.Inquiry{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     models.InquiryStatusNew,
		CategoryID: req.CategoryID,
	}
	if err := h.DB.Create(&inquiry).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) GetInquiry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var inquiry models.Inquiry
	if err := h.DB.Preload("Attachments").First(&inquiry, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "inquiry not found")
	}
	return c.JSON(http.StatusOK, inquiry)
}

func (h *InquiryHandler) GetInquiriesPaginated(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	db := h.DB.Model(&models.Inquiry{})
	if status := c.QueryParam("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	var inquiries []models.Inquiry
	if err := db.Preload("Attachments").Order("id DESC").Offset(offset).Limit(limit).Find(&inquiries).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": inquiries,
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

func (h *InquiryHandler) SearchInquiries(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "query is required")
	}
	pattern := "%" + strings.ToLower(q) + "%"

	var inquiries []models.Inquiry
	err := h.DB.Preload("Attachments").
		Where("LOWER(name) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?", pattern, pattern, pattern).
		Order("id DESC").
		Find(&inquiries).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, inquiries)
}

func (h *InquiryHandler) Reply(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "unable to parse reply")
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return errorResponse(c, http.StatusBadRequest, "reply message is required")
	}

	var inquiry models.Inquiry
	if err := h.DB.First(&inquiry, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "inquiry not found")
	}

	inquiry.ReplyText = req.Message
	if err := h.DB.Save(&inquiry).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, inquiry)
}

func (h *InquiryHandler) Resolve(c echo.Context) error {
	return h.setStatus(c, models.InquiryStatusResolved)
}

func (h *InquiryHandler) Reopen(c echo.Context) error {
	return h.setStatus(c, models.InquiryStatusReopened)
}

func (h *InquiryHandler) setStatus(c echo.Context, status string) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var inquiry models.Inquiry
	if err := h.DB.First(&inquiry, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "inquiry not found")
	}

	inquiry.Status = status
	if err := h.DB.Save(&inquiry).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, inquiry)
}

// DeleteInquiry removes the inquiry together with its attachment rows and
// their files on disk.
func (h *InquiryHandler) DeleteInquiry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var attachments []models.Attachment
	if err := h.DB.Where("inquiry_id = ?", id).Find(&attachments).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	for _, a := range attachments {
		if a.StoragePath != "" {
			if err := os.Remove(a.StoragePath); err != nil && !os.IsNotExist(err) {
				c.Logger().Errorf("attachment file remove error: %v", err)
			}
		}
	}
	if err := h.DB.Where("inquiry_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&models.Inquiry{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
