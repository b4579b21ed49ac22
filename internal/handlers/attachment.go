package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/models"
)

// AttachmentHandler stores inquiry attachments in a local upload directory.
// The same size/type/count limits the client checks are enforced here again;
// the server is the authority.
type AttachmentHandler struct {
	DB           *gorm.DB
	Dir          string
	MaxBytes     int64
	MaxFiles     int
	AllowedTypes []string
}

func (h *AttachmentHandler) typeAllowed(ct string) bool {
	if len(h.AllowedTypes) == 0 {
		return true
	}
	for _, t := range h.AllowedTypes {
		if strings.EqualFold(t, ct) {
			return true
		}
	}
	return false
}

func (h *AttachmentHandler) Upload(c echo.Context) error {
	inquiryID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var inquiry models.Inquiry
	if err := h.DB.First(&inquiry, inquiryID).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "inquiry not found")
	}

	if h.MaxFiles > 0 {
		var count int64
		if err := h.DB.Model(&models.Attachment{}).Where("inquiry_id = ?", inquiryID).Count(&count).Error; err != nil {
			return errorResponse(c, http.StatusInternalServerError, err.Error())
		}
		if count >= int64(h.MaxFiles) {
			return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("at most %d attachments are allowed per inquiry", h.MaxFiles))
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "file field is required")
	}
	if h.MaxBytes > 0 && file.Size > h.MaxBytes {
		return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("file exceeds the %d byte limit", h.MaxBytes))
	}
	contentType := file.Header.Get("Content-Type")
	if !h.typeAllowed(contentType) {
		return errorResponse(c, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
	}

	src, err := file.Open()
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	name := filepath.Base(file.Filename)
	stored := fmt.Sprintf("%d_%d_%s", inquiryID, time.Now().UnixNano(), name)
	path := filepath.Join(h.Dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	attachment := models.Attachment{
		InquiryID:   inquiryID,
		FileName:    name,
		Size:        file.Size,
		ContentType: contentType,
		StoragePath: path,
	}
	if err := h.DB.Create(&attachment).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	attachment.DownloadURL = fmt.Sprintf("/api/v1/admin/attachments/%d/download", attachment.ID)
	if err := h.DB.Save(&attachment).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) List(c echo.Context) error {
	inquiryID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var attachments []models.Attachment
	if err := h.DB.Where("inquiry_id = ?", inquiryID).Order("id ASC").Find(&attachments).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, attachments)
}

func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid attachment id")
	}

	var attachment models.Attachment
	if err := h.DB.First(&attachment, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "attachment not found")
	}
	return c.Attachment(attachment.StoragePath, attachment.FileName)
}

func (h *AttachmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid attachment id")
	}

	var attachment models.Attachment
	if err := h.DB.First(&attachment, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "attachment not found")
	}

	if attachment.StoragePath != "" {
		if err := os.Remove(attachment.StoragePath); err != nil && !os.IsNotExist(err) {
			c.Logger().Errorf("attachment file remove error: %v", err)
		}
	}
	if err := h.DB.Delete(&models.Attachment{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll removes every attachment of an inquiry in one call.
func (h *AttachmentHandler) DeleteAll(c echo.Context) error {
	inquiryID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var attachments []models.Attachment
	if err := h.DB.Where("inquiry_id = ?", inquiryID).Find(&attachments).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	for _, a := range attachments {
		if a.StoragePath != "" {
			if err := os.Remove(a.StoragePath); err != nil && !os.IsNotExist(err) {
				c.Logger().Errorf("attachment file remove error: %v", err)
			}
		}
	}
	if err := h.DB.Where("inquiry_id = ?", inquiryID).Delete(&models.Attachment{}).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": len(attachments)})
}

func (h *AttachmentHandler) Stats(c echo.Context) error {
	inquiryID, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid inquiry id")
	}

	var stats struct {
		Count      int64 `json:"count"`
		TotalBytes int64 `json:"total_bytes"`
	}
	if err := h.DB.Model(&models.Attachment{}).Where("inquiry_id = ?", inquiryID).Count(&stats.Count).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	row := h.DB.Model(&models.Attachment{}).Where("inquiry_id = ?", inquiryID).Select("COALESCE(SUM(size), 0)").Row()
	if err := row.Scan(&stats.TotalBytes); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
