package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/models"
)

func (env *testEnv) doUploadRequest(inquiryID uint, filename, contentType string, payload []byte) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(env.T, err)
	_, err = part.Write(payload)
	require.NoError(env.T, err)
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/inquiries/1/attachments", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(inquiryID))
	return rec, c
}

func TestUploadAttachment(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)

	rec, c := env.doUploadRequest(inq.ID, "sketch.png", "image/png", []byte("png-bytes"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	got := decodeBody[models.Attachment](t, rec)
	require.NotZero(t, got.ID)
	require.Equal(t, "sketch.png", got.FileName)
	require.Equal(t, int64(9), got.Size)
	require.Equal(t, fmt.Sprintf("/api/v1/admin/attachments/%d/download", got.ID), got.DownloadURL)
}

func TestUploadRejectsType(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)

	rec, c := env.doUploadRequest(inq.ID, "notes.txt", "text/plain", []byte("hello"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, errMessage(t, rec), "not allowed")
}

func TestUploadRejectsOversize(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)
	env.Attachments.MaxBytes = 4

	rec, c := env.doUploadRequest(inq.ID, "big.png", "image/png", []byte("too big"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadEnforcesPerInquiryLimit(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)
	env.Attachments.MaxFiles = 1

	rec, c := env.doUploadRequest(inq.ID, "one.png", "image/png", []byte("a"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doUploadRequest(inq.ID, "two.png", "image/png", []byte("b"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadUnknownInquiry(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doUploadRequest(77, "x.png", "image/png", []byte("a"))
	require.NoError(t, env.Attachments.Upload(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttachmentStats(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)

	for i, size := range []int64{100, 250} {
		att := models.Attachment{
			InquiryID: inq.ID, FileName: fmt.Sprintf("f%d.png", i),
			Size: size, ContentType: "image/png",
		}
		require.NoError(t, env.DB.Create(&att).Error)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/admin/inquiries/1/attachments/stats", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(inq.ID))
	require.NoError(t, env.Attachments.Stats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody[struct {
		Count      int64 `json:"count"`
		TotalBytes int64 `json:"total_bytes"`
	}](t, rec)
	require.Equal(t, int64(2), stats.Count)
	require.Equal(t, int64(350), stats.TotalBytes)
}

func TestDeleteAllAttachments(t *testing.T) {
	env := newTestEnv(t)
	inq := newInquiry(t, env)

	for i := 0; i < 2; i++ {
		att := models.Attachment{
			InquiryID: inq.ID, FileName: fmt.Sprintf("f%d.png", i),
			Size: 1, ContentType: "image/png",
		}
		require.NoError(t, env.DB.Create(&att).Error)
	}

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/inquiries/1/attachments", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(inq.ID))
	require.NoError(t, env.Attachments.DeleteAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	env.DB.Model(&models.Attachment{}).Count(&count)
	require.Zero(t, count)
}
