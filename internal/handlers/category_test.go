package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/models"
)

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "pastries"})
	require.NoError(t, env.Categories.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "pastries"})
	require.NoError(t, env.Categories.CreateCategory(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	env := newTestEnv(t)

	cat := models.Category{Name: "cakes"}
	require.NoError(t, env.DB.Create(&cat).Error)
	require.NoError(t, env.DB.Create(&models.Product{Name: "carrot cake", Price: 18, CategoryID: cat.ID}).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(cat.ID))
	require.NoError(t, env.Categories.DeleteCategory(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, errMessage(t, rec), "reassign or delete products first")

	var count int64
	env.DB.Model(&models.Category{}).Count(&count)
	require.Equal(t, int64(1), count, "category must survive the blocked delete")
}

func TestDeleteCategoryEmpty(t *testing.T) {
	env := newTestEnv(t)

	cat := models.Category{Name: "seasonal"}
	require.NoError(t, env.DB.Create(&cat).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(cat.ID))
	require.NoError(t, env.Categories.DeleteCategory(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
