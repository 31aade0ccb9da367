package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/01moynul/travelsite/internal/export"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func productBody(name, typeSlug string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "Paket umroh dengan hotel dekat Masjidil Haram",
		"price":       28500000,
		"type":        typeSlug,
		"duration":    "9 Hari",
		"quota":       45,
		"hotel":       "Hilton Makkah",
		"airline":     "Saudia",
		"images":      []string{"http://api.test/uploads/a.jpg"},
		"facilities":  []string{"Visa", "Manasik"},
	}
}

func TestCreateProduct(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")

	w := e.post("/api/products", productBody("Umroh Reguler 9 Hari", "umroh"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got models.Product
	decode(t, w, &got)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Umroh Reguler 9 Hari", got.Name)
	assert.Equal(t, "umroh-reguler-9-hari", got.Slug)
	assert.Equal(t, float64(28500000), got.Price)
	assert.Equal(t, "umroh", got.Type)
	assert.Equal(t, 45, got.Quota)
	assert.Equal(t, []string{"Visa", "Manasik"}, got.Facilities)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsFeatured)

	w = e.anon(http.MethodGet, fmt.Sprintf("/api/products/%d", got.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Product
	decode(t, w, &fetched)
	assert.Equal(t, got.Name, fetched.Name)
	assert.Equal(t, got.Images, fetched.Images)
}

func TestCreateProduct_Rejections(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")

	w := e.post("/api/products", productBody("Umroh Plus", "haji-furoda"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Unknown product type")

	w = e.post("/api/products", map[string]interface{}{"price": 10, "type": "umroh"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Name is required")

	bad := productBody("Umroh Minus", "umroh")
	bad["price"] = -1
	w = e.post("/api/products", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.anon(http.MethodPost, "/api/products", productBody("Umroh Anon", "umroh"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")

	require.Equal(t, http.StatusCreated, e.post("/api/products", productBody("Umroh Ramadhan", "umroh")).Code)

	w := e.post("/api/products", productBody("Umroh Ramadhan", "umroh"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")
	e.seedType("Haji Plus", "haji-plus")

	w := e.post("/api/products", productBody("Umroh Syawal", "umroh"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	decode(t, w, &created)

	path := fmt.Sprintf("/api/products/%d", created.ID)

	// Unauthenticated PUT
	assert.Equal(t, http.StatusUnauthorized, e.anon(http.MethodPut, path, productBody("X", "umroh")).Code)

	body := productBody("Haji Plus 2027", "haji-plus")
	body["isFeatured"] = true
	body["price"] = 150000000
	w = e.put(path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	decode(t, w, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "haji-plus-2027", updated.Slug)
	assert.Equal(t, "haji-plus", updated.Type)
	assert.True(t, updated.IsFeatured)
	assert.True(t, updated.IsActive, "omitted isActive keeps the stored value")

	// Explicit false must stick
	body["isActive"] = false
	w = e.put(path, body)
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Product
	require.NoError(t, e.h.DB.First(&stored, created.ID).Error)
	assert.False(t, stored.IsActive)

	assert.Equal(t, http.StatusNotFound, e.put("/api/products/9999", body).Code)
	assert.Equal(t, http.StatusBadRequest, e.put("/api/products/abc", body).Code)
}

func TestDeleteProduct(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")

	w := e.post("/api/products", productBody("Umroh Hemat", "umroh"))
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Product
	decode(t, w, &p)

	path := fmt.Sprintf("/api/products/%d", p.ID)
	assert.Equal(t, http.StatusUnauthorized, e.anon(http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusOK, e.del(path).Code)
	assert.Equal(t, http.StatusNotFound, e.del(path).Code)
	assert.Equal(t, http.StatusNotFound, e.del("/api/products/424242").Code)
}

func TestGetProducts_FiltersAndPaging(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")
	e.seedType("Haji", "haji")

	for i := 1; i <= 3; i++ {
		require.Equal(t, http.StatusCreated, e.post("/api/products", productBody(fmt.Sprintf("Umroh Paket %d", i), "umroh")).Code)
	}
	featured := productBody("Haji Furoda", "haji")
	featured["isFeatured"] = true
	require.Equal(t, http.StatusCreated, e.post("/api/products", featured).Code)

	hidden := productBody("Umroh Arsip", "umroh")
	hidden["isActive"] = false
	require.Equal(t, http.StatusCreated, e.post("/api/products", hidden).Code)

	type listResponse struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
		Skip     int              `json:"skip"`
		Limit    int              `json:"limit"`
	}

	var list listResponse
	w := e.anon(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Equal(t, int64(4), list.Total)

	w = e.anon(http.MethodGet, "/api/products?type=umroh&limit=2&skip=1", nil)
	decode(t, w, &list)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Products, 2)
	assert.Equal(t, 1, list.Skip)
	assert.Equal(t, 2, list.Limit)

	w = e.anon(http.MethodGet, "/api/products?featured=true", nil)
	decode(t, w, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Haji Furoda", list.Products[0].Name)

	w = e.anon(http.MethodGet, "/api/products?q=PAKET%202", nil)
	decode(t, w, &list)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Umroh Paket 2", list.Products[0].Name)

	// all=true only widens the list for a signed-in admin
	w = e.anon(http.MethodGet, "/api/products?all=true", nil)
	decode(t, w, &list)
	assert.Equal(t, int64(4), list.Total)

	w = e.get("/api/products?all=true")
	decode(t, w, &list)
	assert.Equal(t, int64(5), list.Total)
}

func TestGetProductBySlug(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")

	require.Equal(t, http.StatusCreated, e.post("/api/products", productBody("Umroh Akhir Tahun", "umroh")).Code)
	hidden := productBody("Umroh Draft", "umroh")
	hidden["isActive"] = false
	require.Equal(t, http.StatusCreated, e.post("/api/products", hidden).Code)

	w := e.anon(http.MethodGet, "/api/products/slug/umroh-akhir-tahun", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, e.anon(http.MethodGet, "/api/products/slug/umroh-draft", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.anon(http.MethodGet, "/api/products/slug/nope", nil).Code)
}

func TestExportProducts(t *testing.T) {
	e := newEnv(t)
	e.seedType("Umroh", "umroh")
	require.Equal(t, http.StatusCreated, e.post("/api/products", productBody("Umroh Export", "umroh")).Code)

	assert.Equal(t, http.StatusUnauthorized, e.anon(http.MethodGet, "/api/products/export", nil).Code)

	w := e.get("/api/products/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Umroh Export", rows[1][0])
	assert.Equal(t, "Yes", rows[1][7])
}
