package catalog_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Bakeshop/internal/catalog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewSeededMemStore(), Log: zap.NewNop()}
	h := catalog.NewHandler(s, catalog.HTTPDeps{Log: zap.NewNop(), Service: "catalog"})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(t)

	var products []map[string]any
	resp := getJSON(t, ts.URL+"/products", &products)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, products)
}

func TestListProducts_Search(t *testing.T) {
	ts := newTestServer(t)

	var products []map[string]any
	getJSON(t, ts.URL+"/products?q=truffle", &products)

	require.Len(t, products, 1)
	assert.Equal(t, "Chocolate Truffle Cake", products[0]["name"])
}

func TestGetProduct_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts.URL+"/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListByCategory(t *testing.T) {
	ts := newTestServer(t)

	var got struct {
		Slug     string           `json:"slug"`
		Count    int              `json:"count"`
		Products []map[string]any `json:"products"`
	}
	getJSON(t, ts.URL+"/categories/chocolate/products", &got)

	assert.Equal(t, "chocolate", got.Slug)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "Chocolate Truffle Cake", got.Products[0]["name"])
}

func TestListByCategory_SubCategoryTakesPrecedence(t *testing.T) {
	ts := newTestServer(t)

	var got struct {
		Slug  string `json:"slug"`
		Count int    `json:"count"`
	}
	getJSON(t, ts.URL+"/categories/cookies/ragi/products", &got)

	assert.Equal(t, "ragi", got.Slug)
	assert.Equal(t, 1, got.Count)
}

func TestListByCategory_UnknownCategoryIsEmptyNotError(t *testing.T) {
	ts := newTestServer(t)

	var got struct {
		Count    int              `json:"count"`
		Products []map[string]any `json:"products"`
	}
	resp := getJSON(t, ts.URL+"/categories/brownies/products", &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, got.Count)
	assert.Empty(t, got.Products)
}

func adminReq(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("X-User-Id", "u_admin")
	req.Header.Set("X-User-Role", "admin")
	return req
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"name": "Thandai Cookies", "category": "Cookies", "price": "150"})

	resp, err := http.Post(ts.URL+"/products", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/products", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-User-Id", "u_1")
	req.Header.Set("X-User-Role", "customer")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateProduct_RejectsTrailingData(t *testing.T) {
	ts := newTestServer(t)

	body := []byte(`{"name":"Jeera Biscuits","category":"Cookies","price":"80"}{"extra":true}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/products", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-User-Id", "u_admin")
	req.Header.Set("X-User-Role", "admin")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminProductCRUD(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.DefaultClient.Do(adminReq(t, http.MethodPost, ts.URL+"/products", map[string]any{
		"name":     "Thandai Cookies",
		"category": "Cookies",
		"price":    "150",
		"tags":     []string{"festive"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "In Stock", created["stock_status"], "stock status defaults when omitted")

	// the new product is immediately browsable through its category
	var cat struct {
		Count int `json:"count"`
	}
	getJSON(t, ts.URL+"/categories/thandai/products", &cat)
	assert.Equal(t, 1, cat.Count)

	resp, err = http.DefaultClient.Do(adminReq(t, http.MethodPut, ts.URL+"/products/"+id, map[string]any{
		"name":         "Thandai Cookies",
		"category":     "Cookies",
		"price":        "150",
		"stock_status": "Out of Stock",
	}))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.DefaultClient.Do(adminReq(t, http.MethodDelete, ts.URL+"/products/"+id, nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContentCRUDAndListing(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.DefaultClient.Do(adminReq(t, http.MethodPost, ts.URL+"/content", map[string]any{
		"kind":  "banner",
		"title": "Fresh Bakes Every Morning",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var banners []map[string]any
	getJSON(t, ts.URL+"/content/banner", &banners)
	require.Len(t, banners, 1)
	assert.Equal(t, "Fresh Bakes Every Morning", banners[0]["title"])

	var posters []map[string]any
	getJSON(t, ts.URL+"/content/poster", &posters)
	assert.Empty(t, posters)

	resp = getJSON(t, ts.URL+"/content/flyer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "unknown content kinds are rejected")
}

func TestCreateContent_InvalidKind(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.DefaultClient.Do(adminReq(t, http.MethodPost, ts.URL+"/content", map[string]any{
		"kind":  "flyer",
		"title": "nope",
	}))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
