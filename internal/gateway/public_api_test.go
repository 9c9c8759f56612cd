package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"Bakeshop/internal/auth"
	"Bakeshop/internal/cart"
	"Bakeshop/internal/catalog"
	"Bakeshop/internal/gateway"
)

const testJWTSecret = "test-secret-test-secret-test-secret!"

func newAuthTS(t *testing.T) (*httptest.Server, *auth.MemStore) {
	t.Helper()

	store := auth.NewMemStore()
	s := &auth.Server{
		Log:   zap.NewNop(),
		Store: store,
		JWT:   auth.NewTokenMaker(testJWTSecret),
	}

	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "auth",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, store
}

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewSeededMemStore(), Log: zap.NewNop()}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newCartTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &cart.Server{
		Svc: cart.NewService(cart.NewMemStore(), zap.NewNop()),
		Log: zap.NewNop(),
	}

	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "cart",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newGatewayTS(t *testing.T, authURL, catalogURL, cartURL string) *httptest.Server {
	t.Helper()

	h, err := gateway.NewHandler(
		gateway.Deps{
			JWTSecret:  testJWTSecret,
			AuthURL:    authURL,
			CatalogURL: catalogURL,
			CartURL:    cartURL,
		},
		gateway.HTTPDeps{
			Log:     zap.NewNop(),
			Service: "gateway",
		},
	)
	if err != nil {
		t.Fatalf("gateway.NewHandler: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newStack(t *testing.T) (*httptest.Server, *auth.MemStore) {
	t.Helper()

	authTS, users := newAuthTS(t)
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t)
	return newGatewayTS(t, authTS.URL, catalogTS.URL, cartTS.URL), users
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, gw *httptest.Server, email, pass string) string {
	t.Helper()

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if code := doJSON(t, http.MethodPost, gw.URL+"/auth/login", "", map[string]any{
		"email":    email,
		"password": pass,
	}, &resp); code != http.StatusOK {
		t.Fatalf("login: status %d", code)
	}
	if resp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	return resp.AccessToken
}

func TestStorefront_BrowseAndShop(t *testing.T) {
	gw, _ := newStack(t)

	// browsing needs no account
	var products []map[string]any
	if code := doJSON(t, http.MethodGet, gw.URL+"/products", "", nil, &products); code != http.StatusOK {
		t.Fatalf("list products: status %d", code)
	}
	if len(products) == 0 {
		t.Fatalf("expected seeded products")
	}

	var category struct {
		Count    int              `json:"count"`
		Products []map[string]any `json:"products"`
	}
	if code := doJSON(t, http.MethodGet, gw.URL+"/categories/chocolate/products", "", nil, &category); code != http.StatusOK {
		t.Fatalf("category browse: status %d", code)
	}
	if category.Count != 1 {
		t.Fatalf("chocolate category count = %d, want 1", category.Count)
	}
	productID, _ := category.Products[0]["id"].(string)
	price, _ := category.Products[0]["price"].(string)
	if productID == "" || price == "" {
		t.Fatalf("bad product payload: %#v", category.Products[0])
	}

	// the cart needs a logged-in customer
	if code := doJSON(t, http.MethodGet, gw.URL+"/cart", "", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("cart without token: status %d, want 401", code)
	}

	if code := doJSON(t, http.MethodPost, gw.URL+"/auth/register", "", map[string]any{
		"email":    "rita@example.com",
		"password": "password123!",
	}, nil); code != http.StatusCreated {
		t.Fatalf("register: status %d", code)
	}
	token := login(t, gw, "rita@example.com", "password123!")

	// adding the same product twice yields one line item of quantity 2
	addBody := map[string]any{"id": productID, "name": "Chocolate Truffle Cake", "price": price}
	var cartResp struct {
		Items []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		ItemCount int    `json:"item_count"`
		Subtotal  string `json:"subtotal"`
	}
	for i := 0; i < 2; i++ {
		if code := doJSON(t, http.MethodPost, gw.URL+"/cart/items", token, addBody, &cartResp); code != http.StatusOK {
			t.Fatalf("add to cart: status %d", code)
		}
	}
	if len(cartResp.Items) != 1 || cartResp.Items[0].Quantity != 2 {
		t.Fatalf("cart items = %#v, want one line of quantity 2", cartResp.Items)
	}
	if cartResp.ItemCount != 2 {
		t.Fatalf("item_count = %d, want 2", cartResp.ItemCount)
	}
	if cartResp.Subtotal != "1100" {
		t.Fatalf("subtotal = %q, want 1100", cartResp.Subtotal)
	}

	// stepping the quantity down to zero empties the cart
	if code := doJSON(t, http.MethodPut, gw.URL+"/cart/items/"+productID, token, map[string]any{"quantity": 0}, &cartResp); code != http.StatusOK {
		t.Fatalf("set quantity: status %d", code)
	}
	if len(cartResp.Items) != 0 || cartResp.ItemCount != 0 {
		t.Fatalf("cart not empty after quantity 0: %#v", cartResp)
	}
}

func TestStorefront_AdminGating(t *testing.T) {
	gw, users := newStack(t)

	newProduct := map[string]any{"name": "Jowar Crackers", "category": "Cookies", "price": "110"}

	// no token at all
	if code := doJSON(t, http.MethodPost, gw.URL+"/products", "", newProduct, nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous product create: status %d, want 401", code)
	}

	// customer token
	if code := doJSON(t, http.MethodPost, gw.URL+"/auth/register", "", map[string]any{
		"email":    "sam@example.com",
		"password": "password123!",
	}, nil); code != http.StatusCreated {
		t.Fatalf("register: status %d", code)
	}
	customerToken := login(t, gw, "sam@example.com", "password123!")
	if code := doJSON(t, http.MethodPost, gw.URL+"/products", customerToken, newProduct, nil); code != http.StatusForbidden {
		t.Fatalf("customer product create: status %d, want 403", code)
	}

	// provisioned admin
	if err := users.Create(context.Background(), "owner@bakeshop.test", "password123!", auth.RoleAdmin, "u_admin"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	adminToken := login(t, gw, "owner@bakeshop.test", "password123!")
	if code := doJSON(t, http.MethodPost, gw.URL+"/products", adminToken, newProduct, nil); code != http.StatusCreated {
		t.Fatalf("admin product create: status %d, want 201", code)
	}
}

func TestStorefront_SpoofedIdentityHeadersAreDropped(t *testing.T) {
	gw, _ := newStack(t)

	req, err := http.NewRequest(http.MethodPost, gw.URL+"/products", bytes.NewReader([]byte(`{"name":"x","category":"y","price":"1"}`)))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-User-Id", "u_fake")
	req.Header.Set("X-User-Role", "admin")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("spoofed headers: status %d, want 401", resp.StatusCode)
	}
}
