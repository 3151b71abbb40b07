package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/http/handlers"
)

func placeOrder(t *testing.T, cl *client) string {
	t.Helper()
	cl.post("/cart", url.Values{"productId": {"1"}, "qty": {"1"}})
	resp := cl.post("/orders", validCheckout())
	require.Equal(t, http.StatusFound, resp.StatusCode)
	return strings.TrimPrefix(resp.Header.Get("Location"), "/order/")
}

func TestAdminOrderStatusLogs(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	orderID := placeOrder(t, cl)
	cl.login()

	logs := captureLogs(t, func() {
		resp := cl.post("/admin/orders/"+orderID+"/status", url.Values{"status": {"Shipped"}})
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
	e, ok := findLog(logs, "admin.orders.update")
	require.True(t, ok, "expected admin.orders.update audit log")
	assert.Equal(t, "audit", e.Kind)
	assert.Equal(t, orderID, e.Fields["order_id"])

	resp := cl.get("/admin/orders/" + orderID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Asha")
	assert.Contains(t, page, "12 Market Road")

	// the customer sees the new status
	resp = cl.get("/order/" + orderID)
	assert.Contains(t, body(t, resp), "Shipped")
}

func TestAdminStatusUnknownOrder(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	cl.login()

	resp := cl.post("/admin/orders/ORD123/status", url.Values{"status": {"Delivered"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	orderID := placeOrder(t, cl)
	resp = cl.post("/admin/orders/"+orderID+"/status", url.Values{"status": {"Lost"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminStatusRejectsMalformedOrderID(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	cl.login()

	for _, id := range []string{"bad%20id", "ORD%27--", strings.Repeat("A", 65)} {
		var resp *http.Response
		logs := captureLogs(t, func() {
			resp = cl.post("/admin/orders/"+id+"/status", url.Values{"status": {"Delivered"}})
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
		_, rejected := findLog(logs, "validation.fail")
		assert.True(t, rejected, id)
		_, looked := findLog(logs, "admin.orders.update.fail")
		assert.False(t, looked, "malformed id %q reached the order lookup", id)
	}
}

func TestAdminOrderSearch(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	orderID := placeOrder(t, cl)
	cl.login()

	resp := cl.get("/admin/orders?q=asha")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), orderID)

	resp = cl.get("/admin/orders?q=nobody")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "No orders.")
}

func TestAdminProductLifecycle(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	cl.login()

	form := url.Values{
		"name":        {"Green Tea"},
		"price":       {"199.99"},
		"category":    {"Beverages"},
		"stock":       {"12"},
		"description": {"Loose leaf, 250g"},
		"glyph":       {"🍵"},
	}
	logs := captureLogs(t, func() {
		resp := cl.post("/admin/products", form)
		require.Equal(t, http.StatusFound, resp.StatusCode)
	})
	_, ok := findLog(logs, "admin.products.add")
	require.True(t, ok)

	// ids are never reused: the seed occupies 1..6
	p, err := cl.deps.ProductHandler.Catalog.Find(7)
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", p.Name)
	assert.Equal(t, "199.99", p.Price.StringFixed(2))

	// invalid price is rejected with the dashboard re-rendered
	bad := url.Values{}
	for k, v := range form {
		bad[k] = v
	}
	bad.Set("price", "0")
	resp := cl.post("/admin/products", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "price must be greater than zero")

	bad.Set("price", "abc")
	resp = cl.post("/admin/products", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// edit
	resp = cl.get("/admin/products/7")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	form.Set("stock", "0")
	resp = cl.post("/admin/products/7", form)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	p, err = cl.deps.ProductHandler.Catalog.Find(7)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	// a zero-stock product cannot go in a cart
	resp = cl.post("/cart", url.Values{"productId": {"7"}, "qty": {"1"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// delete, then it is gone
	resp = cl.post("/admin/products/7/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, cl.get("/product/7").StatusCode)
	assert.Equal(t, http.StatusNotFound, cl.post("/admin/products/7/delete", nil).StatusCode)
}

func TestAdminDashboardStats(t *testing.T) {
	cl := newClient(t, handlers.Options{})
	placeOrder(t, cl)
	cl.login()

	resp := cl.get("/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "₹472.50")
}
