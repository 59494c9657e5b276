package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	store := NewInMemoryStore(zap.NewNop())
	handler := NewHandler(NewService(store, zap.NewNop()))
	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func cartCookie(res *http.Response) string {
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			return c.Value
		}
	}
	return ""
}

func decodeCartResponse(t *testing.T, res *http.Response) cartResponse {
	t.Helper()
	var out cartResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decoding cart response: %v", err)
	}
	return out
}

func TestCartRoutes_AddGetRemoveClear(t *testing.T) {
	app := newTestApp()

	// first touch issues a cart cookie and an empty cart
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for empty cart, got %d", res.StatusCode)
	}
	cookie := cartCookie(res)
	if cookie == "" {
		t.Fatalf("expected a %s cookie on first touch", CookieName)
	}
	if body := decodeCartResponse(t, res); body.Count != 0 || body.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", body)
	}

	// add two units of the bowl and one mug
	add := func(payload string) cartResponse {
		r := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Cookie", CookieName+"="+cookie)
		resp, _ := app.Test(r)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 adding item, got %d", resp.StatusCode)
		}
		return decodeCartResponse(t, resp)
	}
	add(`{"id":"bowl","name":"Bowl","price":19.99,"available":true}`)
	add(`{"id":"bowl","name":"Bowl","price":19.99,"available":true}`)
	body := add(`{"id":"mug","name":"Mug","price":12.50,"available":true}`)

	if body.Count != 3 {
		t.Fatalf("expected 3 items after adds, got %d", body.Count)
	}
	if body.Total < 52.47 || body.Total > 52.49 {
		t.Fatalf("expected total ~52.48, got %v", body.Total)
	}
	if body.Items[0].ID != "bowl" || body.Items[2].ID != "mug" {
		t.Fatalf("expected insertion order preserved, got %+v", body.Items)
	}

	// removing the bowl drops both units
	reqDel := httptest.NewRequest("DELETE", "/api/v1/cart/items/bowl", nil)
	reqDel.Header.Set("Cookie", CookieName+"="+cookie)
	resDel, _ := app.Test(reqDel)
	if resDel.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 removing item, got %d", resDel.StatusCode)
	}
	if body := decodeCartResponse(t, resDel); body.Count != 1 || body.Items[0].ID != "mug" {
		t.Fatalf("expected only the mug left, got %+v", body)
	}

	// clearing empties the persisted slot
	reqClear := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	reqClear.Header.Set("Cookie", CookieName+"="+cookie)
	resClear, _ := app.Test(reqClear)
	if resClear.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 clearing cart, got %d", resClear.StatusCode)
	}

	reqGet := httptest.NewRequest("GET", "/api/v1/cart", nil)
	reqGet.Header.Set("Cookie", CookieName+"="+cookie)
	resGet, _ := app.Test(reqGet)
	if body := decodeCartResponse(t, resGet); body.Count != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", body)
	}
}

func TestCartRoutes_AddRejectsMalformedSnapshots(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name    string
		payload string
	}{
		{"missing id", `{"name":"Bowl","price":19.99}`},
		{"missing name", `{"id":"bowl","price":19.99}`},
		{"negative price", `{"id":"evil","name":"Refund Me","price":-500}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(tc.payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Cookie", CookieName+"=alice")
		res, _ := app.Test(req)
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, res.StatusCode)
		}
	}

	// nothing was persisted, so the total stays at zero
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("Cookie", CookieName+"=alice")
	res, _ := app.Test(req)
	if body := decodeCartResponse(t, res); body.Count != 0 || body.Total != 0 {
		t.Fatalf("expected cart untouched by rejected snapshots, got %+v", body)
	}
}

func TestCartRoutes_RemoveAbsentIDIsOK(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("DELETE", "/api/v1/cart/items/nothing", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 removing absent id, got %d", res.StatusCode)
	}
	if body := decodeCartResponse(t, res); body.Count != 0 {
		t.Fatalf("expected cart unchanged, got %+v", body)
	}
}

func TestCartsAreScopedByCookie(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"id":"bowl","name":"Bowl","price":19.99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", CookieName+"=alice")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 adding item, got %d", res.StatusCode)
	}

	other := httptest.NewRequest("GET", "/api/v1/cart", nil)
	other.Header.Set("Cookie", CookieName+"=bob")
	res, _ := app.Test(other)
	if body := decodeCartResponse(t, res); body.Count != 0 {
		t.Fatalf("expected bob's cart to be empty, got %+v", body)
	}
}
