package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/pkg/httpx"
	itemsvcs "github.com/ghuser/storefront/services/item/application/services"
	itemmemory "github.com/ghuser/storefront/services/item/infrastructure/persistence/memory"
	merchantsvcs "github.com/ghuser/storefront/services/merchant/application/services"
	merchantmemory "github.com/ghuser/storefront/services/merchant/infrastructure/persistence/memory"
)

type harness struct {
	t         *testing.T
	handler   http.Handler
	merchants *merchantsvcs.Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	merchants := &merchantsvcs.Services{
		Merchant: merchantsvcs.NewMerchantService(merchantmemory.NewMerchantRepository(), nil, nil),
	}
	items := &itemsvcs.Services{
		Item: itemsvcs.NewItemService(itemmemory.NewItemRepository(), merchants.Merchant, nil, nil, nil),
	}
	r := httpx.NewRouter(httpx.ServerConfig{
		ServiceName:        "storefront-test",
		CORSAllowedOrigins: "*",
		RateLimitPerMinute: 10000,
	}, httpx.Middlewares{})
	r.Route("/api/v1", func(r chi.Router) {
		registerRoutes(r, merchants, items)
	})
	return &harness{t: t, handler: r, merchants: merchants}
}

func (h *harness) merchant(name string) string {
	h.t.Helper()
	m, err := h.merchants.Merchant.Create(context.Background(), name)
	if err != nil {
		h.t.Fatalf("create merchant: %v", err)
	}
	return jsonID(m.ID)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/v1"+path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

// createItem posts an item and returns its string id.
func (h *harness) createItem(body string) string {
	h.t.Helper()
	rr := h.do(http.MethodPost, "/items", body)
	if rr.Code != http.StatusCreated {
		h.t.Fatalf("create item: expected 201, got %d: %s", rr.Code, rr.Body)
	}
	return dataOf(h.t, rr)["id"].(string)
}

type document struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Detail map[string][]string `json:"detail"`
	} `json:"errors"`
}

func decodeDoc(t *testing.T, rr *httptest.ResponseRecorder) document {
	t.Helper()
	var doc document
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return doc
}

func dataOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var one map[string]any
	if err := json.Unmarshal(decodeDoc(t, rr).Data, &one); err != nil {
		t.Fatalf("data is not an object: %v", err)
	}
	return one
}

func listOf(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var many []map[string]any
	if err := json.Unmarshal(decodeDoc(t, rr).Data, &many); err != nil {
		t.Fatalf("data is not an array: %v", err)
	}
	return many
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rr.Code, rr.Body)
	}
}

func TestItems_CreatedItemReadsBackExactly(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")

	id := h.createItem(`{"item":{"name":"Widget","description":"A widget","unit_price":9.99,"merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodGet, "/items/"+id, "")
	expectStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	for _, want := range []string{
		`"id":"` + id + `"`,
		`"type":"item"`,
		`"unit_price":9.99`,
		`"merchant_id":` + mid,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in %s", want, body)
		}
	}

	attrs := dataOf(t, rr)["attributes"].(map[string]any)
	if attrs["name"] != "Widget" || attrs["description"] != "A widget" {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
	if _, ok := attrs["id"]; ok {
		t.Fatal("attributes must not repeat the id")
	}
}

func TestItems_WholePriceRendersAsFloat(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"name":"Bolt","unit_price":"10","merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodGet, "/items/"+id, "")
	if !strings.Contains(rr.Body.String(), `"unit_price":10.0`) {
		t.Fatalf("expected a float price, got %s", rr.Body)
	}
}

func TestItems_OmittedAttributesDefaultToEmpty(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"merchant_id":` + mid + `,"ignored":"x"}}`)

	attrs := dataOf(t, h.do(http.MethodGet, "/items/"+id, ""))["attributes"].(map[string]any)
	if attrs["name"] != "" || attrs["description"] != "" || attrs["unit_price"] != 0.0 {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}

func TestItems_CreateRejections(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")

	tests := []struct {
		name   string
		body   string
		status int
		field  string
		msg    string
	}{
		{"missing item key", `{"name":"Widget"}`, http.StatusBadRequest, "item", "is missing"},
		{"null item", `{"item":null}`, http.StatusBadRequest, "item", "is missing"},
		{"empty item", `{"item":{}}`, http.StatusBadRequest, "item", "is missing"},
		{"unknown merchant", `{"item":{"name":"W","merchant_id":999}}`, http.StatusBadRequest, "merchant", "must exist"},
		{"no merchant", `{"item":{"name":"W"}}`, http.StatusBadRequest, "merchant", "must exist"},
		{"merchant id as string", `{"item":{"merchant_id":"` + mid + `"}}`, http.StatusBadRequest, "merchant_id", "is invalid"},
		{"price not a number", `{"item":{"unit_price":"cheap","merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"price beyond float range", `{"item":{"unit_price":"1e400","merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"price number beyond float range", `{"item":{"unit_price":1e400,"merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"price with huge exponent", `{"item":{"unit_price":"1e100000000","merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"price with huge negative exponent", `{"item":{"unit_price":"1e-100000000","merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"price with sixteen integer digits", `{"item":{"unit_price":"1000000000000000","merchant_id":` + mid + `}}`, http.StatusBadRequest, "unit_price", "is invalid"},
		{"malformed body", `{"item":`, http.StatusBadRequest, "body", "is not valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := h.do(http.MethodPost, "/items", tt.body)
			expectStatus(t, rr, tt.status)
			doc := decodeDoc(t, rr)
			if len(doc.Errors) != 1 {
				t.Fatalf("expected one error object, got %s", rr.Body)
			}
			msgs := doc.Errors[0].Detail[tt.field]
			if len(msgs) != 1 || msgs[0] != tt.msg {
				t.Fatalf("expected %s %q, got %s", tt.field, tt.msg, rr.Body)
			}
		})
	}

	items := listOf(t, h.do(http.MethodGet, "/items", ""))
	if len(items) != 0 {
		t.Fatalf("rejected requests must not create items, found %d", len(items))
	}
}

func TestItems_LargestPriceRoundTrips(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"name":"Yacht","unit_price":"999999999999999.99","merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodGet, "/items/"+id, "")
	expectStatus(t, rr, http.StatusOK)
	attrs := dataOf(t, rr)["attributes"].(map[string]any)
	if attrs["unit_price"].(float64) < 999999999999999 {
		t.Fatalf("unexpected price: %v", attrs["unit_price"])
	}

	rr = h.do(http.MethodGet, "/items", "")
	expectStatus(t, rr, http.StatusOK)
	if len(listOf(t, rr)) != 1 {
		t.Fatalf("expected the item listed, got %s", rr.Body)
	}
}

func TestItems_PatchRejectsOutOfRangePrice(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"name":"Widget","unit_price":"9.99","merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodPatch, "/items/"+id, `{"item":{"unit_price":"1e400"}}`)
	expectStatus(t, rr, http.StatusBadRequest)
	if msgs := decodeDoc(t, rr).Errors[0].Detail["unit_price"]; len(msgs) != 1 || msgs[0] != "is invalid" {
		t.Fatalf("unexpected errors: %s", rr.Body)
	}

	rr = h.do(http.MethodGet, "/items/"+id, "")
	expectStatus(t, rr, http.StatusOK)
	if price := dataOf(t, rr)["attributes"].(map[string]any)["unit_price"]; price != 9.99 {
		t.Fatalf("price must be unchanged, got %v", price)
	}
}

func TestItems_PatchReplacesOnlySuppliedAttributes(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	other := h.merchant("Corner Shop")
	id := h.createItem(`{"item":{"name":"Widget","description":"A widget","unit_price":9.99,"merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodPatch, "/items/"+id, `{"item":{"name":"Gadget"}}`)
	expectStatus(t, rr, http.StatusOK)
	attrs := dataOf(t, rr)["attributes"].(map[string]any)
	if attrs["name"] != "Gadget" || attrs["description"] != "A widget" || attrs["unit_price"] != 9.99 {
		t.Fatalf("unexpected attributes after patch: %v", attrs)
	}

	rr = h.do(http.MethodPatch, "/items/"+id, `{"item":{"merchant_id":`+other+`}}`)
	expectStatus(t, rr, http.StatusOK)
	owner := dataOf(t, h.do(http.MethodGet, "/items/"+id+"/merchant", ""))
	if owner["attributes"].(map[string]any)["name"] != "Corner Shop" {
		t.Fatalf("expected ownership to move, got %v", owner)
	}
}

func TestItems_PatchFailures(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"name":"Widget","merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodPatch, "/items/"+id, `{"item":{"merchant_id":424242}}`)
	expectStatus(t, rr, http.StatusBadRequest)
	if got := decodeDoc(t, rr).Errors[0].Detail["merchant"]; len(got) != 1 || got[0] != "must exist" {
		t.Fatalf("unexpected errors: %s", rr.Body)
	}

	rr = h.do(http.MethodPatch, "/items/"+id, `{"other":{}}`)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = h.do(http.MethodPatch, "/items/999", `{"item":{"name":"x"}}`)
	expectStatus(t, rr, http.StatusNotFound)

	attrs := dataOf(t, h.do(http.MethodGet, "/items/"+id, ""))["attributes"].(map[string]any)
	if owner, _ := attrs["merchant_id"].(float64); jsonID(int64(owner)) != mid {
		t.Fatalf("failed patch must not change the owner, got %v", attrs["merchant_id"])
	}
}

func TestItems_DeleteRemovesFromEveryView(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	first := h.createItem(`{"item":{"name":"A","merchant_id":` + mid + `}}`)
	h.createItem(`{"item":{"name":"B","merchant_id":` + mid + `}}`)

	before := len(listOf(t, h.do(http.MethodGet, "/merchants/"+mid+"/items", "")))

	rr := h.do(http.MethodDelete, "/items/"+first, "")
	expectStatus(t, rr, http.StatusNoContent)
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body)
	}

	expectStatus(t, h.do(http.MethodGet, "/items/"+first, ""), http.StatusNotFound)
	after := len(listOf(t, h.do(http.MethodGet, "/merchants/"+mid+"/items", "")))
	if after != before-1 {
		t.Fatalf("expected merchant item count %d, got %d", before-1, after)
	}
	expectStatus(t, h.do(http.MethodDelete, "/items/"+first, ""), http.StatusNotFound)
}

func TestItems_NotFound(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/items/1", "/items/abc", "/items/-3", "/items/1/merchant", "/merchants/1/items"} {
		t.Run(path, func(t *testing.T) {
			rr := h.do(http.MethodGet, path, "")
			expectStatus(t, rr, http.StatusNotFound)
			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Fatalf("expected {\"error\": ...}, got %s", rr.Body)
			}
		})
	}
}

func TestMerchants_ListReturnsEveryMerchant(t *testing.T) {
	h := newHarness(t)
	names := []string{"Schroeder-Jerde", "Klein, Rempel and Jones", "Willms and Sons"}
	for _, n := range names {
		h.merchant(n)
	}

	got := listOf(t, h.do(http.MethodGet, "/merchants", ""))
	if len(got) != len(names) {
		t.Fatalf("expected %d merchants, got %d", len(names), len(got))
	}
	for i, m := range got {
		if m["type"] != "merchant" {
			t.Errorf("merchant %d: type %v", i, m["type"])
		}
		attrs, _ := m["attributes"].(map[string]any)
		if len(attrs) == 0 || attrs["name"] != names[i] {
			t.Errorf("merchant %d: attributes %v", i, attrs)
		}
	}
}

func TestMerchants_EmptyListIsArray(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodGet, "/merchants", "")
	expectStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != `{"data":[]}` {
		t.Fatalf("expected empty data array, got %s", rr.Body)
	}
}

func TestMerchants_Show(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Schroeder-Jerde")

	rr := h.do(http.MethodGet, "/merchants/"+mid, "")
	expectStatus(t, rr, http.StatusOK)
	if want := `{"data":{"id":"` + mid + `","type":"merchant","attributes":{"name":"Schroeder-Jerde"}}}`; strings.TrimSpace(rr.Body.String()) != want {
		t.Fatalf("expected %s, got %s", want, rr.Body)
	}
	expectStatus(t, h.do(http.MethodGet, "/merchants/999", ""), http.StatusNotFound)
}

func TestMerchants_FindAllIsCaseInsensitiveSubstring(t *testing.T) {
	h := newHarness(t)
	h.merchant("Acme Corp")
	h.merchant("Bolt Supply")

	for _, q := range []string{"acme", "ACME", "me%20co", "Corp"} {
		t.Run(q, func(t *testing.T) {
			got := listOf(t, h.do(http.MethodGet, "/merchants/find_all?name="+q, ""))
			if len(got) != 1 || got[0]["attributes"].(map[string]any)["name"] != "Acme Corp" {
				t.Fatalf("expected only Acme Corp, got %v", got)
			}
		})
	}

	rr := h.do(http.MethodGet, "/merchants/find_all?name=zzz", "")
	expectStatus(t, rr, http.StatusOK)
	if len(listOf(t, rr)) != 0 {
		t.Fatalf("expected no matches, got %s", rr.Body)
	}
}

func TestMerchants_FindAllOrdersByName(t *testing.T) {
	h := newHarness(t)
	h.merchant("Zeta Ring")
	h.merchant("Alpha Ring")
	h.merchant("Mid Ring")

	got := listOf(t, h.do(http.MethodGet, "/merchants/find_all?name=RING", ""))
	var names []string
	for _, m := range got {
		names = append(names, m["attributes"].(map[string]any)["name"].(string))
	}
	if strings.Join(names, ",") != "Alpha Ring,Mid Ring,Zeta Ring" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestMerchants_FindReturnsFirstByName(t *testing.T) {
	h := newHarness(t)
	h.merchant("Zeta Ring")
	alpha := h.merchant("Alpha Ring")

	rr := h.do(http.MethodGet, "/merchants/find?name=ring", "")
	expectStatus(t, rr, http.StatusOK)
	if id := dataOf(t, rr)["id"]; id != alpha {
		t.Fatalf("expected merchant %s, got %v", alpha, id)
	}
}

func TestMerchants_FindWithoutMatchIsEmptyShell(t *testing.T) {
	h := newHarness(t)
	h.merchant("Acme Corp")

	rr := h.do(http.MethodGet, "/merchants/find?name=nothing-like-this", "")
	expectStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(rr.Body.String()); got != `{"data":{"id":null,"type":null,"attributes":{}}}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestMerchants_FindTreatsWildcardsLiterally(t *testing.T) {
	h := newHarness(t)
	h.merchant("Acme Corp")

	rr := h.do(http.MethodGet, "/merchants/find_all?name=%25", "")
	if got := listOf(t, rr); len(got) != 0 {
		t.Fatalf("%% must match only a literal percent sign, got %v", got)
	}
}

func TestItemMerchant_ReturnsOwner(t *testing.T) {
	h := newHarness(t)
	mid := h.merchant("Tech Store")
	id := h.createItem(`{"item":{"name":"Widget","description":"A widget","unit_price":9.99,"merchant_id":` + mid + `}}`)

	rr := h.do(http.MethodGet, "/items/"+id+"/merchant", "")
	expectStatus(t, rr, http.StatusOK)
	data := dataOf(t, rr)
	if data["id"] != mid || data["type"] != "merchant" {
		t.Fatalf("unexpected resource: %v", data)
	}
	if name := data["attributes"].(map[string]any)["name"]; name != "Tech Store" {
		t.Fatalf("expected Tech Store, got %v", name)
	}
}

func TestMerchantItems_OnlyOwnedItemsInIDOrder(t *testing.T) {
	h := newHarness(t)
	a := h.merchant("A")
	b := h.merchant("B")
	first := h.createItem(`{"item":{"name":"1","merchant_id":` + a + `}}`)
	h.createItem(`{"item":{"name":"2","merchant_id":` + b + `}}`)
	third := h.createItem(`{"item":{"name":"3","merchant_id":` + a + `}}`)

	got := listOf(t, h.do(http.MethodGet, "/merchants/"+a+"/items", ""))
	if len(got) != 2 || got[0]["id"] != first || got[1]["id"] != third {
		t.Fatalf("unexpected items: %v", got)
	}

	rr := h.do(http.MethodGet, "/merchants/"+b+"/items", "")
	if len(listOf(t, rr)) != 1 {
		t.Fatalf("expected one item for B, got %s", rr.Body)
	}
}
