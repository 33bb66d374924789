package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/salon-ops/internal/middleware"
	"github.com/Dan9191/salon-ops/internal/service"
	"github.com/Dan9191/salon-ops/internal/testutil"
)

type testServer struct {
	router http.Handler
	store  *testutil.MemStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := testutil.NewMemStore()
	log, _ := testutil.Logger()
	svc, err := service.NewService(store, log, testutil.Config())
	require.NoError(t, err)

	h := NewHandler(svc, log)
	r := mux.NewRouter()
	h.RegisterPublic(r)
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware(svc, log))
	h.RegisterProtected(protected)
	return &testServer{router: r, store: store}
}

// do sends an authenticated request and returns the recorder.
func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "password")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth_Public(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"salon-ops-api"}`, rec.Body.String())
}

func TestLogin_ThenBearer(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"password"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"guess"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, float64(401), decodeBody(t, rec)["status"])
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/costs", "/costs/total", "/categories", "/cost-items", "/project-summary"} {
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestFixedCosts(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/costs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0.00", decodeBody(t, rec)["rent"])

	rec = s.do(t, http.MethodPost, "/costs", `{"rent": 2500, "utilities": "500.00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/costs/total", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_monthly_fixed_costs":"3000.00"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/costs", `{"rent": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/costs", `{"rent": "1.005"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "rent")

	rec = s.do(t, http.MethodPost, "/costs", `{"rent": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecast_Minimal(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/costs", `{"rent": 3000}`).Code)

	rec := s.do(t, http.MethodPost, "/forecast", `{
		"haircuts_per_day": 27,
		"price_per_cut": 25,
		"stylist_hours_per_day": 8,
		"stylist_hourly_rate": 44,
		"operating_days_per_month": 24
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "minimal", body["mode"])
	assert.Equal(t, "16200.00", body["monthly_revenue"])
	assert.Equal(t, "8448.00", body["monthly_labor_cost"])
	assert.Equal(t, "4752.00", body["net_profit"])
	flags := body["risk_flags"].(map[string]interface{})
	assert.Equal(t, true, flags["labor_too_high"])
	assert.Equal(t, false, flags["negative_cash_flow"])
	assert.NotContains(t, body, "total_revenue")
}

func TestForecast_ExpandedAndValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/forecast", `{
		"haircuts_per_day": 10,
		"price_per_cut": 30,
		"stylist_hours_per_day": 8,
		"stylist_hourly_rate": 20,
		"operating_days_per_month": 20,
		"num_stylists": 2,
		"retail_sales": 1000,
		"retail_cogs_pct": 0.5
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "expanded", body["mode"])
	assert.Equal(t, "7000.00", body["total_revenue"])
	assert.Equal(t, "500.00", body["total_cogs"])

	rec = s.do(t, http.MethodPost, "/forecast", `{"haircuts_per_day": 1, "price_per_cut": 10, "royalties_pct": 1.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "royalties_pct")

	rec = s.do(t, http.MethodPost, "/forecast", `{"mode": "deluxe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoriesAndItems(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/categories", `{"name":"Construction","projected_total":"1000","sort_order":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	catID := decodeBody(t, rec)["id"].(float64)
	require.NotZero(t, catID)

	rec = s.do(t, http.MethodPost, "/categories", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/cost-items", `{"category_id": 999, "amount": 10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/cost-items", `{"category_id": 1, "amount": 0.004}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/cost-items",
		`{"category_id": 1, "description":"Framing","amount": 1200.5,"status":"paid","date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody(t, rec)
	assert.Equal(t, "1200.50", item["amount"])
	assert.Equal(t, "2024-03-01", item["date"])
	itemID := int64(item["id"].(float64))

	rec = s.do(t, http.MethodGet, "/cost-items?status=paid&category_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rec = s.do(t, http.MethodGet, "/cost-items?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/cost-items?category_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/project-summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody(t, rec)
	assert.Equal(t, "1000.00", summary["total_projected"])
	assert.Equal(t, "1200.50", summary["total_actual"])
	assert.Equal(t, "-200.50", summary["variance"])

	rec = s.do(t, http.MethodPut, "/cost-items/"+itoa(itemID), `{"category_id": 1, "amount": 900}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "planned", decodeBody(t, rec)["status"])

	rec = s.do(t, http.MethodGet, "/cost-items/424242", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/categories/1", `{"name":"Build-out","projected_total":2000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/categories/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/cost-items/"+itoa(itemID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodDelete, "/cost-items/"+itoa(itemID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportProjectSummary(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/categories", `{"name":"Signage","projected_total":200}`).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/cost-items", `{"category_id":1,"amount":250}`).Code)

	rec := s.do(t, http.MethodGet, "/project-summary/export.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(rec.Body.Bytes()))
	cat := doc.FindElement("//Category")
	require.NotNil(t, cat)
	assert.Equal(t, "true", cat.SelectAttrValue("overBudget", ""))
}

func TestStoreFailure_Returns500(t *testing.T) {
	s := newTestServer(t)
	s.store.Err = testutil.ErrStoreDown

	rec := s.do(t, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"message":"internal server error"}`, rec.Body.String())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
