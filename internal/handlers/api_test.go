package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

const allNumeric = models.FieldReviewScore | models.FieldOrderValue | models.FieldFreight |
	models.FieldPrice | models.FieldDeliveryDays | models.FieldEstimatedDays | models.FieldDeliveryDelay

func createTestAnalytics() *services.Analytics {
	columns := []string{
		dataset.ColMonth, dataset.ColCategory, dataset.ColState,
		dataset.ColReviewScore, dataset.ColPaymentType, dataset.ColOrderValue,
		dataset.ColFreight, dataset.ColPrice, dataset.ColCustomerID,
		dataset.ColDeliveryDays, dataset.ColEstimatedDays, dataset.ColDeliveryDelay,
	}
	orders := []models.Order{
		{
			Month: "2017-01", Category: "electronics", State: "SP", PaymentType: "credit_card",
			CustomerID: "c1", ReviewScore: 5, OrderValue: 120.5, FreightValue: 10,
			Price: 110.5, DeliveryDays: 7, EstimatedDays: 10, DeliveryDelay: -3,
			Fields: allNumeric,
		},
		{
			Month: "2017-02", Category: "toys", State: "RJ", PaymentType: "voucher",
			CustomerID: "c2", ReviewScore: 3, OrderValue: 45, FreightValue: 5,
			Price: 40, DeliveryDays: 12, EstimatedDays: 9, DeliveryDelay: 3,
			Fields: allNumeric,
		},
	}
	return services.NewAnalytics(dataset.NewTable(orders, columns), testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data    map[string]any `json:"data"`
		Success bool           `json:"success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !body.Success {
		t.Error("expected success response")
	}
	return body.Data
}

func TestAPIHandlers_HandleKPIs(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/kpis", nil)
	h.HandleKPIs(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	data := decodeData(t, w)
	if data["total_orders"] != float64(2) {
		t.Errorf("total_orders = %v, want 2", data["total_orders"])
	}
	if data["total_revenue"] != 165.5 {
		t.Errorf("total_revenue = %v, want 165.5", data["total_revenue"])
	}
}

func TestAPIHandlers_HandleKPIs_Filtered(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/kpis?state=SP", nil)
	h.HandleKPIs(w, r)

	data := decodeData(t, w)
	if data["total_orders"] != float64(1) {
		t.Errorf("total_orders = %v, want 1", data["total_orders"])
	}
}

func TestAPIHandlers_HandleKPIs_NoMatches(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/kpis?state=ZZ", nil)
	h.HandleKPIs(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("zero matches must not be an error, status = %d", w.Code)
	}

	data := decodeData(t, w)
	for _, key := range []string{"total_orders", "total_revenue", "avg_rating", "avg_freight_cost", "total_customers", "avg_price"} {
		if data[key] != float64(0) {
			t.Errorf("%s = %v, want 0", key, data[key])
		}
	}
}

func TestAPIHandlers_HandleCharts(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/charts", nil)
	h.HandleCharts(w, r)

	var body struct {
		Data []models.Chart `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Data) != 10 {
		t.Errorf("expected the full 10-chart catalog, got %d", len(body.Data))
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/options", nil)
	h.HandleOptions(w, r)

	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=300") {
		t.Errorf("options should be cacheable, Cache-Control = %q", cc)
	}

	data := decodeData(t, w)
	if data["review_min"] != float64(3) || data["review_max"] != float64(5) {
		t.Errorf("review bounds = %v..%v, want 3..5", data["review_min"], data["review_max"])
	}
}

func TestAPIHandlers_HandleOrders(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/orders?payment=voucher", nil)
	h.HandleOrders(w, r)

	data := decodeData(t, w)
	if data["total"] != float64(1) {
		t.Errorf("total = %v, want 1", data["total"])
	}
	records, ok := data["records"].([]any)
	if !ok || len(records) != 1 {
		t.Fatalf("records = %v", data["records"])
	}
}

func TestAPIHandlers_HandleExportFiltered(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/export/filtered.csv?state=SP", nil)
	h.HandleExportFiltered(w, r)

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "ecommerce_data_filtered_") || !strings.HasSuffix(cd, ".csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected header + 1 row, got %d lines", len(lines))
	}
}

func TestAPIHandlers_HandleExportFull(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/export/full.csv", nil)
	h.HandleExportFull(w, r)

	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "ecommerce_data_full_") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)
	h.HandleHealth(w, r)

	data := decodeData(t, w)
	if data["status"] != "healthy" {
		t.Errorf("status = %v", data["status"])
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin/stats", nil)
	h.HandleStats(w, r)

	data := decodeData(t, w)
	if data["record_count"] != float64(2) {
		t.Errorf("record_count = %v, want 2", data["record_count"])
	}
}
