package main

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
	"ecommerce-dashboard/internal/server"
	"ecommerce-dashboard/internal/services"
)

func createTestServer() *server.Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	fields := models.FieldReviewScore | models.FieldOrderValue | models.FieldFreight |
		models.FieldPrice | models.FieldDeliveryDays | models.FieldEstimatedDays | models.FieldDeliveryDelay
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
			Fields: fields,
		},
		{
			Month: "2017-02", Category: "toys", State: "RJ", PaymentType: "voucher",
			CustomerID: "c2", ReviewScore: 3, OrderValue: 45, FreightValue: 5,
			Price: 40, DeliveryDays: 12, EstimatedDays: 9, DeliveryDelay: 3,
			Fields: fields,
		},
	}

	analytics := services.NewAnalytics(dataset.NewTable(orders, columns), logger)
	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}
	return server.NewServer(analytics, logger, templateHandlers)
}

func TestServer_Routes(t *testing.T) {
	srv := createTestServer()

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		contentType string
	}{
		{"dashboard page", "/", http.StatusOK, "text/html"},
		{"health check", "/health", http.StatusOK, "application/json"},
		{"admin stats", "/admin/stats", http.StatusOK, "application/json"},
		{"kpis", "/api/kpis", http.StatusOK, "application/json"},
		{"charts", "/api/charts", http.StatusOK, "application/json"},
		{"options", "/api/options", http.StatusOK, "application/json"},
		{"orders", "/api/orders", http.StatusOK, "application/json"},
		{"filtered export", "/export/filtered.csv", http.StatusOK, "text/csv"},
		{"full export", "/export/full.csv", http.StatusOK, "text/csv"},
		{"sse dashboard", "/sse/dashboard", http.StatusOK, "text/event-stream"},
		{"sse refresh", "/sse/refresh-all", http.StatusOK, "text/event-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)
			srv.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("GET %s: status = %d, want %d", tt.path, w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
				t.Errorf("GET %s: Content-Type = %q, want %q", tt.path, ct, tt.contentType)
			}
		})
	}
}

func TestServer_Routes_MethodNotAllowed(t *testing.T) {
	srv := createTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/kpis", nil)
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/kpis: status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestServer_KPIsWithFilters(t *testing.T) {
	srv := createTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/kpis?state=SP&payment=credit_card", nil)
	srv.ServeHTTP(w, r)

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
	if body.Data["total_orders"] != float64(1) {
		t.Errorf("total_orders = %v, want 1", body.Data["total_orders"])
	}
}

func TestHandleDashboard(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	handleDashboard(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=300") {
		t.Errorf("Cache-Control = %q", cc)
	}

	body := w.Body.String()
	for _, content := range []string{"<!doctype html>", "E-commerce Analytics Dashboard", "data-on-load"} {
		if !strings.Contains(body, content) {
			t.Errorf("expected dashboard page to contain %q", content)
		}
	}
}
