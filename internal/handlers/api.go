package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

const previewRows = 50

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleKPIs returns the six-metric summary for the current filter
// selections.
func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	sel := SelectionsFromQuery(r.URL.Query(), h.analytics.Table().Schema)
	view := h.analytics.Filter(sel)

	errors.WriteSuccess(w, h.analytics.Summarize(view))
}

// HandleCharts returns the chart descriptor catalog for the current filter
// selections.
func (h *APIHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sel := SelectionsFromQuery(r.URL.Query(), h.analytics.Table().Schema)
	view := h.analytics.Filter(sel)

	errors.WriteSuccess(w, h.analytics.BuildCharts(view))
}

// HandleOptions returns the sidebar widget options. The option lists only
// change when the dataset does, so the response is cacheable.
func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": "public, max-age=300",
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.Options(), headers)
}

// HandleOrders returns a filtered raw-data preview, capped at 50 rows.
func (h *APIHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	sel := SelectionsFromQuery(r.URL.Query(), h.analytics.Table().Schema)
	view := h.analytics.Filter(sel)

	errors.WriteSuccess(w, map[string]any{
		"total":   view.Len(),
		"records": view.Records(previewRows),
	})
}

// HandleExportFiltered streams the filtered subset as a CSV attachment.
func (h *APIHandlers) HandleExportFiltered(w http.ResponseWriter, r *http.Request) {
	sel := SelectionsFromQuery(r.URL.Query(), h.analytics.Table().Schema)
	h.writeCSV(w, r, "filtered", sel)
}

// HandleExportFull streams the whole dataset as a CSV attachment.
func (h *APIHandlers) HandleExportFull(w http.ResponseWriter, r *http.Request) {
	h.writeCSV(w, r, "full", models.Selections{})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}

func (h *APIHandlers) writeCSV(w http.ResponseWriter, r *http.Request, scope string, sel models.Selections) {
	view := h.analytics.Filter(sel)

	filename := fmt.Sprintf("ecommerce_data_%s_%s.csv", scope, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := view.ExportCSV(w); err != nil {
		h.logger.Error("csv export failed", "scope", scope, "error", err)
	}
}
