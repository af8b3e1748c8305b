package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/services"
	"github.com/starfederation/datastar-go/datastar"
)

const maxTableRows = 50

var kpiTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-cards" class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total Orders</span><strong>{{.TotalOrders}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Total Revenue</span><strong>${{printf "%.2f" .TotalRevenue}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Price</span><strong>${{printf "%.2f" .AvgPrice}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Rating</span><strong>{{printf "%.2f" .AvgRating}}/5</strong></div>
<div class="kpi-card"><span class="kpi-label">Total Customers</span><strong>{{.TotalCustomers}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Freight Cost</span><strong>${{printf "%.2f" .AvgFreight}}</strong></div>
</div>`))

var summaryTemplate = template.Must(template.New("filterSummary").Parse(`
<div id="filter-summary" class="filter-summary">Showing {{.Shown}} orders out of {{.Total}} total orders</div>`))

var rawTableTemplate = template.Must(template.New("rawTable").Parse(`
<div id="raw-data">
{{if .Records}}<table class="modern-table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range $rec := .Records}}<tr>{{range $.Columns}}<td>{{index $rec .}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>{{else}}<p class="empty-note">No data to display with current filters</p>{{end}}
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

type summaryData struct {
	Shown int
	Total int
}

type rawTableData struct {
	Columns []string
	Records []map[string]string
}

func renderFragment(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder
	err := tmpl.Execute(&buf, data)
	return buf.String(), err
}

// HandleDashboard re-runs the full pipeline for the current selections and
// patches the KPI cards, the filter summary, the chart signals, and (when
// the raw-data toggle is on) the raw-data table.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	sel := SelectionsFromQuery(r.URL.Query(), h.analytics.Table().Schema)
	view := h.analytics.Filter(sel)

	if err := h.patchPipeline(sse, view); err != nil {
		return
	}

	showRaw := r.URL.Query().Get("show_raw") == "1"
	html, err := h.renderRawTable(view, showRaw)
	if err != nil {
		h.logger.Error("render raw table", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-renders everything with unrestricted selections.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	view := h.analytics.Table().All()
	if err := h.patchPipeline(sse, view); err != nil {
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patchPipeline(sse *datastar.ServerSentEventGenerator, view dataset.View) error {
	kpis := h.analytics.Summarize(view)
	charts := h.analytics.BuildCharts(view)

	html, err := renderFragment(kpiTemplate, kpis)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return err
	}
	sse.PatchElements(html)

	html, err = renderFragment(summaryTemplate, summaryData{
		Shown: view.Len(),
		Total: len(h.analytics.Table().Orders),
	})
	if err != nil {
		h.logger.Error("render filter summary", "error", err)
		return err
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"charts": charts,
		"kpis":   kpis,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return err
	}
	sse.PatchSignals(signals)

	return nil
}

func (h *SSEHandlers) renderRawTable(view dataset.View, show bool) (string, error) {
	data := rawTableData{}
	if show {
		data.Columns = h.analytics.Table().Columns
		data.Records = view.Records(maxTableRows)
	}
	return renderFragment(rawTableTemplate, data)
}
