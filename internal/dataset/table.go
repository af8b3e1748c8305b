package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ecommerce-dashboard/internal/models"
)

// Canonical column names recognized in the source CSV. Any subset may be
// present; unrecognized columns are dropped at load time.
const (
	ColMonth         = "order_month"
	ColCategory      = "product_category_name_english"
	ColState         = "customer_state"
	ColReviewScore   = "review_score"
	ColPaymentType   = "payment_type"
	ColOrderValue    = "total_order_value"
	ColFreight       = "freight_value"
	ColPrice         = "price"
	ColCustomerID    = "customer_unique_id"
	ColDeliveryDays  = "delivery_days"
	ColEstimatedDays = "estimated_days"
	ColDeliveryDelay = "delivery_delay"
)

// Table is the immutable in-memory dataset. It is built once by the Loader
// and never mutated afterwards; filtering produces Views (index lists) into
// it. Fields are exported for the gob snapshot cache.
type Table struct {
	Orders  []models.Order
	Columns []string // recognized source columns, in source order
	Schema  Schema
	Loaded  time.Time
}

// NewTable builds a table directly from parsed rows, for callers that do
// not go through the Loader.
func NewTable(orders []models.Order, columns []string) *Table {
	return &Table{
		Orders:  orders,
		Columns: columns,
		Schema:  buildSchema(columns, orders),
		Loaded:  time.Now(),
	}
}

// All returns a view covering every row.
func (t *Table) All() View {
	return View{table: t}
}

// View is a read-only subset of a Table, expressed as row indices. A nil
// index list means the whole table.
type View struct {
	table *Table
	idx   []int
}

// NewView builds a view over the given row indices.
func NewView(t *Table, idx []int) View {
	return View{table: t, idx: idx}
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	if v.idx == nil {
		if v.table == nil {
			return 0
		}
		return len(v.table.Orders)
	}
	return len(v.idx)
}

// At returns the i-th row of the view.
func (v View) At(i int) *models.Order {
	if v.idx == nil {
		return &v.table.Orders[i]
	}
	return &v.table.Orders[v.idx[i]]
}

// Schema returns the capability record of the backing table.
func (v View) Schema() Schema {
	if v.table == nil {
		return Schema{}
	}
	return v.table.Schema
}

// Records returns up to limit rows as column-name → cell-text maps, in view
// order, for raw-data previews. limit <= 0 means all rows.
func (v View) Records(limit int) []map[string]string {
	n := v.Len()
	if limit > 0 && n > limit {
		n = limit
	}

	records := make([]map[string]string, 0, n)
	for i := 0; i < n; i++ {
		o := v.At(i)
		rec := make(map[string]string, len(v.table.Columns))
		for _, col := range v.table.Columns {
			rec[col] = cellValue(o, col)
		}
		records = append(records, rec)
	}
	return records
}

// ExportCSV writes the view as CSV, header first, emitting exactly the
// recognized columns present in the source. Blank cells stay blank.
func (v View) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(v.table.Columns); err != nil {
		return err
	}

	record := make([]string, len(v.table.Columns))
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		for j, col := range v.table.Columns {
			record[j] = cellValue(o, col)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellValue(o *models.Order, col string) string {
	switch col {
	case ColMonth:
		return o.Month
	case ColCategory:
		return o.Category
	case ColState:
		return o.State
	case ColPaymentType:
		return o.PaymentType
	case ColCustomerID:
		return o.CustomerID
	case ColReviewScore:
		if o.Has(models.FieldReviewScore) {
			return strconv.Itoa(o.ReviewScore)
		}
	case ColOrderValue:
		if o.Has(models.FieldOrderValue) {
			return strconv.FormatFloat(o.OrderValue, 'f', -1, 64)
		}
	case ColFreight:
		if o.Has(models.FieldFreight) {
			return strconv.FormatFloat(o.FreightValue, 'f', -1, 64)
		}
	case ColPrice:
		if o.Has(models.FieldPrice) {
			return strconv.FormatFloat(o.Price, 'f', -1, 64)
		}
	case ColDeliveryDays:
		if o.Has(models.FieldDeliveryDays) {
			return strconv.FormatFloat(o.DeliveryDays, 'f', -1, 64)
		}
	case ColEstimatedDays:
		if o.Has(models.FieldEstimatedDays) {
			return strconv.FormatFloat(o.EstimatedDays, 'f', -1, 64)
		}
	case ColDeliveryDelay:
		if o.Has(models.FieldDeliveryDelay) {
			return strconv.FormatFloat(o.DeliveryDelay, 'f', -1, 64)
		}
	}
	return ""
}
