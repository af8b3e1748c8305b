package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ecommerce-dashboard/internal/models"
)

const sampleCSV = `order_month,product_category_name_english,customer_state,review_score,payment_type,total_order_value,freight_value,price,customer_unique_id,delivery_days,estimated_days,delivery_delay
2017-01,electronics,SP,5,credit_card,120.50,10.00,110.50,c1,7,10,-3
2017-01,toys,RJ,3,voucher,45.00,5.00,40.00,c2,12,9,3
2017-02,electronics,SP,4,credit_card,80.00,8.00,72.00,c1,6,8,-2
`

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	path := createTempCSV(t, sampleCSV)

	loader := NewLoader(nil)
	table, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(table.Orders) != 3 {
		t.Errorf("expected 3 orders, got %d", len(table.Orders))
	}
	if len(table.Columns) != 12 {
		t.Errorf("expected 12 recognized columns, got %d", len(table.Columns))
	}

	o := table.Orders[0]
	if o.Month != "2017-01" || o.State != "SP" || o.ReviewScore != 5 {
		t.Errorf("first order parsed wrong: %+v", o)
	}
	if !o.Has(models.FieldOrderValue) || o.OrderValue != 120.50 {
		t.Errorf("order value not parsed: %+v", o)
	}
	if !o.Has(models.FieldDeliveryDelay) || o.DeliveryDelay != -3 {
		t.Errorf("delivery delay not parsed: %+v", o)
	}
}

func TestLoader_LoadOnce(t *testing.T) {
	path := createTempCSV(t, sampleCSV)

	loader := NewLoader(nil)
	first, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Deleting the file must not matter: subsequent calls return the
	// cached handle without touching disk.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	second, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}
	if first != second {
		t.Error("Load() should return the identical table on repeated calls")
	}
}

func TestLoader_NotFound(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestLoader_MissingColumns(t *testing.T) {
	// Only two recognized columns; everything else must degrade, not fail.
	csv := "customer_state,price\nSP,10.5\nRJ,20\n"
	path := createTempCSV(t, csv)

	loader := NewLoader(nil)
	table, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	sch := table.Schema
	if !sch.HasState || !sch.HasPrice {
		t.Error("present columns should set their capability bits")
	}
	if sch.HasMonth || sch.HasReviewScore || sch.HasPaymentType {
		t.Error("absent columns should leave their capability bits unset")
	}
	if len(table.Columns) != 2 {
		t.Errorf("expected 2 columns, got %d", len(table.Columns))
	}
}

func TestLoader_BlankCells(t *testing.T) {
	csv := "customer_state,review_score,price\nSP,5,10.5\nRJ,,\n"
	path := createTempCSV(t, csv)

	loader := NewLoader(nil)
	table, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(table.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(table.Orders))
	}

	blank := table.Orders[1]
	if blank.Has(models.FieldReviewScore) || blank.Has(models.FieldPrice) {
		t.Errorf("blank cells should leave fields unset: %+v", blank)
	}
	if blank.State != "RJ" {
		t.Errorf("state should still parse: %+v", blank)
	}
}

func TestSchema_Options(t *testing.T) {
	path := createTempCSV(t, sampleCSV)

	loader := NewLoader(nil)
	table, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	sch := table.Schema
	if got := sch.Months; len(got) != 2 || got[0] != "2017-01" || got[1] != "2017-02" {
		t.Errorf("months should be ascending, got %v", got)
	}
	if got := sch.States; len(got) != 2 || got[0] != "SP" || got[1] != "RJ" {
		t.Errorf("states should be descending, got %v", got)
	}
	if got := sch.Categories; len(got) != 2 || got[0] != "toys" || got[1] != "electronics" {
		t.Errorf("categories should be descending, got %v", got)
	}
	if sch.ReviewMin != 3 || sch.ReviewMax != 5 {
		t.Errorf("review bounds = [%d,%d], want [3,5]", sch.ReviewMin, sch.ReviewMax)
	}

	opts := sch.Options(len(table.Orders))
	if opts.TotalRecords != 3 || !opts.HasReviews {
		t.Errorf("unexpected options: %+v", opts)
	}
}
