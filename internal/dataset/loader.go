package dataset

import (
	"context"
	"encoding/csv"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"ecommerce-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize    = 10000
	maxWorkers   = 10
	cacheVersion = "v1"
	cacheDir     = ".cache"
)

// ErrDatasetNotFound is returned when the source CSV does not exist. It is
// the only modeled load failure; the caller surfaces it and does not retry.
var ErrDatasetNotFound = errors.New("dataset file not found")

// Loader reads the dataset exactly once per process. Repeated Load calls
// return the same table without touching disk again; there is no ambient
// global, the caller owns the handle.
type Loader struct {
	once   sync.Once
	table  *Table
	err    error
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load parses the CSV at filename into an immutable Table. The first row is
// the header; unrecognized columns are dropped; blank or malformed numeric
// cells leave the field unset rather than failing the row.
func (l *Loader) Load(ctx context.Context, filename string) (*Table, error) {
	l.once.Do(func() {
		l.table, l.err = l.load(ctx, filename)
	})
	return l.table, l.err
}

func (l *Loader) load(ctx context.Context, filename string) (*Table, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, filename)
		}
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	if cached, err := loadFromCache(filename); err == nil && info.ModTime().Before(cached.Loaded) {
		l.logger.Info("dataset loaded from cache", "records", len(cached.Orders))
		return cached, nil
	}

	start := time.Now()
	l.logger.Info("parsing dataset", "filename", filename)

	table, err := l.parseCSV(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if err := saveToCache(filename, table); err != nil {
		l.logger.Warn("failed to save dataset cache", "error", err)
	}

	l.logger.Info("dataset ready",
		"records", len(table.Orders),
		"columns", len(table.Columns),
		"duration", time.Since(start))

	return table, nil
}

func (l *Loader) parseCSV(ctx context.Context, filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, colIdx := recognizeColumns(header)

	var records [][]string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		records = append(records, record)
	}

	orders := make([]models.Order, len(records))

	// Parse in bounded-parallel batches; each goroutine writes its own
	// slice range so no locking is needed.
	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for lo := 0; lo < len(records); lo += batchSize {
		hi := min(lo+batchSize, len(records))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			for i := lo; i < hi; i++ {
				orders[i] = parseOrder(colIdx, records[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Table{
		Orders:  orders,
		Columns: columns,
		Schema:  buildSchema(columns, orders),
		Loaded:  time.Now(),
	}, nil
}

// recognizeColumns maps recognized header names to their positions,
// preserving source order for export.
func recognizeColumns(header []string) ([]string, map[string]int) {
	known := map[string]bool{
		ColMonth: true, ColCategory: true, ColState: true,
		ColReviewScore: true, ColPaymentType: true, ColOrderValue: true,
		ColFreight: true, ColPrice: true, ColCustomerID: true,
		ColDeliveryDays: true, ColEstimatedDays: true, ColDeliveryDelay: true,
	}

	var columns []string
	colIdx := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if known[name] {
			if _, dup := colIdx[name]; !dup {
				columns = append(columns, name)
				colIdx[name] = i
			}
		}
	}
	return columns, colIdx
}

func parseOrder(colIdx map[string]int, record []string) models.Order {
	cell := func(col string) (string, bool) {
		i, ok := colIdx[col]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	var o models.Order

	if v, ok := cell(ColMonth); ok {
		o.Month = v
	}
	if v, ok := cell(ColCategory); ok {
		o.Category = v
	}
	if v, ok := cell(ColState); ok {
		o.State = v
	}
	if v, ok := cell(ColPaymentType); ok {
		o.PaymentType = v
	}
	if v, ok := cell(ColCustomerID); ok {
		o.CustomerID = v
	}

	if v, ok := cell(ColReviewScore); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			o.ReviewScore = int(f)
			o.Fields |= models.FieldReviewScore
		}
	}

	numeric := []struct {
		col   string
		field models.Field
		dst   *float64
	}{
		{ColOrderValue, models.FieldOrderValue, &o.OrderValue},
		{ColFreight, models.FieldFreight, &o.FreightValue},
		{ColPrice, models.FieldPrice, &o.Price},
		{ColDeliveryDays, models.FieldDeliveryDays, &o.DeliveryDays},
		{ColEstimatedDays, models.FieldEstimatedDays, &o.EstimatedDays},
		{ColDeliveryDelay, models.FieldDeliveryDelay, &o.DeliveryDelay},
	}
	for _, n := range numeric {
		if v, ok := cell(n.col); ok && v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*n.dst = f
				o.Fields |= n.field
			}
		}
	}

	return o
}

// Snapshot cache: a gob of the whole table keyed by source path, reused on
// restart when the source file has not changed since.

func cacheFilename(csvPath string) string {
	return fmt.Sprintf("%s/%s_%s.gob", cacheDir, strings.ReplaceAll(csvPath, "/", "_"), cacheVersion)
}

func saveToCache(csvPath string, table *Table) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(cacheFilename(csvPath))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(table)
}

func loadFromCache(csvPath string) (*Table, error) {
	file, err := os.Open(cacheFilename(csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var table Table
	if err := gob.NewDecoder(file).Decode(&table); err != nil {
		return nil, err
	}
	return &table, nil
}
