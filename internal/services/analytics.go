package services

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
)

const topN = 10
const histogramBins = 30

// Analytics runs the filter → summarize → build-charts pipeline over the
// loaded dataset. The table is immutable for the process lifetime, so the
// service carries no locks; every method is a pure function of the table
// and its arguments.
type Analytics struct {
	table  *dataset.Table
	logger *slog.Logger
}

func NewAnalytics(table *dataset.Table, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{table: table, logger: logger}
}

// Table returns the full dataset handle.
func (a *Analytics) Table() *dataset.Table {
	return a.table
}

// Options returns the sidebar widget options derived from the schema.
func (a *Analytics) Options() models.FilterOptions {
	return a.table.Schema.Options(len(a.table.Orders))
}

// Filter returns the subset of rows matching every active predicate.
// A predicate is active only when its column exists and the selection is
// restricted; predicates AND together and commute. A non-nil empty list
// matches nothing. With nothing active the full table view is returned.
func (a *Analytics) Filter(sel models.Selections) dataset.View {
	sch := a.table.Schema

	months, monthsActive := selectionSet(sel.Months, sch.HasMonth)
	categories, categoriesActive := selectionSet(sel.Categories, sch.HasCategory)
	states, statesActive := selectionSet(sel.States, sch.HasState)

	reviewActive := sch.HasReviewScore && !(sel.ReviewMin == 0 && sel.ReviewMax == 0)

	paymentActive := sch.HasPaymentType && sel.Payment != "" && sel.Payment != models.AllSentinel

	if !monthsActive && !categoriesActive && !statesActive && !reviewActive && !paymentActive {
		return a.table.All()
	}

	idx := make([]int, 0, len(a.table.Orders))
	for i := range a.table.Orders {
		o := &a.table.Orders[i]

		if monthsActive && !contains(months, o.Month) {
			continue
		}
		if categoriesActive && !contains(categories, o.Category) {
			continue
		}
		if statesActive && !contains(states, o.State) {
			continue
		}
		if reviewActive {
			// Rows without a score never satisfy a range predicate.
			if !o.Has(models.FieldReviewScore) {
				continue
			}
			if o.ReviewScore < sel.ReviewMin || o.ReviewScore > sel.ReviewMax {
				continue
			}
		}
		if paymentActive && o.PaymentType != sel.Payment {
			continue
		}

		idx = append(idx, i)
	}

	return dataset.NewView(a.table, idx)
}

// selectionSet converts a multi-select list into a lookup set. The predicate
// is inactive when the column is missing, the list is nil, or it carries the
// "All" sentinel. An empty non-nil list yields an active empty set.
func selectionSet(list []string, hasColumn bool) (map[string]struct{}, bool) {
	if !hasColumn || list == nil || slices.Contains(list, models.AllSentinel) {
		return nil, false
	}
	set := make(map[string]struct{}, len(list))
	for _, v := range list {
		set[v] = struct{}{}
	}
	return set, true
}

func contains(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

// Summarize computes the six KPI metrics over a view. An empty view yields
// an all-zero snapshot; a missing backing column zeroes just that metric.
func (a *Analytics) Summarize(view dataset.View) models.KPISnapshot {
	if view.Len() == 0 {
		return models.KPISnapshot{}
	}

	sch := view.Schema()
	k := models.KPISnapshot{TotalOrders: view.Len()}

	var ratingSum, freightSum, priceSum float64
	var ratingN, freightN, priceN int
	customers := make(map[string]struct{})

	for i := 0; i < view.Len(); i++ {
		o := view.At(i)

		if sch.HasOrderValue && o.Has(models.FieldOrderValue) {
			k.TotalRevenue += o.OrderValue
		}
		if sch.HasReviewScore && o.Has(models.FieldReviewScore) {
			ratingSum += float64(o.ReviewScore)
			ratingN++
		}
		if sch.HasFreight && o.Has(models.FieldFreight) {
			freightSum += o.FreightValue
			freightN++
		}
		if sch.HasPrice && o.Has(models.FieldPrice) {
			priceSum += o.Price
			priceN++
		}
		if sch.HasCustomerID && o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
	}

	if ratingN > 0 {
		k.AvgRating = ratingSum / float64(ratingN)
	}
	if freightN > 0 {
		k.AvgFreight = freightSum / float64(freightN)
	}
	if priceN > 0 {
		k.AvgPrice = priceSum / float64(priceN)
	}
	k.TotalCustomers = len(customers)

	return k
}

// BuildCharts produces the chart catalog for a view. Each descriptor is
// emitted only when its source columns exist; an empty view yields no
// charts. No chart does more than group-by + aggregate + sort + top-N.
func (a *Analytics) BuildCharts(view dataset.View) []models.Chart {
	if view.Len() == 0 {
		return nil
	}

	sch := view.Schema()
	var charts []models.Chart

	add := func(c *models.Chart) {
		if c != nil {
			charts = append(charts, *c)
		}
	}

	if sch.HasMonth && sch.HasOrderValue {
		add(monthlySales(view))
	}
	if sch.HasState && sch.HasOrderValue {
		add(topStatesBySales(view))
	}
	if sch.HasCategory {
		add(topCategories(view))
	}
	if sch.HasPrice {
		add(priceDistribution(view))
	}
	if sch.HasPrice && sch.HasFreight {
		add(freightVsPrice(view))
	}
	if sch.HasReviewScore && sch.HasDeliveryDays {
		add(deliveryByReview(view))
	}
	if sch.HasState && sch.HasDeliveryDays {
		add(stateDeliveryTimes(view))
	}
	if sch.HasEstimatedDays && sch.HasDeliveryDelay {
		add(delayVsEstimate(view))
	}
	if sch.HasPaymentType {
		add(paymentDistribution(view))
	}
	if sch.HasPaymentType && sch.HasReviewScore {
		add(reviewByPayment(view))
	}

	return charts
}

// Stats reports dataset shape for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	sch := a.table.Schema
	return map[string]any{
		"record_count": len(a.table.Orders),
		"columns":      len(a.table.Columns),
		"months":       len(sch.Months),
		"categories":   len(sch.Categories),
		"states":       len(sch.States),
		"payments":     len(sch.Payments),
		"loaded_at":    a.table.Loaded,
	}
}

// Chart builders

func monthlySales(view dataset.View) *models.Chart {
	points := groupSum(view,
		func(o *models.Order) (string, bool) { return o.Month, o.Month != "" },
		func(o *models.Order) (float64, bool) { return o.OrderValue, o.Has(models.FieldOrderValue) })
	if len(points) == 0 {
		return nil
	}
	sortByLabel(points)

	return &models.Chart{
		ID:     "monthly-sales",
		Kind:   models.ChartLine,
		Title:  "Total Monthly Sales Over Time",
		XLabel: "Month",
		YLabel: "Total Sales ($)",
		Points: points,
	}
}

func topStatesBySales(view dataset.View) *models.Chart {
	points := groupSum(view,
		func(o *models.Order) (string, bool) { return o.State, o.State != "" },
		func(o *models.Order) (float64, bool) { return o.OrderValue, o.Has(models.FieldOrderValue) })
	if len(points) == 0 {
		return nil
	}
	points = topByValue(points, topN)
	sortByValue(points, true) // largest bar nearest the top when rendered

	return &models.Chart{
		ID:         "top-states-sales",
		Kind:       models.ChartHBar,
		Title:      "Top 10 States by Sales",
		XLabel:     "Total Sales ($)",
		YLabel:     "State",
		ColorScale: "Blues",
		Points:     points,
	}
}

func topCategories(view dataset.View) *models.Chart {
	points := groupCount(view,
		func(o *models.Order) (string, bool) { return o.Category, o.Category != "" })
	if len(points) == 0 {
		return nil
	}
	points = topByValue(points, topN)
	sortByValue(points, true)

	return &models.Chart{
		ID:         "top-categories",
		Kind:       models.ChartHBar,
		Title:      "Top 10 Product Categories by Count",
		XLabel:     "Count",
		YLabel:     "Product Category",
		ColorScale: "darkmint",
		Points:     points,
	}
}

func priceDistribution(view dataset.View) *models.Chart {
	var prices []float64
	for i := 0; i < view.Len(); i++ {
		if o := view.At(i); o.Has(models.FieldPrice) {
			prices = append(prices, o.Price)
		}
	}
	if len(prices) == 0 {
		return nil
	}

	return &models.Chart{
		ID:     "price-distribution",
		Kind:   models.ChartHistogram,
		Title:  "Distribution of Product Prices",
		XLabel: "Price ($)",
		YLabel: "Count",
		Bins:   histogram(prices, histogramBins),
	}
}

func freightVsPrice(view dataset.View) *models.Chart {
	samples := scatterSamples(view, models.FieldPrice, models.FieldFreight,
		func(o *models.Order) (float64, float64) { return o.Price, o.FreightValue })
	if len(samples) == 0 {
		return nil
	}

	return &models.Chart{
		ID:         "freight-vs-price",
		Kind:       models.ChartScatter,
		Title:      "Freight Cost vs Product Price",
		XLabel:     "Price ($)",
		YLabel:     "Freight Value ($)",
		ColorScale: "Cividis",
		Samples:    samples,
	}
}

func deliveryByReview(view dataset.View) *models.Chart {
	grouped := make(map[int][]float64)
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if o.Has(models.FieldReviewScore) && o.Has(models.FieldDeliveryDays) {
			grouped[o.ReviewScore] = append(grouped[o.ReviewScore], o.DeliveryDays)
		}
	}
	if len(grouped) == 0 {
		return nil
	}

	scores := make([]int, 0, len(grouped))
	for s := range grouped {
		scores = append(scores, s)
	}
	slices.Sort(scores)

	boxes := make([]models.BoxGroup, 0, len(scores))
	for _, s := range scores {
		boxes = append(boxes, boxSummary(strconv.Itoa(s), grouped[s]))
	}

	return &models.Chart{
		ID:     "delivery-by-review",
		Kind:   models.ChartBox,
		Title:  "Delivery Time by Review Score",
		XLabel: "Review Score",
		YLabel: "Delivery Time (Days)",
		Boxes:  boxes,
	}
}

func stateDeliveryTimes(view dataset.View) *models.Chart {
	points := groupMean(view,
		func(o *models.Order) (string, bool) { return o.State, o.State != "" },
		func(o *models.Order) (float64, bool) { return o.DeliveryDays, o.Has(models.FieldDeliveryDays) })
	if len(points) == 0 {
		return nil
	}
	// 10 fastest states, ascending.
	sortByValue(points, true)
	if len(points) > topN {
		points = points[:topN]
	}

	return &models.Chart{
		ID:         "state-delivery",
		Kind:       models.ChartBar,
		Title:      "Top 10 States by Avg Delivery Time",
		XLabel:     "State",
		YLabel:     "Avg Delivery Time (Days)",
		ColorScale: "Blues",
		Points:     points,
	}
}

func delayVsEstimate(view dataset.View) *models.Chart {
	samples := scatterSamples(view, models.FieldEstimatedDays, models.FieldDeliveryDelay,
		func(o *models.Order) (float64, float64) { return o.EstimatedDays, o.DeliveryDelay })
	if len(samples) == 0 {
		return nil
	}

	return &models.Chart{
		ID:         "delay-vs-estimate",
		Kind:       models.ChartScatter,
		Title:      "Delivery Delay vs. Estimated Delivery Time",
		XLabel:     "Estimated Delivery Time (days)",
		YLabel:     "Delivery Delay (days)",
		ColorScale: "YlOrRd",
		Samples:    samples,
		Trend:      fitTrend(samples),
	}
}

func paymentDistribution(view dataset.View) *models.Chart {
	points := groupCount(view,
		func(o *models.Order) (string, bool) { return o.PaymentType, o.PaymentType != "" })
	if len(points) == 0 {
		return nil
	}
	sortByValue(points, false)

	return &models.Chart{
		ID:     "payment-distribution",
		Kind:   models.ChartPie,
		Title:  "Payment Method Distribution",
		Points: points,
	}
}

func reviewByPayment(view dataset.View) *models.Chart {
	points := groupMean(view,
		func(o *models.Order) (string, bool) { return o.PaymentType, o.PaymentType != "" },
		func(o *models.Order) (float64, bool) { return float64(o.ReviewScore), o.Has(models.FieldReviewScore) })
	if len(points) == 0 {
		return nil
	}
	sortByValue(points, true)

	return &models.Chart{
		ID:     "review-by-payment",
		Kind:   models.ChartBar,
		Title:  "Avg Review Score by Payment Type",
		XLabel: "Payment Type",
		YLabel: "Avg Review Score",
		Points: points,
	}
}

// Group-by helpers

func groupSum(view dataset.View, key func(*models.Order) (string, bool), val func(*models.Order) (float64, bool)) []models.ChartPoint {
	sums := make(map[string]float64)
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		k, ok := key(o)
		if !ok {
			continue
		}
		v, ok := val(o)
		if !ok {
			v = 0
		}
		sums[k] += v
	}
	return toPoints(sums)
}

func groupCount(view dataset.View, key func(*models.Order) (string, bool)) []models.ChartPoint {
	counts := make(map[string]float64)
	for i := 0; i < view.Len(); i++ {
		if k, ok := key(view.At(i)); ok {
			counts[k]++
		}
	}
	return toPoints(counts)
}

func groupMean(view dataset.View, key func(*models.Order) (string, bool), val func(*models.Order) (float64, bool)) []models.ChartPoint {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		k, ok := key(o)
		if !ok {
			continue
		}
		v, ok := val(o)
		if !ok {
			continue
		}
		sums[k] += v
		counts[k]++
	}

	points := make([]models.ChartPoint, 0, len(sums))
	for k, sum := range sums {
		points = append(points, models.ChartPoint{Label: k, Value: round2(sum / float64(counts[k]))})
	}
	return points
}

func toPoints(agg map[string]float64) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(agg))
	for k, v := range agg {
		points = append(points, models.ChartPoint{Label: k, Value: round2(v)})
	}
	return points
}

func scatterSamples(view dataset.View, xf, yf models.Field, get func(*models.Order) (float64, float64)) []models.ScatterPoint {
	var samples []models.ScatterPoint
	for i := 0; i < view.Len(); i++ {
		o := view.At(i)
		if o.Has(xf) && o.Has(yf) {
			x, y := get(o)
			samples = append(samples, models.ScatterPoint{X: x, Y: y})
		}
	}
	return samples
}

// Sorting and truncation

func sortByLabel(points []models.ChartPoint) {
	slices.SortFunc(points, func(a, b models.ChartPoint) int {
		return strings.Compare(a.Label, b.Label)
	})
}

func sortByValue(points []models.ChartPoint, ascending bool) {
	slices.SortFunc(points, func(a, b models.ChartPoint) int {
		va, vb := a.Value, b.Value
		if !ascending {
			va, vb = vb, va
		}
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return strings.Compare(a.Label, b.Label)
		}
	})
}

// topByValue keeps the n largest points.
func topByValue(points []models.ChartPoint, n int) []models.ChartPoint {
	sortByValue(points, false)
	if len(points) > n {
		points = points[:n]
	}
	return points
}

// Numeric helpers

func histogram(values []float64, bins int) []models.HistogramBin {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo == hi {
		return []models.HistogramBin{{Lo: lo, Hi: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	result := make([]models.HistogramBin, bins)
	for i := range result {
		result[i].Lo = lo + float64(i)*width
		result[i].Hi = lo + float64(i+1)*width
	}

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1 // the max value lands in the last bin
		}
		result[i].Count++
	}
	return result
}

func boxSummary(label string, values []float64) models.BoxGroup {
	slices.Sort(values)
	return models.BoxGroup{
		Label:  label,
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
	}
}

// quantile interpolates linearly between the two nearest ranks of a sorted
// sample.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

// fitTrend computes an ordinary least-squares line over the samples,
// returning nil when the x values are degenerate.
func fitTrend(samples []models.ScatterPoint) *models.TrendLine {
	n := float64(len(samples))
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, s := range samples {
		sumX += s.X
		sumY += s.Y
		sumXY += s.X * s.Y
		sumXX += s.X * s.X
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	return &models.TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
