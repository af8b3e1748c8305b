package dataset

import (
	"slices"
	"strings"

	"ecommerce-dashboard/internal/models"
)

// Schema is the column-capability record computed once after load. Every
// downstream component branches on these bits instead of re-checking column
// existence; an unset bit disables the dependent filter, metric, or chart.
type Schema struct {
	HasMonth         bool
	HasCategory      bool
	HasState         bool
	HasReviewScore   bool
	HasPaymentType   bool
	HasOrderValue    bool
	HasFreight       bool
	HasPrice         bool
	HasCustomerID    bool
	HasDeliveryDays  bool
	HasEstimatedDays bool
	HasDeliveryDelay bool

	// Observed review score bounds; both zero when HasReviewScore is false
	// or no row carries a score.
	ReviewMin int
	ReviewMax int

	// Distinct values per filterable column, ordered the way the sidebar
	// widgets list them: months and payments ascending, categories and
	// states descending.
	Months     []string
	Categories []string
	States     []string
	Payments   []string
}

// Options packages the schema's widget-facing parts for the UI.
func (s Schema) Options(totalRecords int) models.FilterOptions {
	return models.FilterOptions{
		Months:       s.Months,
		Categories:   s.Categories,
		States:       s.States,
		Payments:     s.Payments,
		ReviewMin:    s.ReviewMin,
		ReviewMax:    s.ReviewMax,
		HasReviews:   s.HasReviewScore,
		TotalRecords: totalRecords,
	}
}

// buildSchema probes the header for column presence and scans the parsed
// rows once for the distinct option lists and review bounds.
func buildSchema(columns []string, orders []models.Order) Schema {
	s := Schema{}
	for _, col := range columns {
		switch col {
		case ColMonth:
			s.HasMonth = true
		case ColCategory:
			s.HasCategory = true
		case ColState:
			s.HasState = true
		case ColReviewScore:
			s.HasReviewScore = true
		case ColPaymentType:
			s.HasPaymentType = true
		case ColOrderValue:
			s.HasOrderValue = true
		case ColFreight:
			s.HasFreight = true
		case ColPrice:
			s.HasPrice = true
		case ColCustomerID:
			s.HasCustomerID = true
		case ColDeliveryDays:
			s.HasDeliveryDays = true
		case ColEstimatedDays:
			s.HasEstimatedDays = true
		case ColDeliveryDelay:
			s.HasDeliveryDelay = true
		}
	}

	months := map[string]struct{}{}
	categories := map[string]struct{}{}
	states := map[string]struct{}{}
	payments := map[string]struct{}{}
	scored := false

	for i := range orders {
		o := &orders[i]
		if s.HasMonth && o.Month != "" {
			months[o.Month] = struct{}{}
		}
		if s.HasCategory && o.Category != "" {
			categories[o.Category] = struct{}{}
		}
		if s.HasState && o.State != "" {
			states[o.State] = struct{}{}
		}
		if s.HasPaymentType && o.PaymentType != "" {
			payments[o.PaymentType] = struct{}{}
		}
		if s.HasReviewScore && o.Has(models.FieldReviewScore) {
			if !scored {
				s.ReviewMin, s.ReviewMax = o.ReviewScore, o.ReviewScore
				scored = true
			} else {
				s.ReviewMin = min(s.ReviewMin, o.ReviewScore)
				s.ReviewMax = max(s.ReviewMax, o.ReviewScore)
			}
		}
	}

	s.Months = sortedKeys(months, true)
	s.Categories = sortedKeys(categories, false)
	s.States = sortedKeys(states, false)
	s.Payments = sortedKeys(payments, true)
	return s
}

func sortedKeys(set map[string]struct{}, ascending bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if ascending {
			return strings.Compare(a, b)
		}
		return strings.Compare(b, a)
	})
	return keys
}
