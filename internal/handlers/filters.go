package handlers

import (
	"net/url"
	"strconv"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
)

// SelectionsFromQuery parses the shared filter query grammar used by the
// REST and SSE endpoints: repeated month/category/state params, review_min
// and review_max integers, and a single payment value. The "All" value
// leaves a column unrestricted. A parameter supplied with only empty values
// is an explicitly empty selection and matches nothing.
func SelectionsFromQuery(q url.Values, sch dataset.Schema) models.Selections {
	sel := models.Selections{
		Months:     listParam(q, "month"),
		Categories: listParam(q, "category"),
		States:     listParam(q, "state"),
		Payment:    q.Get("payment"),
	}

	minGiven := q.Has("review_min")
	maxGiven := q.Has("review_max")
	if minGiven || maxGiven {
		sel.ReviewMin = intParam(q, "review_min", sch.ReviewMin)
		sel.ReviewMax = intParam(q, "review_max", sch.ReviewMax)
	}

	return sel
}

func listParam(q url.Values, key string) []string {
	vals, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intParam(q url.Values, key string, fallback int) int {
	if v := q.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
