package handlers

import (
	"net/url"
	"reflect"
	"testing"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
)

func testSchema() dataset.Schema {
	return dataset.Schema{
		HasMonth: true, HasState: true, HasCategory: true,
		HasReviewScore: true, HasPaymentType: true,
		ReviewMin: 1, ReviewMax: 5,
	}
}

func TestSelectionsFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Selections
	}{
		{
			"no params",
			"",
			models.Selections{},
		},
		{
			"repeated months",
			"month=2017-01&month=2017-02",
			models.Selections{Months: []string{"2017-01", "2017-02"}},
		},
		{
			"all sentinel passes through",
			"month=All",
			models.Selections{Months: []string{"All"}},
		},
		{
			"explicitly empty list",
			"month=",
			models.Selections{Months: []string{}},
		},
		{
			"review range",
			"review_min=2&review_max=4",
			models.Selections{ReviewMin: 2, ReviewMax: 4},
		},
		{
			"review min only defaults max to observed bound",
			"review_min=3",
			models.Selections{ReviewMin: 3, ReviewMax: 5},
		},
		{
			"payment",
			"payment=voucher",
			models.Selections{Payment: "voucher"},
		},
		{
			"combined",
			"state=SP&state=RJ&payment=credit_card&review_min=4&review_max=5",
			models.Selections{States: []string{"SP", "RJ"}, Payment: "credit_card", ReviewMin: 4, ReviewMax: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			got := SelectionsFromQuery(q, testSchema())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectionsFromQuery() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectionsFromQuery_EmptyListStaysNonNil(t *testing.T) {
	q := url.Values{"state": {""}}
	got := SelectionsFromQuery(q, testSchema())

	if got.States == nil {
		t.Error("present-but-empty param must yield a non-nil empty list")
	}
	if len(got.States) != 0 {
		t.Errorf("expected empty list, got %v", got.States)
	}
}
