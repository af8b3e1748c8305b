package models

// Field identifies one of the numeric order columns. Per-row presence is
// tracked with a bitmask because any cell may be blank in the source CSV.
type Field uint16

const (
	FieldReviewScore Field = 1 << iota
	FieldOrderValue
	FieldFreight
	FieldPrice
	FieldDeliveryDays
	FieldEstimatedDays
	FieldDeliveryDelay
)

// Order is one row of the e-commerce dataset. Every column is optional;
// string fields default to "" and numeric fields are only meaningful when
// the matching Field bit is set.
type Order struct {
	Month         string
	Category      string
	State         string
	PaymentType   string
	CustomerID    string
	ReviewScore   int
	OrderValue    float64
	FreightValue  float64
	Price         float64
	DeliveryDays  float64
	EstimatedDays float64
	DeliveryDelay float64
	Fields        Field
}

// Has reports whether the row carries a value for the given numeric field.
func (o Order) Has(f Field) bool {
	return o.Fields&f != 0
}

// AllSentinel is the selection value meaning "do not filter on this column".
const AllSentinel = "All"

// Selections holds the user-chosen filter predicates. A nil list, a list
// containing AllSentinel, or an empty Payment string leaves that column
// unrestricted. A non-nil empty list matches nothing. A zero review range
// means the range is unrestricted.
type Selections struct {
	Months     []string `json:"months"`
	Categories []string `json:"categories"`
	States     []string `json:"states"`
	ReviewMin  int      `json:"review_min"`
	ReviewMax  int      `json:"review_max"`
	Payment    string   `json:"payment"`
}

// KPISnapshot is the six-metric summary over a (filtered) table. All metrics
// are exactly zero for an empty input or when the backing column is absent.
type KPISnapshot struct {
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgRating      float64 `json:"avg_rating"`
	AvgFreight     float64 `json:"avg_freight_cost"`
	TotalCustomers int     `json:"total_customers"`
	AvgPrice       float64 `json:"avg_price"`
}

type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartBar       ChartKind = "bar"
	ChartHBar      ChartKind = "hbar"
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
	ChartBox       ChartKind = "box"
	ChartPie       ChartKind = "pie"
)

// ChartPoint is one label/value pair of a line, bar, or pie chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one x/y sample of a scatter chart.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HistogramBin is one bucket of a histogram: [Lo, Hi) and its sample count.
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// BoxGroup is the five-number summary of one box-plot group.
type BoxGroup struct {
	Label  string  `json:"label"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// TrendLine is a least-squares fit attached to a scatter chart.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Chart is a renderer-agnostic chart descriptor. Exactly one of Points,
// Samples, Bins, or Boxes is populated depending on Kind; the client chart
// library does the drawing.
type Chart struct {
	ID         string         `json:"id"`
	Kind       ChartKind      `json:"kind"`
	Title      string         `json:"title"`
	XLabel     string         `json:"x_label"`
	YLabel     string         `json:"y_label"`
	ColorScale string         `json:"color_scale,omitempty"`
	Points     []ChartPoint   `json:"points,omitempty"`
	Samples    []ScatterPoint `json:"samples,omitempty"`
	Bins       []HistogramBin `json:"bins,omitempty"`
	Boxes      []BoxGroup     `json:"boxes,omitempty"`
	Trend      *TrendLine     `json:"trend,omitempty"`
}

// FilterOptions is what the sidebar widgets are populated from: the distinct
// values observed per filterable column plus the review score bounds.
type FilterOptions struct {
	Months       []string `json:"months"`
	Categories   []string `json:"categories"`
	States       []string `json:"states"`
	Payments     []string `json:"payments"`
	ReviewMin    int      `json:"review_min"`
	ReviewMax    int      `json:"review_max"`
	HasReviews   bool     `json:"has_reviews"`
	TotalRecords int      `json:"total_records"`
}
