package domain

type TimeRange string

const (
	Range1M  TimeRange = "1M"
	Range6M  TimeRange = "6M"
	Range1Y  TimeRange = "1Y"
	RangeMax TimeRange = "MAX"
)

type PerformancePoint struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Portfolio float64  `json:"portfolio"`
	Invested  float64  `json:"invested"`
	Benchmark *float64 `json:"benchmark,omitempty"`
}

type ChartInput struct {
	Points []PerformancePoint `json:"points"`
	Range  TimeRange          `json:"range"`
}

type ChartPoint struct {
	PerformancePoint
	Label string `json:"label"`
}

type ChartResult struct {
	Range  TimeRange    `json:"range"`
	Points []ChartPoint `json:"points"`
}
