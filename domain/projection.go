package domain

import "time"

type SIPInput struct {
	MonthlyAmount float64 `json:"monthly_amount"`
	AnnualRate    float64 `json:"annual_rate"`
	Years         float64 `json:"years"`
}

type SIPResult struct {
	Total    float64 `json:"total"`
	Invested float64 `json:"invested"`
	Profit   float64 `json:"profit"`
	Months   int     `json:"months"`
}

// SWPInput describes a withdrawal plan. A nil AnnualGrowthRate means the
// default conservative growth rate.
type SWPInput struct {
	Corpus            float64  `json:"corpus"`
	MonthlyWithdrawal float64  `json:"monthly_withdrawal"`
	Years             float64  `json:"years"`
	AnnualGrowthRate  *float64 `json:"annual_growth_rate,omitempty"`
}

type SWPResult struct {
	Balance         float64 `json:"balance"`
	TotalWithdrawn  float64 `json:"total_withdrawn"`
	MonthsSimulated int     `json:"months_simulated"`
	Depleted        bool    `json:"depleted"`
}

type ProjectionKind string

const (
	ProjectionSIP ProjectionKind = "sip"
	ProjectionSWP ProjectionKind = "swp"
)

// Projection is a stored calculation: the request and response as JSON.
type Projection struct {
	ID        int64          `json:"id"`
	Kind      ProjectionKind `json:"kind"`
	Input     string         `json:"input"`
	Result    string         `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
