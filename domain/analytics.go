package domain

type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

type CashFlow struct {
	Date     string          `json:"date"`
	Type     TransactionType `json:"type"`
	Quantity float64         `json:"quantity"`
	Price    float64         `json:"price"`
}

type Holding struct {
	Symbol    string  `json:"symbol"`
	Sector    string  `json:"sector"`
	AssetType string  `json:"asset_type"` // STOCK, ETF, MF, GOLD...
	Quantity  float64 `json:"quantity"`
	LastPrice float64 `json:"last_price"`
}

func (h Holding) Value() float64 {
	return h.Quantity * h.LastPrice
}

type Snapshot struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"total_value"`
}

// DailyReturn is a benchmark return for one trading day, as a fraction.
type DailyReturn struct {
	Date   string  `json:"date"`
	Return float64 `json:"return"`
}

type AnalyticsInput struct {
	Transactions     []CashFlow    `json:"transactions"`
	Holdings         []Holding     `json:"holdings"`
	Snapshots        []Snapshot    `json:"snapshots"`
	BenchmarkReturns []DailyReturn `json:"benchmark_returns"`
	AsOf             string        `json:"as_of,omitempty"`
}

type RiskMetrics struct {
	Beta          float64 `json:"beta"`
	Volatility    string  `json:"volatility"`
	VolatilityNum float64 `json:"volatility_num"`
}

type Metrics struct {
	XIRR float64 `json:"xirr"`
	RiskMetrics
	HealthScore int `json:"health_score"`
}

type SectorShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"` // percent of portfolio
	Total float64 `json:"total"`
}

type AnalyticsResult struct {
	Metrics Metrics       `json:"metrics"`
	Sectors []SectorShare `json:"sectors"`
}
