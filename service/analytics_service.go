package service

import (
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"pandaledger/domain"
)

type AnalyticsService struct {
	logger *log.Logger
	now    func() time.Time
}

func NewAnalyticsService(logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{logger: logger, now: time.Now}
}

// Analyze computes the portfolio dashboard metrics: XIRR, risk, health
// score and sector allocation.
func (s *AnalyticsService) Analyze(input domain.AnalyticsInput) (domain.AnalyticsResult, error) {
	asOf := s.now().UTC()
	if input.AsOf != "" {
		t, err := time.Parse(dateLayout, input.AsOf)
		if err != nil {
			return domain.AnalyticsResult{}, invalidf("bad as_of date %q", input.AsOf)
		}
		asOf = t
	}

	for _, h := range input.Holdings {
		if h.Quantity < 0 || h.LastPrice < 0 || !isFinite(h.Quantity, h.LastPrice) {
			return domain.AnalyticsResult{}, invalidf("holding %s has a negative or invalid value", h.Symbol)
		}
	}

	currentValue := 0.0
	for _, h := range input.Holdings {
		currentValue += h.Value()
	}

	xirr, err := XIRR(input.Transactions, currentValue, asOf)
	if err != nil {
		return domain.AnalyticsResult{}, err
	}

	risk, err := CalculateRiskMetrics(input.Snapshots, input.BenchmarkReturns)
	if err != nil {
		return domain.AnalyticsResult{}, err
	}

	s.logger.Debug("portfolio analytics",
		"transactions", len(input.Transactions),
		"holdings", len(input.Holdings),
		"snapshots", len(input.Snapshots),
	)

	return domain.AnalyticsResult{
		Metrics: domain.Metrics{
			XIRR:        xirr,
			RiskMetrics: risk,
			HealthScore: HealthScore(input.Holdings),
		},
		Sectors: SectorSplit(input.Holdings),
	}, nil
}

// XIRR returns the annualized return of a series of trades, in percent
// rounded to 2 decimals. Buys are outflows and sells inflows; the current
// value is treated as a sale on asOf. Years are counted as actual days / 365.
// It returns 0 when there are no trades, when every flow falls on one day,
// or when no rate solves the flows.
func XIRR(flows []domain.CashFlow, currentValue float64, asOf time.Time) (float64, error) {
	if len(flows) == 0 {
		return 0, nil
	}

	dates := make([]time.Time, 0, len(flows)+1)
	amounts := make([]float64, 0, len(flows)+1)
	for _, f := range flows {
		t, err := time.Parse(dateLayout, f.Date)
		if err != nil {
			return 0, invalidf("bad transaction date %q", f.Date)
		}
		total := f.Quantity * f.Price
		switch f.Type {
		case domain.Buy:
			amounts = append(amounts, -total)
		case domain.Sell:
			amounts = append(amounts, total)
		default:
			return 0, invalidf("unknown transaction type %q", f.Type)
		}
		dates = append(dates, t)
	}

	if currentValue > 0 {
		dates = append(dates, asOf)
		amounts = append(amounts, currentValue)
	}

	rate, ok := solveXIRR(dates, amounts)
	if !ok {
		return 0, nil
	}
	return roundTo2Decimals(rate * 100), nil
}

func solveXIRR(dates []time.Time, amounts []float64) (float64, bool) {
	var hasNeg, hasPos bool
	for _, a := range amounts {
		hasNeg = hasNeg || a < 0
		hasPos = hasPos || a > 0
	}
	if !hasNeg || !hasPos {
		return 0, false
	}

	start := dates[0]
	for _, d := range dates {
		if d.Before(start) {
			start = d
		}
	}
	years := make([]float64, len(dates))
	span := 0.0
	for i, d := range dates {
		years[i] = d.Sub(start).Hours() / 24 / 365
		span = math.Max(span, years[i])
	}
	// flows on a single day have a constant NPV: no rate solves them
	if span == 0 {
		return 0, false
	}

	npv := func(rate float64) (value, derivative float64) {
		for i, a := range amounts {
			disc := math.Pow(1+rate, years[i])
			value += a / disc
			derivative -= years[i] * a / (disc * (1 + rate))
		}
		return value, derivative
	}

	// Newton from a 10% guess, then bisection if it leaves the domain.
	rate := 0.1
	for i := 0; i < xirrMaxIterations; i++ {
		v, dv := npv(rate)
		if dv == 0 || math.IsNaN(v) {
			break
		}
		next := rate - v/dv
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if math.Abs(next-rate) < xirrTolerance {
			return next, true
		}
		rate = next
	}

	lo, hi := -0.999999, 10.0
	vlo, _ := npv(lo)
	vhi, _ := npv(hi)
	switch {
	case vlo == 0:
		return lo, true
	case vhi == 0:
		return hi, true
	case vlo*vhi > 0:
		return 0, false
	}
	for i := 0; i < 4*xirrMaxIterations; i++ {
		mid := (lo + hi) / 2
		vmid, _ := npv(mid)
		if math.Abs(vmid) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if vmid*vlo < 0 {
			hi = mid
		} else {
			lo, vlo = mid, vmid
		}
	}
	return (lo + hi) / 2, true
}

// SectorSplit returns the allocation per sector, largest first. Holdings
// without a sector, or in "Other", are grouped by asset type instead.
func SectorSplit(holdings []domain.Holding) []domain.SectorShare {
	totals := make(map[string]float64)
	total := 0.0
	for _, h := range holdings {
		sector := h.Sector
		if sector == "" || sector == "Other" {
			sector = h.AssetType
		}
		v := h.Value()
		totals[sector] += v
		total += v
	}

	shares := []domain.SectorShare{}
	if total == 0 {
		return shares
	}
	for name, v := range totals {
		shares = append(shares, domain.SectorShare{
			Name:  name,
			Value: roundTo2Decimals(v / total * 100),
			Total: roundTo2Decimals(v),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Total != shares[j].Total {
			return shares[i].Total > shares[j].Total
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// CalculateRiskMetrics derives annualized volatility and market beta from
// daily portfolio snapshots and benchmark returns.
func CalculateRiskMetrics(
	snapshots []domain.Snapshot,
	benchmark []domain.DailyReturn,
) (domain.RiskMetrics, error) {
	low := domain.RiskMetrics{Beta: 0, Volatility: "Low", VolatilityNum: 0}
	if len(snapshots) < MinSnapshotsForRisk {
		return low, nil
	}

	type dated struct {
		date  time.Time
		value float64
	}
	series := make([]dated, len(snapshots))
	for i, s := range snapshots {
		t, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			return low, invalidf("bad snapshot date %q", s.Date)
		}
		series[i] = dated{date: t, value: s.TotalValue}
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].date.Before(series[j].date) })

	returns := make(map[string]float64)
	var ordered []float64
	for i := 1; i < len(series); i++ {
		prev := series[i-1].value
		if prev == 0 {
			continue
		}
		r := series[i].value/prev - 1
		returns[series[i].date.Format(dateLayout)] = r
		ordered = append(ordered, r)
	}

	volatility := 0.0
	if len(ordered) > 1 {
		volatility = sampleStdDev(ordered) * math.Sqrt(TradingDaysPerYear) * 100
	}

	label := "Low"
	if volatility > VolatilityMediumAbove {
		label = "Medium"
	}
	if volatility > VolatilityHighAbove {
		label = "High"
	}

	var port, market []float64
	for _, b := range benchmark {
		if r, ok := returns[b.Date]; ok {
			port = append(port, r)
			market = append(market, b.Return)
		}
	}

	beta := 0.0
	if len(port) > MinAlignedReturnsForBeta {
		if v := sampleCovariance(market, market); v > 0 {
			beta = sampleCovariance(port, market) / v
		}
	}

	return domain.RiskMetrics{
		Beta:          roundTo2Decimals(beta),
		Volatility:    label,
		VolatilityNum: roundTo2Decimals(volatility),
	}, nil
}

// HealthScore rates diversification from 0 to 100, penalizing concentrated
// positions and too few sectors or asset classes.
func HealthScore(holdings []domain.Holding) int {
	if len(holdings) == 0 {
		return NeutralHealthScore
	}

	total := 0.0
	for _, h := range holdings {
		total += h.Value()
	}
	if total == 0 {
		return 0
	}

	score := 100
	for _, h := range holdings {
		if h.Value()/total > ConcentrationLimit {
			score -= 15
		}
	}

	sectors := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, h := range holdings {
		if h.Sector != "" {
			sectors[h.Sector] = struct{}{}
		}
		types[h.AssetType] = struct{}{}
	}
	if len(sectors) < MinSectors {
		score -= 20
	}
	if len(types) < MinAssetTypes {
		score -= 10
	}

	return max(score, 0)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleCovariance(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}

func sampleStdDev(xs []float64) float64 {
	return math.Sqrt(sampleCovariance(xs, xs))
}
