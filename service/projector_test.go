package service

import (
	"errors"
	"math"
	"testing"

	"pandaledger/domain"
)

func ratePtr(v float64) *float64 { return &v }

func TestProjectSIP_Golden(t *testing.T) {
	result, err := ProjectSIP(domain.SIPInput{MonthlyAmount: 5000, AnnualRate: 12, Years: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 412432 {
		t.Errorf("expected total 412432, got %.2f", result.Total)
	}
	if result.Invested != 300000 {
		t.Errorf("expected invested 300000, got %.2f", result.Invested)
	}
	if result.Profit != 112432 {
		t.Errorf("expected profit 112432, got %.2f", result.Profit)
	}
	if result.Months != 60 {
		t.Errorf("expected 60 months, got %d", result.Months)
	}
}

func TestProjectSIP_ZeroRate(t *testing.T) {
	result, err := ProjectSIP(domain.SIPInput{MonthlyAmount: 2500, AnnualRate: 0, Years: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 2500.0 * 3 * 12
	if result.Total != expected {
		t.Errorf("expected %.2f, got %.2f", expected, result.Total)
	}
	if result.Profit != 0 {
		t.Errorf("expected no profit, got %.2f", result.Profit)
	}
	if math.IsNaN(result.Total) || math.IsInf(result.Total, 0) {
		t.Errorf("total must be finite")
	}
}

func TestProjectSIP_TotalNeverBelowInvested(t *testing.T) {
	amounts := []float64{500, 1234.56, 100.3, 99999}
	rates := []float64{0, 0.0001, 1, 5, 12, 30}
	years := []float64{0.5, 1, 2.5, 10, 30}

	for _, a := range amounts {
		for _, r := range rates {
			for _, y := range years {
				res, err := ProjectSIP(domain.SIPInput{MonthlyAmount: a, AnnualRate: r, Years: y})
				if err != nil {
					t.Fatalf("ProjectSIP(%v, %v, %v): %v", a, r, y, err)
				}
				if res.Total < res.Invested {
					t.Errorf("ProjectSIP(%v, %v, %v): total %.2f < invested %.2f", a, r, y, res.Total, res.Invested)
				}
				if res.Profit != res.Total-res.Invested {
					t.Errorf("ProjectSIP(%v, %v, %v): profit %.2f != total - invested", a, r, y, res.Profit)
				}
			}
		}
	}
}

func TestProjectSIP_FractionalYearsRoundToNearestMonth(t *testing.T) {
	tests := []struct {
		years  float64
		months int
		total  float64
	}{
		{years: 2.04, months: 24, total: 26667}, // 24.48 rounds down
		{years: 2.05, months: 25, total: 27898}, // 24.6 rounds up; flooring would give 24
		{years: 2.5, months: 30, total: 0},
	}

	for _, tt := range tests {
		res, err := ProjectSIP(domain.SIPInput{MonthlyAmount: 1000, AnnualRate: 10, Years: tt.years})
		if err != nil {
			t.Fatalf("years %v: unexpected error: %v", tt.years, err)
		}
		if res.Months != tt.months {
			t.Errorf("years %v: expected %d months, got %d", tt.years, tt.months, res.Months)
		}
		if res.Invested != 1000*float64(tt.months) {
			t.Errorf("years %v: expected invested %d, got %.2f", tt.years, 1000*tt.months, res.Invested)
		}
		if tt.total != 0 && res.Total != tt.total {
			t.Errorf("years %v: expected total %.0f, got %.2f", tt.years, tt.total, res.Total)
		}
	}
}

func TestMonthsFor(t *testing.T) {
	tests := map[float64]int{
		1:    12,
		0.5:  6,
		0.75: 9,
		2.04: 24,
		2.05: 25,
		30:   360,
	}
	for years, want := range tests {
		if got := MonthsFor(years); got != want {
			t.Errorf("MonthsFor(%v) = %d, want %d", years, got, want)
		}
	}
}

func TestProjectSIP_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.SIPInput
	}{
		{"zero amount", domain.SIPInput{MonthlyAmount: 0, AnnualRate: 12, Years: 5}},
		{"negative amount", domain.SIPInput{MonthlyAmount: -100, AnnualRate: 12, Years: 5}},
		{"amount too large", domain.SIPInput{MonthlyAmount: MaxMonthlyAmount + 1, AnnualRate: 12, Years: 5}},
		{"negative rate", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: -1, Years: 5}},
		{"rate too large", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: MaxAnnualRate + 1, Years: 5}},
		{"zero years", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: 12, Years: 0}},
		{"negative years", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: 12, Years: -2}},
		{"under a month", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: 12, Years: 0.01}},
		{"too many years", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: 12, Years: MaxYears + 1}},
		{"NaN rate", domain.SIPInput{MonthlyAmount: 5000, AnnualRate: math.NaN(), Years: 5}},
		{"infinite amount", domain.SIPInput{MonthlyAmount: math.Inf(1), AnnualRate: 12, Years: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectSIP(tt.input)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProjectSWP_Golden(t *testing.T) {
	result, err := ProjectSWP(domain.SWPInput{
		Corpus:            1_000_000,
		MonthlyWithdrawal: 5000,
		Years:             5,
		AnnualGrowthRate:  ratePtr(8),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Balance != 1122461 {
		t.Errorf("expected balance 1122461, got %.2f", result.Balance)
	}
	if result.TotalWithdrawn != 300000 {
		t.Errorf("expected total withdrawn 300000, got %.2f", result.TotalWithdrawn)
	}
	if result.MonthsSimulated != 60 || result.Depleted {
		t.Errorf("expected 60 months without depletion, got %d (depleted=%v)", result.MonthsSimulated, result.Depleted)
	}
}

func TestProjectSWP_DefaultGrowthRate(t *testing.T) {
	withDefault, err := ProjectSWP(domain.SWPInput{Corpus: 1_000_000, MonthlyWithdrawal: 5000, Years: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, _ := ProjectSWP(domain.SWPInput{
		Corpus: 1_000_000, MonthlyWithdrawal: 5000, Years: 5, AnnualGrowthRate: ratePtr(DefaultSWPGrowthRate),
	})
	if withDefault != explicit {
		t.Errorf("expected default growth to match %.0f%%: %+v vs %+v", DefaultSWPGrowthRate, withDefault, explicit)
	}
}

func TestProjectSWP_DepletesEarly(t *testing.T) {
	result, err := ProjectSWP(domain.SWPInput{Corpus: 100_000, MonthlyWithdrawal: 10_000, Years: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Balance != 0 {
		t.Errorf("expected depleted balance 0, got %.2f", result.Balance)
	}
	if !result.Depleted {
		t.Errorf("expected depleted flag")
	}
	if result.MonthsSimulated != 11 {
		t.Errorf("expected depletion in month 11, got %d", result.MonthsSimulated)
	}
	if result.TotalWithdrawn != 10_000*float64(result.MonthsSimulated) {
		t.Errorf("expected withdrawn %.2f, got %.2f", 10_000*float64(result.MonthsSimulated), result.TotalWithdrawn)
	}
}

func TestProjectSWP_EmptyCorpus(t *testing.T) {
	result, err := ProjectSWP(domain.SWPInput{Corpus: 0, MonthlyWithdrawal: 1000, Years: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Balance != 0 || result.TotalWithdrawn != 1000 || result.MonthsSimulated != 1 {
		t.Errorf("expected one withdrawal from an empty corpus, got %+v", result)
	}
}

func TestProjectSWP_ZeroGrowth(t *testing.T) {
	result, err := ProjectSWP(domain.SWPInput{
		Corpus: 120_000, MonthlyWithdrawal: 1000, Years: 2, AnnualGrowthRate: ratePtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Balance != 96_000 {
		t.Errorf("expected 96000, got %.2f", result.Balance)
	}
}

func TestProjectSWP_BalanceNeverNegative(t *testing.T) {
	corpora := []float64{0, 50_000, 1_000_000, 10_000_000}
	withdrawals := []float64{1000, 25_000, 100_000}
	years := []float64{1, 5, 30}

	for _, c := range corpora {
		for _, w := range withdrawals {
			for _, y := range years {
				res, err := ProjectSWP(domain.SWPInput{Corpus: c, MonthlyWithdrawal: w, Years: y})
				if err != nil {
					t.Fatalf("ProjectSWP(%v, %v, %v): %v", c, w, y, err)
				}
				if res.Balance < 0 {
					t.Errorf("ProjectSWP(%v, %v, %v): negative balance %.2f", c, w, y, res.Balance)
				}
				if res.MonthsSimulated > MonthsFor(y) {
					t.Errorf("ProjectSWP(%v, %v, %v): simulated %d months", c, w, y, res.MonthsSimulated)
				}
				if res.TotalWithdrawn != w*float64(res.MonthsSimulated) {
					t.Errorf("ProjectSWP(%v, %v, %v): withdrawn %.2f != %.2f", c, w, y, res.TotalWithdrawn, w*float64(res.MonthsSimulated))
				}
				if res.Depleted && res.Balance != 0 {
					t.Errorf("ProjectSWP(%v, %v, %v): depleted with balance %.2f", c, w, y, res.Balance)
				}
			}
		}
	}
}

func TestProjectSWP_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.SWPInput
	}{
		{"negative corpus", domain.SWPInput{Corpus: -1, MonthlyWithdrawal: 1000, Years: 5}},
		{"zero withdrawal", domain.SWPInput{Corpus: 1000, MonthlyWithdrawal: 0, Years: 5}},
		{"zero years", domain.SWPInput{Corpus: 1000, MonthlyWithdrawal: 100, Years: 0}},
		{"negative growth", domain.SWPInput{Corpus: 1000, MonthlyWithdrawal: 100, Years: 1, AnnualGrowthRate: ratePtr(-2)}},
		{"NaN corpus", domain.SWPInput{Corpus: math.NaN(), MonthlyWithdrawal: 100, Years: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ProjectSWP(tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProjections_Idempotent(t *testing.T) {
	sipIn := domain.SIPInput{MonthlyAmount: 7300, AnnualRate: 13.5, Years: 17.25}
	a, _ := ProjectSIP(sipIn)
	b, _ := ProjectSIP(sipIn)
	if a != b {
		t.Errorf("SIP results differ: %+v vs %+v", a, b)
	}

	swpIn := domain.SWPInput{Corpus: 2_345_678, MonthlyWithdrawal: 17_500, Years: 12, AnnualGrowthRate: ratePtr(7.25)}
	c, _ := ProjectSWP(swpIn)
	d, _ := ProjectSWP(swpIn)
	if c != d {
		t.Errorf("SWP results differ: %+v vs %+v", c, d)
	}
}
