package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"pandaledger/domain"
)

// ErrInvalidInput is wrapped by every validation failure so callers can
// tell a bad request apart from an internal error.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// MonthsFor converts a duration in years to whole months, rounding to the
// nearest month (half away from zero). 2.04 years is 24 months, 2.05 is 25.
func MonthsFor(years float64) int {
	return int(math.Round(years * MonthsPerYear))
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateYears(years float64) error {
	if years <= 0 {
		return invalidf("years must be positive")
	}
	if years > MaxYears {
		return invalidf("years exceeds the maximum of %.0f", MaxYears)
	}
	if MonthsFor(years) < 1 {
		return invalidf("duration of %g years is shorter than one month", years)
	}
	return nil
}

func validateRate(name string, rate float64) error {
	if rate < 0 {
		return invalidf("%s cannot be negative", name)
	}
	if rate > MaxAnnualRate {
		return invalidf("%s exceeds the maximum of %.0f%%", name, MaxAnnualRate)
	}
	return nil
}

// ValidateSIP reports whether in can be projected.
func ValidateSIP(in domain.SIPInput) error {
	if !isFinite(in.MonthlyAmount, in.AnnualRate, in.Years) {
		return invalidf("values must be finite numbers")
	}
	if in.MonthlyAmount <= 0 {
		return invalidf("monthly amount must be positive")
	}
	if in.MonthlyAmount > MaxMonthlyAmount {
		return invalidf("monthly amount exceeds the maximum of %.0f", MaxMonthlyAmount)
	}
	if err := validateRate("annual rate", in.AnnualRate); err != nil {
		return err
	}
	return validateYears(in.Years)
}

// ValidateSWP reports whether in can be simulated.
func ValidateSWP(in domain.SWPInput) error {
	growth := GrowthRate(in)
	if !isFinite(in.Corpus, in.MonthlyWithdrawal, in.Years, growth) {
		return invalidf("values must be finite numbers")
	}
	if in.Corpus < 0 {
		return invalidf("corpus cannot be negative")
	}
	if in.Corpus > MaxCorpus {
		return invalidf("corpus exceeds the maximum of %.0f", MaxCorpus)
	}
	if in.MonthlyWithdrawal <= 0 {
		return invalidf("monthly withdrawal must be positive")
	}
	if in.MonthlyWithdrawal > MaxMonthlyAmount {
		return invalidf("monthly withdrawal exceeds the maximum of %.0f", MaxMonthlyAmount)
	}
	if err := validateRate("annual growth rate", growth); err != nil {
		return err
	}
	return validateYears(in.Years)
}

// GrowthRate returns the annual growth rate of in, falling back to
// DefaultSWPGrowthRate when none was given.
func GrowthRate(in domain.SWPInput) float64 {
	if in.AnnualGrowthRate == nil {
		return DefaultSWPGrowthRate
	}
	return *in.AnnualGrowthRate
}

// ProjectSIP returns the future value of a monthly investment compounded
// monthly, with each contribution made at the start of its month:
//
//	FV = P × ((1+i)^n − 1) / i × (1+i)
//
// The total is rounded to whole currency units and never falls below the
// amount invested. A zero rate accumulates in a straight line.
func ProjectSIP(in domain.SIPInput) (domain.SIPResult, error) {
	if err := ValidateSIP(in); err != nil {
		return domain.SIPResult{}, err
	}

	n := MonthsFor(in.Years)
	invested := in.MonthlyAmount * float64(n)

	total := invested
	if in.AnnualRate != 0 {
		i := in.AnnualRate / 100 / MonthsPerYear
		fv := in.MonthlyAmount * ((math.Pow(1+i, float64(n)) - 1) / i) * (1 + i)
		total = math.Max(math.Round(fv), invested)
	}

	return domain.SIPResult{
		Total:    total,
		Invested: invested,
		Profit:   total - invested,
		Months:   n,
	}, nil
}

// ProjectSWP simulates a corpus that grows monthly and pays out a fixed
// withdrawal after each month's growth. The simulation stops at the first
// month that leaves the balance at or below zero; that month's withdrawal
// still counts towards TotalWithdrawn.
func ProjectSWP(in domain.SWPInput) (domain.SWPResult, error) {
	if err := ValidateSWP(in); err != nil {
		return domain.SWPResult{}, err
	}

	r := GrowthRate(in) / 100 / MonthsPerYear
	months := MonthsFor(in.Years)
	step := decimal.NewFromFloat(in.MonthlyWithdrawal)

	var result domain.SWPResult
	balance := in.Corpus
	withdrawn := decimal.Zero

	for m := 0; m < months; m++ {
		balance *= 1 + r
		balance -= in.MonthlyWithdrawal
		withdrawn = withdrawn.Add(step)
		result.MonthsSimulated++

		if balance <= 0 {
			balance = 0
			result.Depleted = true
			break
		}
	}

	result.Balance = math.Round(balance)
	result.TotalWithdrawn = withdrawn.InexactFloat64()
	return result, nil
}
