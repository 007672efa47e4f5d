package service

const (
	MaxMonthlyAmount = 100_000_000.0    // 10 crore per month
	MaxCorpus        = 10_000_000_000.0 // 1000 crore
	MaxAnnualRate    = 100.0            // 100% annual
	MaxYears         = 100.0

	// DefaultSWPGrowthRate is the conservative debt/hybrid fund return
	// assumed for withdrawal plans.
	DefaultSWPGrowthRate = 8.0

	MonthsPerYear = 12

	// Portfolio analytics
	TradingDaysPerYear       = 252
	MinSnapshotsForRisk      = 10
	MinAlignedReturnsForBeta = 10
	VolatilityMediumAbove    = 15.0
	VolatilityHighAbove      = 30.0
	ConcentrationLimit       = 0.40
	MinSectors               = 3
	MinAssetTypes            = 2
	NeutralHealthScore       = 50

	xirrMaxIterations = 100
	xirrTolerance     = 1e-9
)
