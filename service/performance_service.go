package service

import (
	"time"

	"pandaledger/domain"
)

const dateLayout = "2006-01-02"

// maxRangeStart is the cutoff of the MAX range: earlier points are dropped.
var maxRangeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type rangeSpec struct {
	cutoff      func(now time.Time) time.Time
	stride      int
	labelLayout string
}

var ranges = map[domain.TimeRange]rangeSpec{
	domain.Range1M: {
		cutoff:      func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
		stride:      1, // daily precision
		labelLayout: "Jan 2",
	},
	domain.Range6M: {
		cutoff:      func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
		stride:      2,
		labelLayout: "Jan '06",
	},
	domain.Range1Y: {
		cutoff:      func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
		stride:      5, // roughly weekly
		labelLayout: "Jan '06",
	},
	domain.RangeMax: {
		cutoff:      func(time.Time) time.Time { return maxRangeStart },
		stride:      14,
		labelLayout: "2006",
	},
}

type PerformanceService struct {
	now func() time.Time
}

func NewPerformanceService() *PerformanceService {
	return &PerformanceService{now: time.Now}
}

// Chart downsamples a performance series for display over the requested range.
func (s *PerformanceService) Chart(input domain.ChartInput) (domain.ChartResult, error) {
	return Downsample(input, s.now())
}

// Downsample keeps the points of in dated on or after the range cutoff, then
// thins them to every stride-th point. The most recent point always survives.
// Points are expected in chronological order.
func Downsample(in domain.ChartInput, now time.Time) (domain.ChartResult, error) {
	spec, ok := ranges[in.Range]
	if !ok {
		return domain.ChartResult{}, invalidf("unknown time range %q", in.Range)
	}

	y, m, d := now.Date()
	cutoff := spec.cutoff(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	type dated struct {
		point domain.PerformancePoint
		date  time.Time
	}
	filtered := make([]dated, 0, len(in.Points))
	for _, p := range in.Points {
		t, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return domain.ChartResult{}, invalidf("bad date %q: expected YYYY-MM-DD", p.Date)
		}
		if !t.Before(cutoff) {
			filtered = append(filtered, dated{point: p, date: t})
		}
	}

	points := []domain.ChartPoint{}
	last := len(filtered) - 1
	for i, f := range filtered {
		if i%spec.stride != 0 && i != last {
			continue
		}
		points = append(points, domain.ChartPoint{
			PerformancePoint: f.point,
			Label:            f.date.Format(spec.labelLayout),
		})
	}

	return domain.ChartResult{Range: in.Range, Points: points}, nil
}
