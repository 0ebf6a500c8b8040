package series

import (
	"sort"
	"time"

	"btc-yardstick/internal/domain"
)

// QuarterEnd returns the last calendar day of t's quarter (UTC, midnight).
func QuarterEnd(t time.Time) time.Time {
	t = t.UTC()
	q := (int(t.Month()) - 1) / 3
	firstOfNext := time.Date(t.Year(), time.Month(q*3+4), 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// IsQuarterEnd reports whether t falls on a quarter boundary date.
func IsQuarterEnd(t time.Time) bool {
	return QuarterEnd(t).Equal(time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC))
}

// ResampleQuarterly reduces an observation series to at most one point per
// calendar quarter, stamped at the quarter-end date. For each quarter the
// latest observation at or before the boundary wins; quarters with no
// observation are absent. No interpolation.
func ResampleQuarterly(obs domain.ObservationSeries) domain.ObservationSeries {
	if len(obs) == 0 {
		return nil
	}

	sorted := make(domain.ObservationSeries, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// Ascending order means a later observation in the same quarter
	// simply overwrites the earlier one (same-day duplicates included).
	byQuarter := make(map[time.Time]float64)
	for _, o := range sorted {
		byQuarter[QuarterEnd(o.Date)] = o.Price
	}

	ends := make([]time.Time, 0, len(byQuarter))
	for end := range byQuarter {
		ends = append(ends, end)
	}
	sort.Slice(ends, func(i, j int) bool { return ends[i].Before(ends[j]) })

	out := make(domain.ObservationSeries, 0, len(ends))
	for _, end := range ends {
		out = append(out, domain.Observation{Date: end, Price: byQuarter[end]})
	}
	return out
}
