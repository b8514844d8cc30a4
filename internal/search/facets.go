package search

import "time"

// DateBounds are the fixed boundaries the facet aggregator buckets
// conversations into. Buckets are mutually exclusive:
//
//	today:     [Today, ∞)
//	thisWeek:  [WeekAgo, Today)
//	thisMonth: [MonthAgo, WeekAgo)
//	older:     derived as total − today − thisWeek − thisMonth
//
// Deriving "older" by subtraction (rather than a fourth range query)
// guarantees the four buckets always sum exactly to the unfiltered total.
type DateBounds struct {
	Today    time.Time // local midnight today
	WeekAgo  time.Time // local midnight 7 days ago
	MonthAgo time.Time // local midnight 30 days ago
}

// DateBucketBounds computes the facet boundaries relative to now, in
// now's location.
func DateBucketBounds(now time.Time) DateBounds {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return DateBounds{
		Today:    midnight,
		WeekAgo:  midnight.AddDate(0, 0, -7),
		MonthAgo: midnight.AddDate(0, 0, -30),
	}
}
