package usage

// reconcileOracle returns a copy of q with the daily and monthly rollovers
// applied for the given period markers. It is pure: callers compare and
// commit the returned copy, the input is never mutated mid-comparison.
func reconcileOracle(q OracleQuota, today, month string) OracleQuota {
	if q.LastResetDate != today {
		q.TodayCount = 0
		q.LastResetDate = today
	}
	if q.MonthMarker != month {
		q.MonthCount = 0
		q.MonthMarker = month
	}
	return q
}

// remaining clamps limit-count to zero.
func remaining(limit, count int) int {
	if r := limit - count; r > 0 {
		return r
	}
	return 0
}
