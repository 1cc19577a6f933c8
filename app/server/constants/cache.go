package constants

import "time"

const (
	CacheKeyDashboardCounts = "campus:administrator:dashboard:counts"
)

const (
	CacheExpireDashboardCounts = 1 * time.Minute
)
