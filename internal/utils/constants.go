package utils

import "time"

// =============================================================================
// HTTP Constants
// =============================================================================

const (
	// DefaultRequestTimeout bounds a single transform request
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second

	// DefaultBodyLimit is the default maximum request body size in bytes
	DefaultBodyLimit = 16 * 1024 * 1024
)

// =============================================================================
// Transform Limits
// =============================================================================

const (
	// DefaultMaxSeries is the default maximum number of series per request
	DefaultMaxSeries = 1000

	// DefaultMaxPointsPerSeries is the default maximum number of samples per series
	DefaultMaxPointsPerSeries = 1_000_000
)

// =============================================================================
// Time Units (milliseconds)
// =============================================================================

const (
	MillisPerSecond int64 = 1000
	MillisPerMinute       = 60 * MillisPerSecond
	MillisPerHour         = 60 * MillisPerMinute
	MillisPerDay          = 24 * MillisPerHour
	MillisPerWeek         = 7 * MillisPerDay
	// MillisPerMonth is a fixed 30-day month
	MillisPerMonth = 30 * MillisPerDay
	// MillisPerYear is a fixed 365-day year
	MillisPerYear = 365 * MillisPerDay
)
