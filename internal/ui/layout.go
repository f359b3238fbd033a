package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the trend description
	// and mmol/L value are dropped from the current reading line.
	LayoutCompactWidth = 60
)

// Dashboard limits.
const (
	// StripLength is how many recent readings the dot strip shows.
	StripLength = 10

	// SparklineLength is how many recent readings the sparkline covers.
	SparklineLength = 37

	// MinHistoryRows is the smallest history table worth drawing.
	MinHistoryRows = 3
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// StaleAfter is how old the newest reading may be before it is flagged.
	StaleAfter = 15 * time.Minute
)
