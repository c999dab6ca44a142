package ui

import "time"

// Terminal width thresholds.
const (
	// LayoutCompactWidth is the width below which the header drops the API
	// address.
	LayoutCompactWidth = 72
)

// Log pane limits.
const (
	// LogTailLines is how many lines of the log file the pane keeps.
	LogTailLines = 200

	// MinLogPaneHeight hides the log pane when less room than this is left.
	MinLogPaneHeight = 3
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the state store and
	// the log tail.
	DefaultUIInterval = time.Second
)
