package ui

// Layout constants.
const (
	// searchChrome is the width taken by the search box border, padding and prompt.
	searchChrome = 8

	// LayoutCompactWidth is the threshold below which card metadata is shortened.
	LayoutCompactWidth = 60

	// cardGap is the blank line between movie cards.
	cardGap = 1
)

// Diagnostics limits.
const (
	// DiagnosticsLines is the number of log lines loaded into the overlay.
	DiagnosticsLines = 500
)
