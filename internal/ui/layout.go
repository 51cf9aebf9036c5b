package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 90

	// LayoutHexWidth is the minimum grid width that shows the hex column.
	LayoutHexWidth = 70

	// LayoutExtraWideWidth is the threshold for the narrower detail split.
	LayoutExtraWideWidth = 160
)

// Fixed chrome heights.
const (
	// chromeHeight covers the header, command bar and status line.
	chromeHeight = 3

	// boxBorderHeight covers the top and bottom border of a titled box.
	boxBorderHeight = 2
)

// Input limits.
const (
	// SearchCharLimit bounds the search query.
	SearchCharLimit = 40

	// PathCharLimit bounds the import path or share code input.
	PathCharLimit = 4096
)
