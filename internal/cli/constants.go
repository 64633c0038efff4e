package cli

// Default values for CLI output formatting.
const (
	// MaxDescriptionLength is the maximum length of a collection description to display.
	MaxDescriptionLength = 60
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// ProgressBarWidth is the rendered width of download progress bars.
	ProgressBarWidth = 64
)
