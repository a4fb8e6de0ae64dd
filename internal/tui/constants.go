package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginSmall = 2  // Small vertical margin (m.height - 2)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Content Area Offsets
	ContentOffsetHelp    = 10 // m.height - 10 for help viewer
	MainViewHeightOffset = 4  // tab bar + editor border + status bar
	HelpViewWidthOffset  = 14 // m.width - 14 for help viewport width

	// Modal Content Calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals
	ModalFooterLines     = 2 // Footer + blank line

	// Modal sizes
	ConfirmModalWidth  = 60
	ConfirmModalHeight = 10
	PromptModalWidth   = 70
	PromptModalHeight  = 9
	RecentModalWidth   = 80
	RecentModalHeight  = 20
	FileDialogWidth    = 80
	FileDialogHeight   = 24

	// Input widths
	PromptInputWidth = 56
	FindInputWidth   = 30

	// PickerPageSize is how far page up/down move in lists
	PickerPageSize = 10

	// ModifiedMarker follows the title of tabs with unsaved changes
	ModifiedMarker = "●"
)
