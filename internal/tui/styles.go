package tui

import "github.com/rgehrsitz/homeloan/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	HighlightStyle    = tuistyles.HighlightStyle
	ErrorStyle        = tuistyles.ErrorStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
	FormatRatio    = tuistyles.FormatRatio
)
