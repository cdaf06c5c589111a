package tui

import (
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/split"
)

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// SweepCompleteMsg carries the finished split sweep
type SweepCompleteMsg struct {
	Result *split.SweepResult
	Err    error
}
