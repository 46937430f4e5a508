package tui

// Bubble Tea message types

// loadedMsg is sent when a snapshot load finishes, successfully or not.
type loadedMsg struct {
	Err error
}
