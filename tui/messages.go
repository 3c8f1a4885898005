package tui

import (
	"github.com/young1lin/label-layout/labels"
)

// LabelsLoadedMsg replaces every chip with a freshly loaded label list
type LabelsLoadedMsg struct {
	Labels []labels.Label
	Source string
}

// CheckChangedMsg is sent when the ledger accepts a check or uncheck
type CheckChangedMsg struct {
	Label   labels.Label
	Checked bool
}

// BeyondMaxMsg is sent when a check is refused because the cap is reached
type BeyondMaxMsg struct {
	Max int
}

// ErrorMsg is sent when a non-fatal error occurs
type ErrorMsg struct {
	Err error
}

// WatcherFailedMsg is sent when the labels file watcher stops
type WatcherFailedMsg struct {
	Err error
}
