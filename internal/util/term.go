package util

import (
	"os"
	"time"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// InitColor configures color output based on flags and terminal detection.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}

// FormatDate renders a timestamp the way list rows and highlight cards show
// it: date only for older entries, "today" for anything from the last day.
func FormatDate(t time.Time) string {
	if time.Since(t) < 24*time.Hour && time.Since(t) >= 0 {
		return "today"
	}
	return t.Format("Jan 2, 2006")
}
