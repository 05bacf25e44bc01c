package util_test

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/lumina/internal/util"
)

func TestFormatDate(t *testing.T) {
	if got := util.FormatDate(time.Now().Add(-2 * time.Hour)); got != "today" {
		t.Errorf("recent timestamp = %q, want today", got)
	}
	old := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := util.FormatDate(old); !strings.Contains(got, "2024") {
		t.Errorf("old timestamp = %q", got)
	}
}
