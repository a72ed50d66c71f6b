package monitoring

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/survival.report/internal/timeutil"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
}

func TestStage(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	done := Stage(nil, "clean")
	done()

	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "[clean] starting" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[clean] done in ") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestStage_MockClock(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	clock := timeutil.NewMockClock(time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC))
	done := Stage(clock, "render")
	clock.Advance(1500*time.Millisecond + 400*time.Microsecond)
	done()

	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %v", len(lines), lines)
	}
	if lines[1] != "[render] done in 1.5s" {
		t.Errorf("second line = %q, want %q", lines[1], "[render] done in 1.5s")
	}
}
