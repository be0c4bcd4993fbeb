package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, level LogLevel) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf})
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(t, WARN)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("Expected DEBUG/INFO to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") {
		t.Errorf("Expected WARN line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] error 4") {
		t.Errorf("Expected ERROR line, got %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newTestLogger(t, INFO)

	l.Debug("hidden")
	l.SetLevel(DEBUG)
	l.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected first debug line to be dropped, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("Expected debug line after SetLevel, got %q", out)
	}
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	l, buf := newTestLogger(t, INFO)

	l.Info("100% done")

	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("Expected literal message, got %q", buf.String())
	}
}

func TestPrefixAndOutputSwap(t *testing.T) {
	var first, second bytes.Buffer
	l := New(Config{Level: INFO, Prefix: "royalty", Output: &first})

	l.Info("one")
	l.SetOutput(&second)
	l.Info("two")

	if !strings.Contains(first.String(), "royalty") || !strings.Contains(first.String(), "one") {
		t.Errorf("Expected prefixed line in first buffer, got %q", first.String())
	}
	if strings.Contains(first.String(), "two") {
		t.Errorf("Expected second line to go to new output, got %q", first.String())
	}
	if !strings.Contains(second.String(), "two") {
		t.Errorf("Expected second line in new output, got %q", second.String())
	}
}

func TestShowTime(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, ShowTime: true, TimeFormat: "2006", Output: &buf})

	l.Info("stamped")

	line := buf.String()
	if len(line) < 4 || line[0] < '0' || line[0] > '9' {
		t.Errorf("Expected line to start with a year, got %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{" warning ", WARN, true},
		{"Error", ERROR, true},
		{"fatal", FATAL, true},
		{"", INFO, false},
		{"verbose", INFO, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelString(t *testing.T) {
	if ERROR.String() != "ERROR" {
		t.Errorf("Expected ERROR, got %s", ERROR.String())
	}
	if LogLevel(42).String() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN, got %s", LogLevel(42).String())
	}
}

func TestPrintfAndSync(t *testing.T) {
	l, buf := newTestLogger(t, WARN)

	l.Printf("slow query %s", "SELECT 1")
	if !strings.Contains(buf.String(), "[WARN] slow query SELECT 1") {
		t.Errorf("Expected Printf to log at WARN, got %q", buf.String())
	}

	if err := l.Sync(); err != nil {
		t.Errorf("Expected Sync on a buffer to succeed, got %v", err)
	}
}
