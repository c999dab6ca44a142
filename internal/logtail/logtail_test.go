package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero reads nothing", 0, nil},
		{"negative reads nothing", -1, nil},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "with fields",
			line: "2026-10-17T10:00:00Z\tWARN\tstatus poll failed\t{\"err\": \"refused\"}",
			want: Entry{Time: "2026-10-17T10:00:00Z", Level: "WARN", Message: "status poll failed", Fields: "{\"err\": \"refused\"}"},
		},
		{
			name: "no fields",
			line: "2026-10-17T10:00:00Z\tINFO\tpoller started",
			want: Entry{Time: "2026-10-17T10:00:00Z", Level: "INFO", Message: "poller started"},
		},
		{
			name: "plain text",
			line: "panic: something",
			want: Entry{Message: "panic: something"},
		},
		{
			name: "tabs without level",
			line: "a\tb\tc",
			want: Entry{Message: "a\tb\tc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.line); got != tt.want {
				t.Fatalf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
