package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		want    int
		wantErr bool
	}{
		{name: "same day", from: "2024-01-01", to: "2024-01-01", want: 0},
		{name: "consecutive", from: "2024-01-01", to: "2024-01-02", want: 1},
		{name: "month boundary", from: "2024-01-31", to: "2024-02-01", want: 1},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "across DST start", from: "2024-03-09", to: "2024-03-11", want: 2},
		{name: "year boundary", from: "2023-12-31", to: "2024-01-01", want: 1},
		{name: "backwards", from: "2024-01-05", to: "2024-01-02", want: -3},
		{name: "invalid from", from: "yesterday", to: "2024-01-02", wantErr: true},
		{name: "invalid to", from: "2024-01-02", to: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 03:00 UTC on Jan 2 is still Jan 1 in New York
	instant := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	if got := FormatDate(instant, ny); got != "2024-01-01" {
		t.Errorf("FormatDate() = %q, want 2024-01-01", got)
	}
	if got := FormatDate(instant, time.UTC); got != "2024-01-02" {
		t.Errorf("FormatDate() = %q, want 2024-01-02", got)
	}
}

func TestValidateDate(t *testing.T) {
	if !ValidateDate("2024-02-29") {
		t.Error("leap day should be valid")
	}
	for _, bad := range []string{"", "2023-02-29", "2024-1-1", "01/02/2024"} {
		if ValidateDate(bad) {
			t.Errorf("ValidateDate(%q) = true, want false", bad)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.config/x.db"); got != filepath.Join(home, ".config/x.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() should leave absolute paths alone, got %q", got)
	}
	if !IsPostgresURL("postgresql://localhost/db") || IsPostgresURL("/tmp/db") {
		t.Error("IsPostgresURL() misclassified location")
	}
}
