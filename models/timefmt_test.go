// ABOUTME: Tests for IST timestamp formatting
// ABOUTME: Verifies epoch conversion, AM/PM, and the N/A fallback
package models

import "testing"

func TestFormatTimestampIST(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
		want   string
	}{
		{name: "zero is unknown", millis: 0, want: "N/A"},
		{name: "negative is unknown", millis: -1500, want: "N/A"},
		{name: "morning", millis: 1700000000000, want: "Nov 15, 2023 at 03:43 AM IST"},
		{name: "afternoon", millis: 1700040000000, want: "Nov 15, 2023 at 02:50 PM IST"},
		{name: "single digit day is padded", millis: 1136239445000, want: "Jan 03, 2006 at 03:34 AM IST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestampIST(tt.millis)
			if got != tt.want {
				t.Errorf("FormatTimestampIST(%d) = %q, want %q", tt.millis, got, tt.want)
			}
		})
	}
}
