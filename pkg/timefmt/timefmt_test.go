package timefmt

import "testing"

func TestClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{90, "01:30"},
		{1500, "25:00"},
		{-10, "00:00"},
	}

	for _, tt := range tests {
		if got := Clock(tt.seconds); got != tt.want {
			t.Errorf("Clock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRoundedUnit(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{60, "1m"},
		{300, "5m"},
		{3600, "60m"},
		{7200, "2h"},
		{-90, "1m"},
	}

	for _, tt := range tests {
		if got := RoundedUnit(tt.seconds); got != tt.want {
			t.Errorf("RoundedUnit(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
