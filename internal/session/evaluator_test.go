package session

import (
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	threshold := 15 * time.Second

	tests := []struct {
		name      string
		idle      time.Duration
		attention bool
		want      bool
	}{
		{"active with attention", 0, true, true},
		{"idle at threshold", 15 * time.Second, true, true},
		{"idle just past threshold", 15*time.Second + time.Millisecond, true, false},
		{"idle far past threshold", 5 * time.Minute, true, false},
		{"active without attention", 0, false, false},
		{"idle without attention", time.Minute, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.idle, tt.attention, threshold)
			if got != tt.want {
				t.Errorf("Evaluate(%v, %v, %v) = %v, want %v",
					tt.idle, tt.attention, threshold, got, tt.want)
			}
		})
	}
}

func TestEvaluateThresholdDependsOnMode(t *testing.T) {
	idle := 60 * time.Second

	if Evaluate(idle, true, 15*time.Second) {
		t.Error("60s idle should be unfocused under the 15s active threshold")
	}
	if !Evaluate(idle, true, 90*time.Second) {
		t.Error("60s idle should be focused under the 90s reading threshold")
	}
}
