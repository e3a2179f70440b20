// ABOUTME: Tests for HealthSample model and HealthMetric.
// ABOUTME: Validates units mapping and constructor.
package models

import (
	"testing"
)

func TestHealthMetricUnit(t *testing.T) {
	tests := []struct {
		kind     HealthMetric
		wantUnit string
	}{
		{HealthSleep, "hours"},
		{HealthSteps, "steps"},
		{HealthRestingHeartRate, "bpm"},
		{HealthHRV, "ms"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := HealthUnits[tt.kind]; got != tt.wantUnit {
				t.Errorf("HealthUnits[%s] = %s, want %s", tt.kind, got, tt.wantUnit)
			}
		})
	}
}

func TestAllHealthMetricsHaveUnits(t *testing.T) {
	for _, hm := range AllHealthMetrics {
		if _, ok := HealthUnits[hm]; !ok {
			t.Errorf("HealthMetric %s has no unit defined", hm)
		}
		if !IsValidHealthMetric(string(hm)) {
			t.Errorf("IsValidHealthMetric(%s) = false", hm)
		}
	}
	if IsValidHealthMetric("weight") {
		t.Error("weight should not be a supported health metric")
	}
}

func TestNewHealthSample(t *testing.T) {
	s := NewHealthSample(HealthSleep, 7.5)

	if s.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if s.Kind != HealthSleep || s.Value != 7.5 || s.Unit != "hours" {
		t.Errorf("got %s %.1f %s, want sleep_hours 7.5 hours", s.Kind, s.Value, s.Unit)
	}
	if s.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to be set")
	}
}
