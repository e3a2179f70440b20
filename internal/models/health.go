// ABOUTME: HealthSample model and HealthMetric enum.
// ABOUTME: Samples are supplied by the user or a sensor import, one per day per metric.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthMetric is the kind of health sample.
type HealthMetric string

const (
	HealthSleep            HealthMetric = "sleep_hours"
	HealthSteps            HealthMetric = "steps"
	HealthRestingHeartRate HealthMetric = "resting_heart_rate"
	HealthHRV              HealthMetric = "hrv"
)

// HealthUnits maps health metrics to their display units.
var HealthUnits = map[HealthMetric]string{
	HealthSleep:            "hours",
	HealthSteps:            "steps",
	HealthRestingHeartRate: "bpm",
	HealthHRV:              "ms",
}

// AllHealthMetrics returns all supported health metrics.
var AllHealthMetrics = []HealthMetric{
	HealthSleep, HealthSteps, HealthRestingHeartRate, HealthHRV,
}

// IsValidHealthMetric checks if a string is a supported health metric.
func IsValidHealthMetric(s string) bool {
	for _, hm := range AllHealthMetrics {
		if string(hm) == s {
			return true
		}
	}
	return false
}

// HealthSample is a single timestamped health reading.
type HealthSample struct {
	ID         uuid.UUID    `json:"id"`
	Kind       HealthMetric `json:"kind"`
	Value      float64      `json:"value"`
	Unit       string       `json:"unit"`
	RecordedAt time.Time    `json:"recorded_at"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewHealthSample creates a HealthSample with generated UUID and current timestamp.
func NewHealthSample(kind HealthMetric, value float64) *HealthSample {
	now := time.Now()
	return &HealthSample{
		ID:         uuid.New(),
		Kind:       kind,
		Value:      value,
		Unit:       HealthUnits[kind],
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp.
func (s *HealthSample) WithRecordedAt(t time.Time) *HealthSample {
	s.RecordedAt = t
	return s
}
