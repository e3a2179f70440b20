// ABOUTME: Health correlation adapter relating daily health metrics to mood.
// ABOUTME: Samples come from an external feed; this code only consumes them.
package analysis

import (
	"fmt"
	"sort"

	"github.com/harperreed/moodlog/internal/models"
)

// HealthCorrelationResult is the correlation of one health metric with mood.
type HealthCorrelationResult struct {
	Kind        models.HealthMetric `json:"kind"`
	Coefficient Correlation         `json:"coefficient"`
	// SampleSize counts days with both a health sample and mood data.
	SampleSize    int      `json:"sample_size"`
	WindowDays    int      `json:"window_days"`
	AverageMetric *float64 `json:"average_metric"`
}

// DailyHealthAverages averages samples of one kind per calendar day in the
// window. Step samples of exactly zero are treated as missing sensor data
// and dropped.
func (e *Engine) DailyHealthAverages(kind models.HealthMetric, samples []*models.HealthSample, windowDays int) map[Date]float64 {
	buckets := make(map[Date][]float64)
	for _, s := range samples {
		if s.Kind != kind || !e.inWindow(s.RecordedAt, windowDays) {
			continue
		}
		if kind == models.HealthSteps && s.Value == 0 {
			continue
		}
		d := DateOf(s.RecordedAt, e.loc)
		buckets[d] = append(buckets[d], s.Value)
	}
	avgs := make(map[Date]float64, len(buckets))
	for d, vals := range buckets {
		avgs[d] = mean(vals)
	}
	return avgs
}

// HealthMoodCorrelation correlates a continuous health metric with daily mood
// on days where both exist. At least three such days are required.
func (e *Engine) HealthMoodCorrelation(kind models.HealthMetric, samples []*models.HealthSample, entries []*models.Entry, moods []*models.Mood, windowDays int) HealthCorrelationResult {
	metric := e.DailyHealthAverages(kind, samples, windowDays)
	daily := e.DailyMoodAverages(entries, moods, windowDays)

	var x, y []float64
	for _, d := range sortedDates(metric) {
		mood, ok := daily[d]
		if !ok {
			continue
		}
		x = append(x, metric[d])
		y = append(y, mood)
	}

	res := HealthCorrelationResult{
		Kind:        kind,
		Coefficient: PearsonCorrelation(x, y),
		SampleSize:  len(x),
		WindowDays:  windowDays,
	}
	if len(x) > 0 {
		res.AverageMetric = ptr(mean(x))
	}
	return res
}

// FindHealthCorrelations correlates every supported metric with mood and
// ranks the results by |r|, then sample size.
func (e *Engine) FindHealthCorrelations(samples []*models.HealthSample, entries []*models.Entry, moods []*models.Mood, windowDays int) []HealthCorrelationResult {
	results := make([]HealthCorrelationResult, 0, len(models.AllHealthMetrics))
	for _, kind := range models.AllHealthMetrics {
		results = append(results, e.HealthMoodCorrelation(kind, samples, entries, moods, windowDays))
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Coefficient.Magnitude() != b.Coefficient.Magnitude() {
			return a.Coefficient.Magnitude() > b.Coefficient.Magnitude()
		}
		return a.SampleSize > b.SampleSize
	})
	return results
}

// healthVocabulary phrases a metric's relationship with mood.
type healthVocabulary struct {
	title    string
	subject  string // "Nights with more sleep"
	positive string
	negative string
}

var healthVocab = map[models.HealthMetric]healthVocabulary{
	models.HealthSleep: {
		title:    "Sleep & Mood",
		subject:  "Nights with more sleep",
		positive: "are followed by better moods",
		negative: "are followed by worse moods",
	},
	models.HealthSteps: {
		title:    "Activity & Mood",
		subject:  "More active days",
		positive: "tend to be better days",
		negative: "tend to be worse days",
	},
	models.HealthRestingHeartRate: {
		title:    "Heart Rate & Mood",
		subject:  "Days with a higher resting heart rate",
		positive: "come with higher moods",
		negative: "come with lower moods",
	},
	models.HealthHRV: {
		title:    "HRV & Mood",
		subject:  "Days with higher heart-rate variability",
		positive: "come with higher moods",
		negative: "come with lower moods",
	},
}

// DescribeHealth renders a sentence for a health correlation.
func (e *Engine) DescribeHealth(res HealthCorrelationResult) string {
	vocab, ok := healthVocab[res.Kind]
	if !ok {
		return "unknown metric"
	}
	r, ok := res.Coefficient.Value()
	if !ok {
		return fmt.Sprintf("%s: insufficient data (%d days)", vocab.title, res.SampleSize)
	}
	phrase := vocab.positive
	if r < 0 {
		phrase = vocab.negative
	}
	return fmt.Sprintf("%s %s (%s, r = %.2f over %d days).", vocab.subject, phrase, e.th.Band(r), r, res.SampleSize)
}

// HealthTitle returns the display title for a metric.
func HealthTitle(kind models.HealthMetric) string {
	if v, ok := healthVocab[kind]; ok {
		return v.title
	}
	return string(kind)
}
