// ABOUTME: Temporal aggregator: buckets sentiment by day, weekday and hour.
// ABOUTME: Also builds the gap-filled trend series used for charts.
package analysis

import (
	"sort"
	"time"

	"github.com/harperreed/moodlog/internal/models"
)

type sentimentSample struct {
	at        time.Time
	sentiment float64
}

// samples collects clamped sentiment from both record kinds inside the window.
func (e *Engine) samples(entries []*models.Entry, moods []*models.Mood, windowDays int) []sentimentSample {
	out := make([]sentimentSample, 0, len(entries)+len(moods))
	for _, en := range entries {
		if e.inWindow(en.LoggedAt, windowDays) {
			out = append(out, sentimentSample{en.LoggedAt, float64(models.ClampSentiment(en.Sentiment))})
		}
	}
	for _, m := range moods {
		if e.inWindow(m.RecordedAt, windowDays) {
			out = append(out, sentimentSample{m.RecordedAt, float64(models.ClampSentiment(m.Sentiment))})
		}
	}
	return out
}

func bucketMeans[K comparable](samples []sentimentSample, key func(time.Time) K) map[K]float64 {
	buckets := make(map[K][]float64)
	for _, s := range samples {
		k := key(s.at)
		buckets[k] = append(buckets[k], s.sentiment)
	}
	means := make(map[K]float64, len(buckets))
	for k, vals := range buckets {
		means[k] = mean(vals)
	}
	return means
}

// DailyMoodAverages returns the mean sentiment for each calendar day in the
// window that has at least one entry or mood. Empty days are absent.
func (e *Engine) DailyMoodAverages(entries []*models.Entry, moods []*models.Mood, windowDays int) map[Date]float64 {
	return bucketMeans(e.samples(entries, moods, windowDays), func(t time.Time) Date {
		return DateOf(t, e.loc)
	})
}

// SentimentByWeekday returns the mean sentiment per weekday in the window.
// Use ISOWeekday for 1-7 numbering.
func (e *Engine) SentimentByWeekday(entries []*models.Entry, moods []*models.Mood, windowDays int) map[time.Weekday]float64 {
	return bucketMeans(e.samples(entries, moods, windowDays), func(t time.Time) time.Weekday {
		return t.In(e.loc).Weekday()
	})
}

// SentimentByHourOfDay returns the mean sentiment per hour (0-23) in the window.
func (e *Engine) SentimentByHourOfDay(entries []*models.Entry, moods []*models.Mood, windowDays int) map[int]float64 {
	return bucketMeans(e.samples(entries, moods, windowDays), func(t time.Time) int {
		return t.In(e.loc).Hour()
	})
}

// TrendPoint is one day of the gap-filled trend. Average is nil on days
// without data.
type TrendPoint struct {
	Date    Date     `json:"date"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

// Trend returns exactly windowDays+1 points, oldest first, covering every
// day from today-windowDays through today.
func (e *Engine) Trend(entries []*models.Entry, moods []*models.Mood, windowDays int) []TrendPoint {
	windowDays = max(windowDays, 0)
	samples := e.samples(entries, moods, windowDays)
	avgs := bucketMeans(samples, func(t time.Time) Date { return DateOf(t, e.loc) })
	counts := make(map[Date]int)
	for _, s := range samples {
		counts[DateOf(s.at, e.loc)]++
	}

	first := e.firstDay(windowDays)
	points := make([]TrendPoint, 0, windowDays+1)
	for i := 0; i <= windowDays; i++ {
		d := first.AddDays(i)
		p := TrendPoint{Date: d, Count: counts[d]}
		if avg, ok := avgs[d]; ok {
			p.Average = ptr(avg)
		}
		points = append(points, p)
	}
	return points
}

// sortedDates returns the keys of m in chronological order.
func sortedDates[V any](m map[Date]V) []Date {
	days := make([]Date, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
