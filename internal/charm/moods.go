// ABOUTME: Mood and health sample CRUD operations for Charm KV storage.
// ABOUTME: Lists are filtered and ordered client-side.
package charm

import (
	"fmt"
	"sort"

	"github.com/harperreed/moodlog/internal/models"
)

// CreateMood stores a new mood check-in. The sentiment is clamped to [1,6].
func (c *Client) CreateMood(m *models.Mood) error {
	stored := *m
	stored.Sentiment = models.ClampSentiment(m.Sentiment)
	data, err := marshalJSON(&stored)
	if err != nil {
		return fmt.Errorf("marshal mood: %w", err)
	}
	return c.set(MoodPrefix+m.ID.String(), data)
}

// GetMood retrieves a mood by ID or ID prefix.
func (c *Client) GetMood(idOrPrefix string) (*models.Mood, error) {
	data, err := c.getByIDPrefix(MoodPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get mood: %w", err)
	}
	m, err := unmarshalJSON[models.Mood](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal mood: %w", err)
	}
	return m, nil
}

// ListMoods retrieves moods sorted by RecordedAt descending.
func (c *Client) ListMoods(limit int) ([]*models.Mood, error) {
	values, err := c.listByPrefix(MoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	moods := decodeAll[models.Mood](values)
	sort.Slice(moods, func(i, j int) bool {
		return moods[i].RecordedAt.After(moods[j].RecordedAt)
	})
	return limitSlice(moods, limit), nil
}

// DeleteMood removes a mood by ID or prefix.
func (c *Client) DeleteMood(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(MoodPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete mood: %w", err)
	}
	return nil
}

// CreateHealthSample stores a new health sample.
func (c *Client) CreateHealthSample(s *models.HealthSample) error {
	data, err := marshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal health sample: %w", err)
	}
	return c.set(HealthPrefix+s.ID.String(), data)
}

// ListHealthSamples retrieves samples with optional filtering by kind.
// Results are sorted by RecordedAt descending (most recent first).
func (c *Client) ListHealthSamples(kind *models.HealthMetric, limit int) ([]*models.HealthSample, error) {
	values, err := c.listByPrefix(HealthPrefix)
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}

	var samples []*models.HealthSample
	for _, s := range decodeAll[models.HealthSample](values) {
		if kind != nil && s.Kind != *kind {
			continue
		}
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].RecordedAt.After(samples[j].RecordedAt)
	})
	return limitSlice(samples, limit), nil
}

// DeleteHealthSample removes a sample by ID or prefix.
func (c *Client) DeleteHealthSample(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(HealthPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete health sample: %w", err)
	}
	return nil
}
