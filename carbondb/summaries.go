package carbondb

import (
	"context"
	"fmt"
	"time"

	"charizard.ecotrip.dev/internal/models"
	"charizard.ecotrip.dev/internal/storage"
)

// Summarize returns the user's footprint summary, recomputing from the full
// event history on a cache miss. The generation captured before the read
// makes a concurrent AddEvent drop the stale result instead of caching it.
func (c *Client) Summarize(ctx context.Context, userID string) (models.FootprintSummary, error) {
	cached, generation, ok := c.cache.Get(userID)
	if ok {
		return cached, nil
	}

	events, err := c.GetEvents(ctx, userID)
	if err != nil {
		return models.FootprintSummary{}, err
	}

	summary, err := storage.SummarizeEvents(ctx, c.calc, events, time.Now().Unix())
	if err != nil {
		return models.FootprintSummary{}, err
	}

	c.cache.Put(userID, summary, generation)
	return summary, nil
}

// GlobalAverageWeekly computes the mean weekly footprint across users with
// at least one event in the trailing 7 days. Always recomputed, never
// cached, and only the scalar leaves this method.
func (c *Client) GlobalAverageWeekly(ctx context.Context) (float64, error) {
	weekStart := time.Now().Unix() - storage.WeekWindowSeconds

	rows, err := c.DB.QueryContext(ctx, `
		SELECT user_id, mode, fuel_type, vehicle_size, occupancy, distance_km, ts
		FROM events WHERE ts >= ?;
	`, weekStart)
	if err != nil {
		return 0, fmt.Errorf("querying weekly events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return 0, err
	}

	userWeek := make(map[string]float64)
	for _, ev := range events {
		kg, err := c.calc.CalculateEvent(ctx, ev)
		if err != nil {
			return 0, err
		}
		userWeek[ev.UserID] += kg
	}

	if len(userWeek) == 0 {
		return 0, nil
	}

	var total float64
	for _, weekKg := range userWeek {
		total += weekKg
	}
	return total / float64(len(userWeek)), nil
}
