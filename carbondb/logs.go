package carbondb

import (
	"context"
	"fmt"

	"charizard.ecotrip.dev/internal/models"
)

// AppendLog records one completed request.
func (c *Client) AppendLog(ctx context.Context, rec models.APILogRecord) error {
	_, err := c.DB.ExecContext(ctx, `
		INSERT INTO api_logs (ts, method, path, status, duration_ms, client_ip, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`, rec.TS, rec.Method, rec.Path, rec.Status, rec.DurationMS, rec.ClientIP, rec.UserID)
	if err != nil {
		return fmt.Errorf("inserting api log: %w", err)
	}
	return nil
}

// GetLogs returns up to limit log records in timestamp order.
func (c *Client) GetLogs(ctx context.Context, limit int) ([]models.APILogRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := c.DB.QueryContext(ctx, `
		SELECT ts, method, path, status, duration_ms, client_ip, user_id
		FROM api_logs ORDER BY ts LIMIT ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying api logs: %w", err)
	}
	defer rows.Close()

	var logs []models.APILogRecord
	for rows.Next() {
		var rec models.APILogRecord
		if err := rows.Scan(&rec.TS, &rec.Method, &rec.Path, &rec.Status, &rec.DurationMS, &rec.ClientIP, &rec.UserID); err != nil {
			return nil, fmt.Errorf("scanning api log row: %w", err)
		}
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}

// ClearLogs deletes all request log records.
func (c *Client) ClearLogs(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, `DELETE FROM api_logs;`); err != nil {
		return fmt.Errorf("clearing api logs: %w", err)
	}
	return nil
}
