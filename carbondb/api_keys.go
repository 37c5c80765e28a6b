package carbondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SetAPIKey upserts a user's API key, stored as a bcrypt hash, with optional
// app-name metadata.
func (c *Client) SetAPIKey(ctx context.Context, userID, key, appName string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing api key: %w", err)
	}

	_, err = c.DB.ExecContext(ctx, `
		INSERT INTO api_keys (user_id, api_key_hash, app_name) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET api_key_hash = excluded.api_key_hash, app_name = excluded.app_name;
	`, userID, string(hash), appName)
	if err != nil {
		return fmt.Errorf("upserting api key: %w", err)
	}
	return nil
}

// CheckAPIKey reports whether key matches the stored hash for userID.
// An unknown user is simply not a match.
func (c *Client) CheckAPIKey(ctx context.Context, userID, key string) (bool, error) {
	row := c.DB.QueryRowContext(ctx, `SELECT api_key_hash FROM api_keys WHERE user_id = ?;`, userID)

	var storedHash string
	err := row.Scan(&storedHash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying api key: %w", err)
	}

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(key)) == nil, nil
}
