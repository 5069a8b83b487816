package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subtrackr/subscan/subscriptions"
)

// List returns every tracked subscription in insertion order.
func (db *DB) List(ctx context.Context) ([]subscriptions.Subscription, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, price, category, billing_interval, active
		FROM subscriptions
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscriptions.Subscription
	for rows.Next() {
		var s subscriptions.Subscription
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Category, &s.Interval, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Create inserts a new subscription record and returns it with its
// generated identifier.
func (db *DB) Create(ctx context.Context, sub subscriptions.NewSubscription) (subscriptions.Subscription, error) {
	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO subscriptions (id, name, price, category, billing_interval, active)
		VALUES ($1, $2, $3, $4, $5, true)
	`, id, sub.Name, sub.Price, sub.Category, sub.Interval)
	if err != nil {
		return subscriptions.Subscription{}, fmt.Errorf("failed to create subscription: %w", err)
	}

	return subscriptions.Subscription{
		ID:       id,
		Name:     sub.Name,
		Price:    sub.Price,
		Category: sub.Category,
		Interval: sub.Interval,
		Active:   true,
	}, nil
}

// Update applies a partial update to a subscription record.
func (db *DB) Update(ctx context.Context, id string, patch subscriptions.Patch) error {
	if patch.Active == nil {
		return nil
	}
	tag, err := db.Pool.Exec(ctx, `
		UPDATE subscriptions SET active = $2, updated_at = NOW() WHERE id = $1
	`, id, *patch.Active)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", id)
	}
	return nil
}
