// Package subscriptions defines the tracked-subscription store consumed
// by the import workflow and the matching logic that reconciles
// extracted candidates against it.
package subscriptions

import (
	"context"

	"github.com/shopspring/decimal"
)

// Subscription is a tracked recurring charge as the store returns it.
type Subscription struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Interval string          `json:"interval"`
	Active   bool            `json:"active"`
}

// NewSubscription is the body submitted on creation. Category is always
// the configured placeholder; the categorization subsystem re-assigns it.
type NewSubscription struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Interval string          `json:"interval"`
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Active *bool `json:"active,omitempty"`
}

// Store is the persistence collaborator. All operations honor context
// cancellation so an abandoned import aborts its in-flight requests.
type Store interface {
	List(ctx context.Context) ([]Subscription, error)
	Create(ctx context.Context, sub NewSubscription) (Subscription, error)
	Update(ctx context.Context, id string, patch Patch) error
}
