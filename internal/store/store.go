package store

import (
	"context"

	"court-booking/models"
)

// Store is durable keyed storage for booking records. It carries no
// business logic: point lookups, per-court and per-user scans, and one
// derived lookup for the active (user, court) pair.
//
// PutAll writes all records atomically; readers never observe a subset.
// The slot swap depends on that, its two records would otherwise show a
// duplicate confirmed slot index between writes.
//
// ActiveByUserAndCourt returns (nil, nil) when the pair has no active
// booking; Get returns a status.NotFoundError for an unknown id.
type Store interface {
	Put(ctx context.Context, b *models.Booking) error
	PutAll(ctx context.Context, bookings ...*models.Booking) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	ByCourt(ctx context.Context, courtID string) ([]*models.Booking, error)
	ByUser(ctx context.Context, userID string) ([]*models.Booking, error)
	ActiveByUserAndCourt(ctx context.Context, userID, courtID string) (*models.Booking, error)
}
