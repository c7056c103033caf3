package handlers

import (
	"context"

	"court-booking/internal/status"
	"court-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// CourtRecordResolver reads court mode and capacity from the courts
// collection.
type CourtRecordResolver struct {
	app core.App
}

func NewCourtRecordResolver(app core.App) *CourtRecordResolver {
	return &CourtRecordResolver{app: app}
}

func (r *CourtRecordResolver) GetCourt(ctx context.Context, courtID string) (*models.Court, error) {
	record, err := r.app.FindRecordById("courts", courtID)
	if err != nil {
		return nil, status.NewNotFound("court", courtID)
	}
	return &models.Court{
		ID:       record.Id,
		Name:     record.GetString("name"),
		Mode:     models.CourtMode(record.GetString("mode")),
		Capacity: record.GetInt("capacity"),
	}, nil
}

// UserRecordDirectory resolves roster display names from the users
// collection.
type UserRecordDirectory struct {
	app core.App
}

func NewUserRecordDirectory(app core.App) *UserRecordDirectory {
	return &UserRecordDirectory{app: app}
}

func (d *UserRecordDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	var rows []dbx.NullStringMap
	err := d.app.DB().
		Select("name").
		From("users").
		Where(dbx.HashExp{"id": userID}).
		Limit(1).
		All(&rows)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0]["name"].String, nil
}
