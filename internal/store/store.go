// Package store persists portal sessions and a snapshot of the
// campaign list in SQLite. The snapshot lets the portal render a list
// immediately on restart while the backend refresh runs.
package store

import (
	"context"

	"github.com/me/matchably/pkg/model"
)

// Store is the persistence interface used by the portal.
type Store interface {
	// Sessions.
	CreateSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteSessionsByEmail(ctx context.Context, email string) (int64, error)

	// Campaign snapshot.
	UpsertCampaigns(ctx context.Context, campaigns []model.CampaignSummary) error
	ListCampaigns(ctx context.Context) ([]model.CampaignSummary, error)
	GetCampaign(ctx context.Context, id string) (*model.CampaignSummary, error)
	DeleteCampaign(ctx context.Context, id string) error

	// Maintenance.
	Migrate(ctx context.Context) error
	Close() error
}
