package repository

import (
	"context"
	"time"
)

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountTeams(ctx context.Context) (int, error)
	CountSuperAdmins(ctx context.Context) (int, error)
	CountServes(ctx context.Context) (int, error)
	CountServesByTeam(ctx context.Context, teamID string) (int, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountTeamActivitySince(ctx context.Context, teamID string, since time.Time) (int, error)
}
