package repository

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type UserRepository interface {
	ListUsers(ctx context.Context, search string) ([]entities.UserProfile, error)
	GetUser(ctx context.Context, userID string) (entities.UserProfile, error)
	SetSuperAdmin(ctx context.Context, userID string, isSuperAdmin bool) (entities.UserProfile, error)
	CountTeamMemberships(ctx context.Context, userIDs []string) (map[string]entities.TeamMembershipCounts, error)
}
