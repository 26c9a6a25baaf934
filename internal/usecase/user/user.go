package user

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type UserUseCase interface {
	ListUsers(ctx context.Context, search string) ([]entities.UserWithTeams, error)
	ToggleSuperAdmin(ctx context.Context, userID string) (entities.UserProfile, error)
}
