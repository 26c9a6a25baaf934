package user

import (
	"context"
	"fmt"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/repository"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/notify"
)

type useCase struct {
	userRepo repository.UserRepository
	notifier notify.Notifier
	logger   logger.Logger
}

func New(userRepo repository.UserRepository, notifier notify.Notifier, log logger.Logger) UserUseCase {
	return &useCase{
		userRepo: userRepo,
		notifier: notifier,
		logger:   log,
	}
}

// ListUsers returns every profile matching the search term, each annotated
// with its membership counts. The counts come from one grouped query over
// all listed users; a user absent from the grouped result, or a failed
// grouped query, degrades to zeroed counts instead of failing the list.
func (u *useCase) ListUsers(ctx context.Context, search string) ([]entities.UserWithTeams, error) {
	users, err := u.userRepo.ListUsers(ctx, search)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(users))
	for i, usr := range users {
		ids[i] = usr.ID
	}

	counts, err := u.userRepo.CountTeamMemberships(ctx, ids)
	if err != nil {
		u.logger.Error("failed to count team memberships", "error", err)
		counts = map[string]entities.TeamMembershipCounts{}
	}

	result := make([]entities.UserWithTeams, 0, len(users))
	for _, usr := range users {
		c := counts[usr.ID]
		result = append(result, entities.UserWithTeams{
			UserProfile:    usr,
			TeamCount:      c.TeamCount,
			AdminTeamCount: c.AdminTeamCount,
		})
	}
	return result, nil
}

func (u *useCase) ToggleSuperAdmin(ctx context.Context, userID string) (entities.UserProfile, error) {
	if userID == "" {
		return entities.UserProfile{}, fmt.Errorf("user id required")
	}

	current, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return entities.UserProfile{}, err
	}

	updated, err := u.userRepo.SetSuperAdmin(ctx, userID, !current.IsSuperAdmin)
	if err != nil {
		u.notifier.Failure("super admin toggle failed", "user_id", userID)
		return entities.UserProfile{}, err
	}
	u.notifier.Success("super admin toggled", "user_id", userID, "is_super_admin", updated.IsSuperAdmin)
	return updated, nil
}
