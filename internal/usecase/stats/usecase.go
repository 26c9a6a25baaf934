package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/repository"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

// RecentWindow is the trailing window for "recent" counts, evaluated against
// the clock at call time.
const RecentWindow = 7 * 24 * time.Hour

type useCase struct {
	statsRepo repository.StatsRepository
	teamRepo  repository.TeamRepository
	now       func() time.Time
	logger    logger.Logger
}

func New(statsRepo repository.StatsRepository, teamRepo repository.TeamRepository, log logger.Logger) StatsUseCase {
	return &useCase{
		statsRepo: statsRepo,
		teamRepo:  teamRepo,
		now:       time.Now,
		logger:    log,
	}
}

func (u *useCase) PlatformStats(ctx context.Context) (entities.PlatformStats, error) {
	var stats entities.PlatformStats
	var err error

	if stats.TotalUsers, err = u.statsRepo.CountUsers(ctx); err != nil {
		return entities.PlatformStats{}, err
	}
	if stats.TotalTeams, err = u.statsRepo.CountTeams(ctx); err != nil {
		return entities.PlatformStats{}, err
	}
	if stats.TotalSuperAdmins, err = u.statsRepo.CountSuperAdmins(ctx); err != nil {
		return entities.PlatformStats{}, err
	}
	if stats.TotalServes, err = u.statsRepo.CountServes(ctx); err != nil {
		return entities.PlatformStats{}, err
	}
	if stats.RecentSignups, err = u.statsRepo.CountUsersCreatedSince(ctx, u.now().Add(-RecentWindow)); err != nil {
		return entities.PlatformStats{}, err
	}
	return stats, nil
}

func (u *useCase) TeamStats(ctx context.Context, teamID string) (entities.TeamStats, error) {
	if teamID == "" {
		return entities.TeamStats{}, fmt.Errorf("team id required")
	}

	members, err := u.teamRepo.ListTeamMembers(ctx, teamID)
	if err != nil {
		return entities.TeamStats{}, err
	}
	stats := Aggregate(members)

	// The recent-activity total is a dedicated count query; reducing over the
	// capped feed read would undercount teams with more than a feed's worth
	// of audit rows inside the window.
	recent, err := u.statsRepo.CountTeamActivitySince(ctx, teamID, u.now().Add(-RecentWindow))
	if err != nil {
		return entities.TeamStats{}, err
	}
	stats.RecentActivityCount = recent

	// Serve totals degrade to zero when the lookup fails; the rest of the
	// dashboard still renders.
	serves, err := u.statsRepo.CountServesByTeam(ctx, teamID)
	if err != nil {
		u.logger.Error("failed to count team serves", "team_id", teamID, "error", err)
		serves = 0
	}
	stats.ServeCount = serves
	return stats, nil
}

// Aggregate reduces raw membership rows to role buckets. Roles outside the
// known set are surfaced in OtherRoleCount rather than dropped, so
// AdminCount+MemberCount+OtherRoleCount always equals TotalMembers.
func Aggregate(members []entities.TeamMember) entities.TeamStats {
	stats := entities.TeamStats{TotalMembers: len(members)}
	for _, m := range members {
		switch m.Role {
		case entities.RoleAdmin:
			stats.AdminCount++
		case entities.RoleMember:
			stats.MemberCount++
		default:
			stats.OtherRoleCount++
		}
	}
	return stats
}
