package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

type mockStatsRepo struct {
	countUsers             func(ctx context.Context) (int, error)
	countTeams             func(ctx context.Context) (int, error)
	countSuperAdmins       func(ctx context.Context) (int, error)
	countServes            func(ctx context.Context) (int, error)
	countServesByTeam      func(ctx context.Context, teamID string) (int, error)
	countUsersCreatedSince func(ctx context.Context, since time.Time) (int, error)
	countTeamActivitySince func(ctx context.Context, teamID string, since time.Time) (int, error)
}

func (m *mockStatsRepo) CountUsers(ctx context.Context) (int, error) {
	if m.countUsers != nil {
		return m.countUsers(ctx)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountTeams(ctx context.Context) (int, error) {
	if m.countTeams != nil {
		return m.countTeams(ctx)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountSuperAdmins(ctx context.Context) (int, error) {
	if m.countSuperAdmins != nil {
		return m.countSuperAdmins(ctx)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountServes(ctx context.Context) (int, error) {
	if m.countServes != nil {
		return m.countServes(ctx)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountServesByTeam(ctx context.Context, teamID string) (int, error) {
	if m.countServesByTeam != nil {
		return m.countServesByTeam(ctx, teamID)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	if m.countUsersCreatedSince != nil {
		return m.countUsersCreatedSince(ctx, since)
	}
	return 0, nil
}

func (m *mockStatsRepo) CountTeamActivitySince(ctx context.Context, teamID string, since time.Time) (int, error) {
	if m.countTeamActivitySince != nil {
		return m.countTeamActivitySince(ctx, teamID, since)
	}
	return 0, nil
}

type mockTeamRepo struct {
	listTeamMembers func(ctx context.Context, teamID string) ([]entities.TeamMember, error)
}

func (m *mockTeamRepo) CreateTeam(ctx context.Context, name string, createdBy string) (entities.Team, error) {
	return entities.Team{}, nil
}

func (m *mockTeamRepo) GetTeam(ctx context.Context, teamID string) (entities.Team, error) {
	return entities.Team{}, nil
}

func (m *mockTeamRepo) ListTeams(ctx context.Context) ([]entities.TeamWithCounts, error) {
	return nil, nil
}

func (m *mockTeamRepo) ListTeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error) {
	if m.listTeamMembers != nil {
		return m.listTeamMembers(ctx, teamID)
	}
	return []entities.TeamMember{}, nil
}

func (m *mockTeamRepo) GetMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error) {
	return entities.TeamMember{}, nil
}

func (m *mockTeamRepo) SetMemberRole(ctx context.Context, teamID string, userID string, role entities.Role) (entities.TeamMember, error) {
	return entities.TeamMember{}, nil
}

func (m *mockTeamRepo) RemoveMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error) {
	return entities.TeamMember{}, nil
}

func (m *mockTeamRepo) CreateInvitation(ctx context.Context, inv entities.Invitation) (entities.Invitation, error) {
	return inv, nil
}

func (m *mockTeamRepo) ListInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error) {
	return nil, nil
}

func member(role entities.Role) entities.TeamMember {
	return entities.TeamMember{TeamID: "team-1", Role: role}
}

func TestAggregate_RoleCountsSumToTotal(t *testing.T) {
	members := []entities.TeamMember{
		member(entities.RoleAdmin),
		member(entities.RoleAdmin),
		member(entities.RoleMember),
		member(entities.RoleMember),
		member(entities.RoleMember),
	}
	stats := Aggregate(members)

	assert.Equal(t, 5, stats.TotalMembers)
	assert.Equal(t, 2, stats.AdminCount)
	assert.Equal(t, 3, stats.MemberCount)
	assert.Equal(t, 0, stats.OtherRoleCount)
	assert.Equal(t, stats.TotalMembers, stats.AdminCount+stats.MemberCount+stats.OtherRoleCount)
}

func TestAggregate_UnknownRolesSurfaced(t *testing.T) {
	members := []entities.TeamMember{
		member(entities.RoleAdmin),
		member("coach"),
		member(entities.RoleMember),
	}
	stats := Aggregate(members)

	assert.Equal(t, 1, stats.OtherRoleCount)
	assert.Equal(t, stats.TotalMembers, stats.AdminCount+stats.MemberCount+stats.OtherRoleCount)
}

func TestUseCase_PlatformStats(t *testing.T) {
	var gotSince time.Time
	repo := &mockStatsRepo{
		countUsers:       func(ctx context.Context) (int, error) { return 42, nil },
		countTeams:       func(ctx context.Context) (int, error) { return 7, nil },
		countSuperAdmins: func(ctx context.Context) (int, error) { return 2, nil },
		countServes:      func(ctx context.Context) (int, error) { return 1900, nil },
		countUsersCreatedSince: func(ctx context.Context, since time.Time) (int, error) {
			gotSince = since
			return 5, nil
		},
	}
	uc := New(repo, &mockTeamRepo{}, logger.New())

	stats, err := uc.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.PlatformStats{TotalUsers: 42, TotalTeams: 7, TotalSuperAdmins: 2, TotalServes: 1900, RecentSignups: 5}, stats)
	assert.WithinDuration(t, time.Now().Add(-RecentWindow), gotSince, time.Minute)
}

func TestUseCase_PlatformStats_FetchFailure(t *testing.T) {
	repo := &mockStatsRepo{
		countTeams: func(ctx context.Context) (int, error) { return 0, errors.New("remote rejected") },
	}
	uc := New(repo, &mockTeamRepo{}, logger.New())

	_, err := uc.PlatformStats(context.Background())
	assert.Error(t, err)
}

func TestUseCase_TeamStats(t *testing.T) {
	var gotSince time.Time
	teamRepo := &mockTeamRepo{listTeamMembers: func(ctx context.Context, teamID string) ([]entities.TeamMember, error) {
		return []entities.TeamMember{member(entities.RoleAdmin), member(entities.RoleMember)}, nil
	}}
	statsRepo := &mockStatsRepo{
		countTeamActivitySince: func(ctx context.Context, teamID string, since time.Time) (int, error) {
			gotSince = since
			return 12, nil
		},
		countServesByTeam: func(ctx context.Context, teamID string) (int, error) { return 310, nil },
	}
	uc := New(statsRepo, teamRepo, logger.New())

	stats, err := uc.TeamStats(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 1, stats.AdminCount)
	assert.Equal(t, 1, stats.MemberCount)
	assert.Equal(t, 12, stats.RecentActivityCount)
	assert.Equal(t, 310, stats.ServeCount)
	assert.WithinDuration(t, time.Now().Add(-RecentWindow), gotSince, time.Minute)
}

func TestUseCase_TeamStats_RecentCountExceedsFeedPage(t *testing.T) {
	// The recent-activity total must cover every audit row in the window,
	// not just the page a feed read would return.
	rowsInWindow := 60
	statsRepo := &mockStatsRepo{
		countTeamActivitySince: func(ctx context.Context, teamID string, since time.Time) (int, error) {
			return rowsInWindow, nil
		},
	}
	uc := New(statsRepo, &mockTeamRepo{}, logger.New())

	stats, err := uc.TeamStats(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Equal(t, rowsInWindow, stats.RecentActivityCount)
}

func TestUseCase_TeamStats_RecentCountFailure(t *testing.T) {
	statsRepo := &mockStatsRepo{
		countTeamActivitySince: func(ctx context.Context, teamID string, since time.Time) (int, error) {
			return 0, errors.New("remote rejected")
		},
	}
	uc := New(statsRepo, &mockTeamRepo{}, logger.New())

	_, err := uc.TeamStats(context.Background(), "team-1")
	assert.Error(t, err)
}

func TestUseCase_TeamStats_ServeCountDegrades(t *testing.T) {
	statsRepo := &mockStatsRepo{countServesByTeam: func(ctx context.Context, teamID string) (int, error) {
		return 0, errors.New("remote rejected")
	}}
	uc := New(statsRepo, &mockTeamRepo{}, logger.New())

	stats, err := uc.TeamStats(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ServeCount)
}

func TestUseCase_TeamStats_RequiresTeamID(t *testing.T) {
	uc := New(&mockStatsRepo{}, &mockTeamRepo{}, logger.New())

	_, err := uc.TeamStats(context.Background(), "")
	assert.Error(t, err)
}
