package activity

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/queryview"
)

type mockActivityRepo struct {
	listTeamActivity     func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error)
	createActivityRecord func(ctx context.Context, record entities.ActivityRecord) (entities.ActivityRecord, error)
}

func (m *mockActivityRepo) ListTeamActivity(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
	if m.listTeamActivity != nil {
		return m.listTeamActivity(ctx, teamID, limit)
	}
	return []entities.ActivityWithActor{}, nil
}

func (m *mockActivityRepo) CreateActivityRecord(ctx context.Context, record entities.ActivityRecord) (entities.ActivityRecord, error) {
	if m.createActivityRecord != nil {
		return m.createActivityRecord(ctx, record)
	}
	return record, nil
}

func auditRows(n int, base time.Time) []entities.ActivityWithActor {
	rows := make([]entities.ActivityWithActor, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, entities.ActivityWithActor{
			ActivityRecord: entities.ActivityRecord{
				ID:        fmt.Sprintf("rec-%d", i),
				TeamID:    "team-1",
				Action:    "match_logged",
				Details:   entities.GenericDetails{},
				CreatedAt: base.Add(-time.Duration(i) * time.Minute),
			},
			ActorDisplayName: "Mika",
		})
	}
	return rows
}

func TestUseCase_TeamFeed_OrderingAndCap(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	available := 80
	var gotLimit int
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		gotLimit = limit
		rows := auditRows(available, base)
		if len(rows) > limit {
			rows = rows[:limit]
		}
		return rows, nil
	}}
	uc := New(repo, logger.New())

	entries, err := uc.TeamFeed(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Equal(t, FeedLimit, gotLimit)
	assert.Len(t, entries, FeedLimit)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].CreatedAt.Before(entries[i-1].CreatedAt), "feed must be strictly descending at index %d", i)
	}
}

func TestUseCase_TeamFeed_FewerRowsThanCap(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		return auditRows(3, base), nil
	}}
	uc := New(repo, logger.New())

	entries, err := uc.TeamFeed(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestUseCase_TeamFeed_RequiresTeamID(t *testing.T) {
	called := false
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		called = true
		return nil, nil
	}}
	uc := New(repo, logger.New())

	_, err := uc.TeamFeed(context.Background(), "")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestUseCase_TeamFeed_FetchFailure(t *testing.T) {
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		return nil, errors.New("remote rejected")
	}}
	uc := New(repo, logger.New())

	entries, err := uc.TeamFeed(context.Background(), "team-1")
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestActorLabel_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		rec  entities.ActivityWithActor
		want string
	}{
		{"display name wins", entities.ActivityWithActor{ActorDisplayName: "Mika", ActorEmail: "mika@club.de"}, "Mika"},
		{"email fallback", entities.ActivityWithActor{ActorEmail: "mika@club.de"}, "mika@club.de"},
		{"system fallback", entities.ActivityWithActor{}, "System"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActorLabel(tt.rec))
		})
	}
}

func TestDescribe_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		action  entities.ActivityAction
		details entities.ActivityDetails
		want    string
	}{
		{
			"role changed",
			entities.ActionRoleChanged,
			entities.RoleChangedDetails{MemberEmail: "anna@club.de", OldRole: entities.RoleMember, NewRole: entities.RoleAdmin},
			"Mika changed anna@club.de's role from member to admin",
		},
		{
			"member removed",
			entities.ActionMemberRemoved,
			entities.MemberRemovedDetails{MemberEmail: "anna@club.de", MemberRole: entities.RoleMember},
			"Mika removed anna@club.de (member) from the team",
		},
		{
			"invitation sent",
			entities.ActionInvitationSent,
			entities.InvitationSentDetails{InvitedEmail: "neu@club.de"},
			"Mika sent an invitation to neu@club.de",
		},
		{
			"unknown action falls back",
			"season_archived",
			entities.GenericDetails{"season": "2024"},
			"Mika performed season_archived",
		},
		{
			"nil details fall back",
			"serve_imported",
			nil,
			"Mika performed serve_imported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.action, tt.details, "Mika"))
		})
	}
}

func TestFeedLoader_DisabledWithoutTeam(t *testing.T) {
	loader := NewFeedLoader(New(&mockActivityRepo{}, logger.New()))

	loader.SetTeam(context.Background(), "")
	assert.Equal(t, queryview.Idle, loader.Snapshot().State)
}

func TestFeedLoader_LoadsTeam(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		return auditRows(2, base), nil
	}}
	loader := NewFeedLoader(New(repo, logger.New()))

	loader.SetTeam(context.Background(), "team-1")
	require.Eventually(t, func() bool {
		return loader.Snapshot().State == queryview.Success
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, loader.Snapshot().Data, 2)
}

func TestFeedLoader_StaleFetchDropped(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	slowRelease := make(chan struct{})
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		if teamID == "team-slow" {
			<-slowRelease
			return auditRows(10, base), nil
		}
		return auditRows(1, base), nil
	}}
	loader := NewFeedLoader(New(repo, logger.New()))

	loader.SetTeam(context.Background(), "team-slow")
	loader.SetTeam(context.Background(), "team-fast")

	require.Eventually(t, func() bool {
		return loader.Snapshot().State == queryview.Success
	}, time.Second, 5*time.Millisecond)

	close(slowRelease)
	time.Sleep(20 * time.Millisecond)

	snap := loader.Snapshot()
	assert.Equal(t, queryview.Success, snap.State)
	assert.Len(t, snap.Data, 1, "slow fetch for the previous team must not overwrite the view")
}

func TestFeedLoader_FailureSurfacesAsNoData(t *testing.T) {
	repo := &mockActivityRepo{listTeamActivity: func(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
		return nil, errors.New("remote rejected")
	}}
	loader := NewFeedLoader(New(repo, logger.New()))

	loader.SetTeam(context.Background(), "team-1")
	require.Eventually(t, func() bool {
		return loader.Snapshot().State == queryview.Error
	}, time.Second, 5*time.Millisecond)

	snap := loader.Snapshot()
	assert.Nil(t, snap.Data)
	assert.Error(t, snap.Err)
}
