package repository

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, name string, createdBy string) (entities.Team, error)
	GetTeam(ctx context.Context, teamID string) (entities.Team, error)
	ListTeams(ctx context.Context) ([]entities.TeamWithCounts, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error)
	GetMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error)
	SetMemberRole(ctx context.Context, teamID string, userID string, role entities.Role) (entities.TeamMember, error)
	RemoveMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error)
	CreateInvitation(ctx context.Context, inv entities.Invitation) (entities.Invitation, error)
	ListInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error)
}
