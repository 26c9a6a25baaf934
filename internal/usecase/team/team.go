package team

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type TeamUseCase interface {
	CreateTeam(ctx context.Context, name string, createdBy string) (entities.Team, error)
	ListTeams(ctx context.Context) ([]entities.TeamWithCounts, error)
	GetOverview(ctx context.Context, teamID string) (Overview, error)
	ListMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error)
	SetMemberRole(ctx context.Context, in SetMemberRoleInput) (entities.TeamMember, error)
	RemoveMember(ctx context.Context, in RemoveMemberInput) (entities.TeamMember, error)
	CreateInvitation(ctx context.Context, in CreateInvitationInput) (entities.Invitation, error)
	ListInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error)
}

type Overview struct {
	Team        entities.Team
	Members     []entities.TeamMember
	Invitations []entities.Invitation
}

type SetMemberRoleInput struct {
	TeamID  string
	UserID  string
	Role    entities.Role
	ActorID string
}

type RemoveMemberInput struct {
	TeamID  string
	UserID  string
	ActorID string
}

type CreateInvitationInput struct {
	TeamID  string
	Email   string
	Role    entities.Role
	ActorID string
}
