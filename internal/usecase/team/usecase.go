package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/repository"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/notify"
)

type useCase struct {
	teamRepo     repository.TeamRepository
	activityRepo repository.ActivityRepository
	notifier     notify.Notifier
	logger       logger.Logger
}

func New(teamRepo repository.TeamRepository, activityRepo repository.ActivityRepository, notifier notify.Notifier, log logger.Logger) TeamUseCase {
	return &useCase{
		teamRepo:     teamRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
		logger:       log,
	}
}

func (u *useCase) CreateTeam(ctx context.Context, name string, createdBy string) (entities.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Team{}, fmt.Errorf("team name required")
	}
	if createdBy == "" {
		return entities.Team{}, fmt.Errorf("creator id required")
	}

	u.logger.Info("creating team", "name", name)
	team, err := u.teamRepo.CreateTeam(ctx, name, createdBy)
	if err != nil {
		u.notifier.Failure("team creation failed", "name", name)
		return entities.Team{}, err
	}
	u.notifier.Success("team created", "name", team.Name)
	return team, nil
}

func (u *useCase) ListTeams(ctx context.Context) ([]entities.TeamWithCounts, error) {
	return u.teamRepo.ListTeams(ctx)
}

func (u *useCase) GetOverview(ctx context.Context, teamID string) (Overview, error) {
	if teamID == "" {
		return Overview{}, fmt.Errorf("team id required")
	}

	team, err := u.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return Overview{}, err
	}
	members, err := u.teamRepo.ListTeamMembers(ctx, teamID)
	if err != nil {
		return Overview{}, err
	}
	invitations, err := u.teamRepo.ListInvitations(ctx, teamID)
	if err != nil {
		return Overview{}, err
	}

	return Overview{Team: team, Members: members, Invitations: invitations}, nil
}

func (u *useCase) ListMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team id required")
	}
	return u.teamRepo.ListTeamMembers(ctx, teamID)
}

func (u *useCase) SetMemberRole(ctx context.Context, in SetMemberRoleInput) (entities.TeamMember, error) {
	if in.TeamID == "" || in.UserID == "" {
		return entities.TeamMember{}, fmt.Errorf("team id and user id required")
	}
	if !in.Role.Valid() {
		return entities.TeamMember{}, entities.ErrInvalidRole
	}

	current, err := u.teamRepo.GetMember(ctx, in.TeamID, in.UserID)
	if err != nil {
		return entities.TeamMember{}, err
	}

	updated, err := u.teamRepo.SetMemberRole(ctx, in.TeamID, in.UserID, in.Role)
	if err != nil {
		u.notifier.Failure("role change failed", "team_id", in.TeamID, "user_id", in.UserID)
		return entities.TeamMember{}, err
	}

	u.recordActivity(ctx, in.TeamID, in.ActorID, entities.ActionRoleChanged, entities.RoleChangedDetails{
		MemberEmail: current.Email,
		OldRole:     current.Role,
		NewRole:     in.Role,
	})
	u.notifier.Success("member role changed", "team_id", in.TeamID, "user_id", in.UserID, "role", in.Role)
	return updated, nil
}

func (u *useCase) RemoveMember(ctx context.Context, in RemoveMemberInput) (entities.TeamMember, error) {
	if in.TeamID == "" || in.UserID == "" {
		return entities.TeamMember{}, fmt.Errorf("team id and user id required")
	}

	removed, err := u.teamRepo.RemoveMember(ctx, in.TeamID, in.UserID)
	if err != nil {
		u.notifier.Failure("member removal failed", "team_id", in.TeamID, "user_id", in.UserID)
		return entities.TeamMember{}, err
	}

	u.recordActivity(ctx, in.TeamID, in.ActorID, entities.ActionMemberRemoved, entities.MemberRemovedDetails{
		MemberEmail: removed.Email,
		MemberRole:  removed.Role,
	})
	u.notifier.Success("member removed", "team_id", in.TeamID, "user_id", in.UserID)
	return removed, nil
}

func (u *useCase) CreateInvitation(ctx context.Context, in CreateInvitationInput) (entities.Invitation, error) {
	email := strings.TrimSpace(in.Email)
	if in.TeamID == "" {
		return entities.Invitation{}, fmt.Errorf("team id required")
	}
	if email == "" {
		return entities.Invitation{}, fmt.Errorf("email required")
	}
	// invited_by is a non-null column; reject before postgres does.
	if in.ActorID == "" {
		return entities.Invitation{}, fmt.Errorf("actor id required")
	}
	role := in.Role
	if role == "" {
		role = entities.RoleMember
	}
	if !role.Valid() {
		return entities.Invitation{}, entities.ErrInvalidRole
	}

	inv, err := u.teamRepo.CreateInvitation(ctx, entities.Invitation{
		ID:        uuid.NewString(),
		TeamID:    in.TeamID,
		Email:     email,
		Role:      role,
		Status:    entities.InvitationPending,
		Token:     uuid.NewString(),
		InvitedBy: in.ActorID,
	})
	if err != nil {
		u.notifier.Failure("invitation failed", "team_id", in.TeamID, "email", email)
		return entities.Invitation{}, err
	}

	u.recordActivity(ctx, in.TeamID, in.ActorID, entities.ActionInvitationSent, entities.InvitationSentDetails{
		InvitedEmail: inv.Email,
	})
	u.notifier.Success("invitation sent", "team_id", in.TeamID, "email", inv.Email)
	return inv, nil
}

func (u *useCase) ListInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team id required")
	}
	return u.teamRepo.ListInvitations(ctx, teamID)
}

// recordActivity appends an audit entry for a completed mutation. A failed
// append is logged but never fails the mutation that already happened.
func (u *useCase) recordActivity(ctx context.Context, teamID string, actorID string, action entities.ActivityAction, details entities.ActivityDetails) {
	record := entities.ActivityRecord{
		TeamID:  teamID,
		Action:  action,
		Details: details,
	}
	if actorID != "" {
		record.ActorID = &actorID
	}
	if _, err := u.activityRepo.CreateActivityRecord(ctx, record); err != nil {
		u.logger.Error("failed to record activity", "team_id", teamID, "action", action, "error", err)
	}
}
