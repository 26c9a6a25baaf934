package activity

import (
	"context"
	"fmt"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/repository"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

// FeedLimit caps the team feed to the newest entries; older history is not
// reachable through this interface.
const FeedLimit = 50

type useCase struct {
	activityRepo repository.ActivityRepository
	logger       logger.Logger
}

func New(activityRepo repository.ActivityRepository, log logger.Logger) ActivityUseCase {
	return &useCase{
		activityRepo: activityRepo,
		logger:       log,
	}
}

func (u *useCase) TeamFeed(ctx context.Context, teamID string) ([]entities.ActivityEntry, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team id required")
	}
	records, err := u.activityRepo.ListTeamActivity(ctx, teamID, FeedLimit)
	if err != nil {
		u.logger.Error("failed to load team activity", "team_id", teamID, "error", err)
		return nil, err
	}

	entries := make([]entities.ActivityEntry, 0, len(records))
	for _, rec := range records {
		label := ActorLabel(rec)
		entries = append(entries, entities.ActivityEntry{
			ActivityRecord: rec.ActivityRecord,
			ActorLabel:     label,
			Description:    Describe(rec.Action, rec.Details, label),
		})
	}
	return entries, nil
}

// ActorLabel resolves the display identity of a record's actor: display name,
// then email, then the literal "System".
func ActorLabel(rec entities.ActivityWithActor) string {
	if rec.ActorDisplayName != "" {
		return rec.ActorDisplayName
	}
	if rec.ActorEmail != "" {
		return rec.ActorEmail
	}
	return "System"
}

// Describe maps an audit record to a human-readable sentence. The mapping is
// total: any action without a dedicated sentence falls through to the generic
// "performed" form.
func Describe(action entities.ActivityAction, details entities.ActivityDetails, actor string) string {
	switch d := details.(type) {
	case entities.RoleChangedDetails:
		return fmt.Sprintf("%s changed %s's role from %s to %s", actor, d.MemberEmail, d.OldRole, d.NewRole)
	case entities.MemberRemovedDetails:
		return fmt.Sprintf("%s removed %s (%s) from the team", actor, d.MemberEmail, d.MemberRole)
	case entities.InvitationSentDetails:
		return fmt.Sprintf("%s sent an invitation to %s", actor, d.InvitedEmail)
	default:
		return fmt.Sprintf("%s performed %s", actor, action)
	}
}
