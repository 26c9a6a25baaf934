package repository

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type ActivityRepository interface {
	ListTeamActivity(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error)
	CreateActivityRecord(ctx context.Context, record entities.ActivityRecord) (entities.ActivityRecord, error)
}
