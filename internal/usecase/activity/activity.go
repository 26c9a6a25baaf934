package activity

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type ActivityUseCase interface {
	TeamFeed(ctx context.Context, teamID string) ([]entities.ActivityEntry, error)
}
