package stats

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

type StatsUseCase interface {
	PlatformStats(ctx context.Context) (entities.PlatformStats, error)
	TeamStats(ctx context.Context, teamID string) (entities.TeamStats, error)
}
