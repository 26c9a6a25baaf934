package activity

import (
	"context"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/queryview"
)

// FeedLoader holds the newest activity for one team behind a dashboard view.
// SetTeam switches the feed to another team and refreshes in the background;
// a fetch superseded by a later SetTeam cannot overwrite the view even when
// it resolves last. With an empty team id the loader is disabled and the
// view drops back to idle.
type FeedLoader struct {
	uc   ActivityUseCase
	view queryview.View[[]entities.ActivityEntry]
}

func NewFeedLoader(uc ActivityUseCase) *FeedLoader {
	return &FeedLoader{uc: uc}
}

func (l *FeedLoader) SetTeam(ctx context.Context, teamID string) {
	if teamID == "" {
		l.view.Reset()
		return
	}
	gen := l.view.Begin()
	go func() {
		entries, err := l.uc.TeamFeed(ctx, teamID)
		l.view.Complete(gen, entries, err)
	}()
}

func (l *FeedLoader) Snapshot() queryview.Snapshot[[]entities.ActivityEntry] {
	return l.view.Snapshot()
}
