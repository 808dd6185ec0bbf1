package contracts

import (
	"context"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// ScrapeProvider is the upstream source the refresh scheduler pulls from.
// Both calls may block, be slow or fail; callers bound them with ctx.
type ScrapeProvider interface {
	// FetchLiveMatches returns the games currently in progress (possibly none)
	FetchLiveMatches(ctx context.Context) ([]models.LiveMatch, error)

	// FetchMatchDetails returns the details document for one LiveMatch.DetailRef
	FetchMatchDetails(ctx context.Context, ref string) (models.Details, error)
}
