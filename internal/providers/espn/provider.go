package espn

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/services/live-scores-service/pkg/contracts"
	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// Provider adapts the ESPN client to the scrape provider contract for one league
type Provider struct {
	client *Client
	module contracts.LeagueModule
}

var _ contracts.ScrapeProvider = (*Provider)(nil)

// NewProvider creates a provider that scrapes the given league
func NewProvider(client *Client, module contracts.LeagueModule) *Provider {
	return &Provider{
		client: client,
		module: module,
	}
}

// FetchLiveMatches returns the league's games that are in progress, in scoreboard order
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]models.LiveMatch, error) {
	leagueKey := p.module.GetLeagueKey()

	scoreboard, err := p.client.FetchScoreboard(ctx, p.module.GetESPNSportPath())
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	events, ok := scoreboard["events"].([]interface{})
	if !ok {
		// No games today is a valid, empty answer
		return []models.LiveMatch{}, nil
	}

	matches := make([]models.LiveMatch, 0, len(events))
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if !p.module.IsLive(event) {
			continue
		}

		match, err := p.module.ParseLiveMatch(event)
		if err != nil {
			log.Printf("[%s] Skipping unparsable event: %v", leagueKey, err)
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}

// FetchMatchDetails returns the details document for one ESPN event id
func (p *Provider) FetchMatchDetails(ctx context.Context, ref string) (models.Details, error) {
	summary, err := p.client.FetchGameSummary(ctx, p.module.GetESPNSportPath(), ref)
	if err != nil {
		return nil, fmt.Errorf("fetching summary %s: %w", ref, err)
	}

	details, err := p.module.ParseMatchDetails(summary)
	if err != nil {
		return nil, fmt.Errorf("parsing summary %s: %w", ref, err)
	}

	return details, nil
}
