package contracts

import (
	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// LeagueModule is the pluggable interface for the leagues the service can follow
type LeagueModule interface {
	// Identification
	GetLeagueKey() string     // "basketball_nba", "basketball_wnba"
	GetDisplayName() string   // "NBA", "WNBA"
	GetESPNSportPath() string // "basketball/nba"

	IsEnabled() bool

	// IsLive reports whether a raw scoreboard event is in progress
	IsLive(rawEvent map[string]interface{}) bool

	// Data parsing (league-specific formats)
	ParseLiveMatch(rawEvent map[string]interface{}) (*models.LiveMatch, error)
	ParseMatchDetails(rawSummary map[string]interface{}) (models.Details, error)
}
