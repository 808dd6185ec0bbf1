package basketball

import (
	"fmt"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// Module implements LeagueModule for ESPN basketball leagues
type Module struct {
	key         string
	displayName string
	sportPath   string
	regulation  int // periods before overtime
	enabled     bool
}

// NewNBA creates the NBA league module
func NewNBA() *Module {
	return &Module{
		key:         "basketball_nba",
		displayName: "NBA",
		sportPath:   "basketball/nba",
		regulation:  4,
		enabled:     true,
	}
}

// NewWNBA creates the WNBA league module
func NewWNBA() *Module {
	return &Module{
		key:         "basketball_wnba",
		displayName: "WNBA",
		sportPath:   "basketball/wnba",
		regulation:  4,
		enabled:     true,
	}
}

func (m *Module) GetLeagueKey() string {
	return m.key
}

func (m *Module) GetDisplayName() string {
	return m.displayName
}

func (m *Module) GetESPNSportPath() string {
	return m.sportPath
}

func (m *Module) IsEnabled() bool {
	return m.enabled
}

// IsLive reports whether a scoreboard event is currently being played
func (m *Module) IsLive(rawEvent map[string]interface{}) bool {
	status := extractMap(rawEvent, "status")
	return isInProgress(extractMap(status, "type"))
}

// ParseLiveMatch parses an ESPN scoreboard event into a LiveMatch
func (m *Module) ParseLiveMatch(rawEvent map[string]interface{}) (*models.LiveMatch, error) {
	ref := extractString(rawEvent, "id")
	if ref == "" {
		return nil, fmt.Errorf("event has no id")
	}

	status := extractMap(rawEvent, "status")

	competitions := extractArray(rawEvent, "competitions")
	if len(competitions) == 0 {
		return nil, fmt.Errorf("no competitions found in event %s", ref)
	}

	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed competition in event %s", ref)
	}

	// Period and clock live on the competition in some feeds
	if len(status) == 0 {
		status = extractMap(comp, "status")
	}

	home, away, err := splitCompetitors(extractArray(comp, "competitors"))
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ref, err)
	}

	return &models.LiveMatch{
		Team1:     extractString(extractMap(home, "team"), "displayName"),
		Team2:     extractString(extractMap(away, "team"), "displayName"),
		Score:     formatScore(displayValue(home["score"]), displayValue(away["score"])),
		Period:    getPeriodLabel(extractInt(status, "period"), m.regulation),
		Clock:     extractString(status, "displayClock"),
		DetailRef: ref,
	}, nil
}

// ParseMatchDetails parses an ESPN game summary into a details document
func (m *Module) ParseMatchDetails(rawSummary map[string]interface{}) (models.Details, error) {
	header := extractMap(rawSummary, "header")
	competitions := extractArray(header, "competitions")
	if len(competitions) == 0 {
		return nil, fmt.Errorf("no competitions found in summary header")
	}

	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed competition in summary header")
	}

	home, away, err := splitCompetitors(extractArray(comp, "competitors"))
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{
		"home_team":           teamName(home),
		"away_team":           teamName(away),
		"home_quarter_scores": periodScores(extractArray(home, "linescores")),
		"away_quarter_scores": periodScores(extractArray(away, "linescores")),
		"home_total":          totalOrZero(home),
		"away_total":          totalOrZero(away),
		"top_player_stats":    notFound,
		"team_statistics":     notFound,
	}

	boxscore := extractMap(rawSummary, "boxscore")

	if players := topPlayers(parsePlayerLines(boxscore), topPlayerCount); len(players) > 0 {
		rows := make([]interface{}, 0, len(players))
		for _, p := range players {
			rows = append(rows, p.ToDocument())
		}
		raw["top_player_stats"] = rows
	}

	if stats := parseTeamStatistics(boxscore, home, away); len(stats) > 0 {
		rows := make([]interface{}, 0, len(stats))
		for _, s := range stats {
			rows = append(rows, s.ToDocument())
		}
		raw["team_statistics"] = rows
	}

	return models.NormalizeDetails(raw)
}

// splitCompetitors returns the home and away competitor objects
func splitCompetitors(competitors []interface{}) (home, away map[string]interface{}, err error) {
	if len(competitors) < 2 {
		return nil, nil, fmt.Errorf("insufficient competitors")
	}

	for i, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}
		switch extractString(competitor, "homeAway") {
		case "home":
			home = competitor
		case "away":
			away = competitor
		default:
			// Unlabelled feeds list home first
			if i == 0 && home == nil {
				home = competitor
			} else if away == nil {
				away = competitor
			}
		}
	}

	if home == nil || away == nil {
		return nil, nil, fmt.Errorf("missing home or away competitor")
	}
	return home, away, nil
}

func teamName(competitor map[string]interface{}) string {
	if name := extractString(extractMap(competitor, "team"), "displayName"); name != "" {
		return name
	}
	return "Unknown"
}

func totalOrZero(competitor map[string]interface{}) string {
	if v := displayValue(competitor["score"]); v != "" {
		return v
	}
	return "0"
}

// parsePlayerLines reads every player who took the floor from an ESPN box score
func parsePlayerLines(boxscore map[string]interface{}) []playerLine {
	var lines []playerLine

	for _, teamDataInterface := range extractArray(boxscore, "players") {
		teamData, ok := teamDataInterface.(map[string]interface{})
		if !ok {
			continue
		}
		teamAbbr := extractString(extractMap(teamData, "team"), "abbreviation")

		statistics := extractArray(teamData, "statistics")
		if len(statistics) == 0 {
			continue
		}

		// First group has player stats
		statGroup, ok := statistics[0].(map[string]interface{})
		if !ok {
			continue
		}
		ptsIdx := indexOfLabel(statGroup, "PTS")
		if ptsIdx < 0 {
			ptsIdx = indexOfLabel(statGroup, "points")
		}
		if ptsIdx < 0 {
			ptsIdx = idxPoints
		}

		for _, athleteInterface := range extractArray(statGroup, "athletes") {
			athleteData, ok := athleteInterface.(map[string]interface{})
			if !ok {
				continue
			}

			// Check if player played
			if didNotPlay, ok := athleteData["didNotPlay"].(bool); ok && didNotPlay {
				continue
			}

			stats := extractArray(athleteData, "stats")
			if len(stats) <= ptsIdx {
				continue
			}

			lines = append(lines, playerLine{
				Name:     extractString(extractMap(athleteData, "athlete"), "displayName"),
				TeamAbbr: teamAbbr,
				Points:   parseInt(stats[ptsIdx]),
				order:    len(lines),
			})
		}
	}

	return lines
}

// parseTeamStatistics pairs home and away values for the published team stat labels
func parseTeamStatistics(boxscore, home, away map[string]interface{}) []models.TeamStatistic {
	homeID := extractString(extractMap(home, "team"), "id")
	awayID := extractString(extractMap(away, "team"), "id")

	var homeStats, awayStats map[string]string
	for i, teamInterface := range extractArray(boxscore, "teams") {
		teamData, ok := teamInterface.(map[string]interface{})
		if !ok {
			continue
		}

		values := make(map[string]string)
		for _, statInterface := range extractArray(teamData, "statistics") {
			stat, ok := statInterface.(map[string]interface{})
			if !ok {
				continue
			}
			values[extractString(stat, "name")] = extractString(stat, "displayValue")
		}

		side := extractString(teamData, "homeAway")
		if side == "" {
			switch extractString(extractMap(teamData, "team"), "id") {
			case homeID:
				side = "home"
			case awayID:
				side = "away"
			}
		}
		if side == "" {
			// ESPN lists away first in summary box scores
			side = "away"
			if i == 1 {
				side = "home"
			}
		}

		if side == "home" {
			homeStats = values
		} else {
			awayStats = values
		}
	}

	if homeStats == nil || awayStats == nil {
		return nil
	}

	var out []models.TeamStatistic
	for _, def := range teamStatLabels {
		h, okHome := homeStats[def.Name]
		a, okAway := awayStats[def.Name]
		if !okHome || !okAway {
			continue
		}
		out = append(out, models.TeamStatistic{Label: def.Label, Home: h, Away: a})
	}
	return out
}
