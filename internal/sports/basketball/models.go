package basketball

import (
	"sort"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// Number of players reported in "top_player_stats"
const topPlayerCount = 3

// teamStatLabels maps ESPN team statistic names to the labels we publish.
// Order is the order rows appear in "team_statistics".
var teamStatLabels = []struct {
	Name  string
	Label string
}{
	{Name: "fieldGoalsMade-fieldGoalsAttempted", Label: "Field Goals Attempted"},
	{Name: "fieldGoalPct", Label: "Field Goals %"},
	{Name: "totalRebounds", Label: "Total Rebounds"},
}

// playerLine is the subset of an ESPN box score row we rank players by
type playerLine struct {
	Name     string
	TeamAbbr string
	Points   int
	order    int // position in the upstream box score, for stable ties
}

// topPlayers returns the best scorers, highest points first
func topPlayers(lines []playerLine, n int) []models.TopPlayer {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Points != lines[j].Points {
			return lines[i].Points > lines[j].Points
		}
		return lines[i].order < lines[j].order
	})

	if len(lines) > n {
		lines = lines[:n]
	}

	out := make([]models.TopPlayer, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.TopPlayer{Name: l.Name, Team: l.TeamAbbr, Points: l.Points})
	}
	return out
}
