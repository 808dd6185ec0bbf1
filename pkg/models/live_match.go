package models

// NoScore is reported when the upstream has no score for a live match yet
const NoScore = "-"

// LiveMatch is one in-progress game as shown on the scoreboard.
// DetailRef is the only key used to correlate a match with its Details.
type LiveMatch struct {
	Team1     string `json:"team1"`      // Home display name
	Team2     string `json:"team2"`      // Away display name
	Score     string `json:"score"`      // "102 - 99", NoScore when unavailable
	Period    string `json:"period"`     // "Q3", "OT1", empty if unknown
	Clock     string `json:"clock"`      // "4:12", empty if unknown
	DetailRef string `json:"detail_ref"` // Upstream event id
}
