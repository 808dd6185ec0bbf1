package models

// TopPlayer is one row of the "top_player_stats" section of a details document
type TopPlayer struct {
	Name   string
	Team   string
	Points int
}

// ToDocument converts the row to the generic value set used by Details
func (p TopPlayer) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"name":   p.Name,
		"team":   p.Team,
		"points": float64(p.Points),
	}
}

// TeamStatistic is one row of the "team_statistics" section of a details document
type TeamStatistic struct {
	Label string
	Home  string
	Away  string
}

// ToDocument converts the row to the generic value set used by Details
func (s TeamStatistic) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"label": s.Label,
		"home":  s.Home,
		"away":  s.Away,
	}
}
