package basketball

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fortuna/services/live-scores-service/pkg/models"
)

// ESPN stat index for points when the summary carries no labels.
// Based on: MIN, PTS, OREB, DREB, REB, AST, STL, BLK, TO, FG, FG%, 3PT, 3PT%, FT, FT%, PF, +/-
const idxPoints = 1

// Quarters plus one overtime column, matching the scoreboard widget
const periodColumns = 5

// notFound marks an optional details section the upstream did not provide
const notFound = "Not found"

// ESPN status.type.state for a game in progress
const stateIn = "in"

// parseInt parses an int from interface{}
func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	case int:
		return val
	default:
		return 0
	}
}

// displayValue renders a score-like field that ESPN sends as either string or number
func displayValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.Itoa(int(val))
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

// isInProgress converts ESPN status type to a live flag
func isInProgress(statusType map[string]interface{}) bool {
	if completed, ok := statusType["completed"].(bool); ok && completed {
		return false
	}
	state, _ := statusType["state"].(string)
	return state == stateIn
}

// formatScore joins home and away scores, models.NoScore if either is missing
func formatScore(home, away string) string {
	if home == "" || away == "" {
		return models.NoScore
	}
	return fmt.Sprintf("%s - %s", home, away)
}

// getPeriodLabel returns the basketball period label
func getPeriodLabel(period, regulation int) string {
	switch {
	case period <= 0:
		return ""
	case period <= regulation:
		return fmt.Sprintf("Q%d", period)
	default:
		return fmt.Sprintf("OT%d", period-regulation)
	}
}

// periodScores flattens ESPN linescores into fixed columns, "0" when absent
func periodScores(linescores []interface{}) []interface{} {
	out := make([]interface{}, periodColumns)
	for i := range out {
		out[i] = "0"
	}
	for i, lsInterface := range linescores {
		if i >= periodColumns {
			// Later overtimes fold into the last column
			prev := parseInt(out[periodColumns-1])
			ls, _ := lsInterface.(map[string]interface{})
			out[periodColumns-1] = strconv.Itoa(prev + parseInt(lineScoreValue(ls)))
			continue
		}
		ls, ok := lsInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if v := lineScoreValue(ls); v != "" {
			out[i] = v
		}
	}
	return out
}

func lineScoreValue(ls map[string]interface{}) string {
	if v := displayValue(ls["displayValue"]); v != "" {
		return v
	}
	return displayValue(ls["value"])
}

// indexOfLabel finds a column in an ESPN stat group, -1 if missing
func indexOfLabel(group map[string]interface{}, label string) int {
	for _, key := range []string{"labels", "names"} {
		for i, l := range extractArray(group, key) {
			if s, ok := l.(string); ok && strings.EqualFold(s, label) {
				return i
			}
		}
	}
	return -1
}

// extractString safely extracts a string from a map
func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// extractInt safely extracts an int from a map
func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

// extractMap safely extracts a map from a map
func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// extractArray safely extracts an array from a map
func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}
