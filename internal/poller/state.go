package poller

// State is the scheduler's position within a refresh cycle
type State int32

const (
	StateIdle State = iota
	StateFetchingMatches
	StatePublishedMatches
	StateFetchingDetails
	StatePublishedDetails
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingMatches:
		return "fetching_matches"
	case StatePublishedMatches:
		return "published_matches"
	case StateFetchingDetails:
		return "fetching_details"
	case StatePublishedDetails:
		return "published_details"
	default:
		return "unknown"
	}
}
