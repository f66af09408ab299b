package service

// State names one phase of an analysis run. A run walks
// Idle → FetchingMetadata → FetchingReviews → Analyzing → Exporting →
// Done; Error is reachable from every phase after Idle.
type State int

const (
	StateIdle State = iota
	StateFetchingMetadata
	StateFetchingReviews
	StateAnalyzing
	StateExporting
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingMetadata:
		return "fetching_metadata"
	case StateFetchingReviews:
		return "fetching_reviews"
	case StateAnalyzing:
		return "analyzing"
	case StateExporting:
		return "exporting"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// progressFor maps each state onto the 0-100 progress scale the sink
// reports.
func progressFor(s State) int {
	switch s {
	case StateFetchingMetadata:
		return 10
	case StateFetchingReviews:
		return 30
	case StateAnalyzing:
		return 60
	case StateExporting:
		return 85
	case StateDone:
		return 100
	default:
		return 0
	}
}
