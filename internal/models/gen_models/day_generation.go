package gen_models

// RawCard is one activity card as returned by the completion provider. The
// provider only guarantees shape, never content, so nothing downstream may
// consume a RawCard before it has been through the day repairer.
type RawCard struct {
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Location        string   `json:"location,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Cost            float64  `json:"cost,omitempty"`
}

// RawDay is the top-level object the per-day completion call is asked to
// produce.
type RawDay struct {
	Cards []RawCard `json:"cards"`
}
