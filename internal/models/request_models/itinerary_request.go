package request_models

import (
	"strings"
	"time"

	"slingshot/pkg/utils"
)

// TravelerProfile carries the qualitative preferences of the travelers.
// Extras is free-form and is passed through to the completion prompt as
// natural language, never interpreted.
type TravelerProfile struct {
	DaypartBias string            `json:"daypart_bias"`
	Extras      map[string]string `json:"extras,omitempty"`
}

type ItineraryRequest struct {
	Destination  string           `json:"destination"`
	StartDate    string           `json:"start_date"`
	DurationDays int              `json:"duration_days"`
	Budget       string           `json:"budget"`
	Travelers    int              `json:"travelers"`
	Purpose      string           `json:"purpose"`
	MustDo       string           `json:"must_do,omitempty"`
	Commitments  string           `json:"commitments,omitempty"`
	Profile      *TravelerProfile `json:"profile"`
}

// Validate checks the request before synthesis begins. Only malformed input
// is a hard error; everything after this point degrades gracefully.
func (r *ItineraryRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" || strings.TrimSpace(r.StartDate) == "" || r.DurationDays == 0 {
		return utils.ErrMissingRequiredField
	}
	if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
		return utils.ErrMissingRequiredField
	}
	if r.DurationDays < 1 || r.DurationDays > 30 {
		return utils.ErrInvalidDurationRange
	}
	if r.Profile == nil {
		return utils.ErrMissingPreferenceProfile
	}
	return nil
}

// Start returns the parsed start date. Call only after Validate.
func (r *ItineraryRequest) Start() time.Time {
	t, _ := time.Parse("2006-01-02", r.StartDate)
	return t
}
