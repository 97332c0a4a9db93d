package utils

import "errors"

var (
	ErrMissingRequiredField     = errors.New("missing required field")
	ErrInvalidDurationRange     = errors.New("trip duration must be between 1 and 30 days")
	ErrMissingPreferenceProfile = errors.New("traveler preference profile is required")
	ErrInvalidInput             = errors.New("invalid input")
	ErrUnexpectedBehaviorOfAI   = errors.New("unexpected behavior of completion provider")
)
