package response_models

import "strings"

// Card types. The enum is open: unknown types coming back from the completion
// provider are kept as-is.
const (
	CardActivity      = "activity"
	CardRestaurant    = "restaurant"
	CardMeal          = "meal"
	CardHotel         = "hotel"
	CardTransit       = "transit"
	CardEntertainment = "entertainment"
	CardShopping      = "shopping"
)

// ActivityCard is a validated card. Only the day repairer and the fallback
// builder produce these.
type ActivityCard struct {
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	StartTime       string   `json:"start_time,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Location        string   `json:"location,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Cost            float64  `json:"cost,omitempty"`
}

// IsDining reports whether the card is a restaurant or meal card, the types
// subject to the trip-wide no-repeat rule.
func (c ActivityCard) IsDining() bool {
	t := strings.ToLower(c.Type)
	return t == CardRestaurant || t == CardMeal
}

type DayPlan struct {
	Day   int            `json:"day"`
	Date  string         `json:"date"`
	Cards []ActivityCard `json:"cards"`
}

type TripItinerary struct {
	Destination string    `json:"destination"`
	Days        []DayPlan `json:"days"`
	Explanation string    `json:"explanation"`
}
