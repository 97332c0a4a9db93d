package services

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"slingshot/internal/models/response_models"
)

// Thresholds for the qualitative load hint fed into the next day's prompt.
const (
	heavyDayAvgMinutes = 350
	lightDayAvgMinutes = 250
)

const defaultCardMinutes = 120

// recentActivityWindow caps how many past activity titles reach the prompt.
// Restaurants are never truncated: duplicate-venue avoidance needs the full
// history, while activity titles only feed stylistic variety.
const recentActivityWindow = 8

// TripContext is the only state carried across day generations within one
// synthesis. It is created per request and mutated exclusively by Commit,
// once per finalized day.
type TripContext struct {
	activityTitles   []string
	restaurantTitles []string
	areas            []string
	totalMinutes     int
	daysCommitted    int
}

func NewTripContext() *TripContext {
	return &TripContext{}
}

// RestaurantHistory returns every restaurant/meal title seen so far,
// lower-cased and trimmed for comparison.
func (tc *TripContext) RestaurantHistory() []string {
	return lo.Map(tc.restaurantTitles, func(title string, _ int) string {
		return strings.ToLower(strings.TrimSpace(title))
	})
}

// UsedAreas returns the primary area recorded for each completed day.
func (tc *TripContext) UsedAreas() []string {
	return append([]string(nil), tc.areas...)
}

// RenderConstraints renders the accumulated state as the natural-language
// constraint block for the given day's prompt.
func (tc *TripContext) RenderConstraints(day int) string {
	if day == 1 {
		return "This is the first day of the trip. There is no prior context; pick any neighborhood that suits the day."
	}

	var b strings.Builder

	if len(tc.areas) > 0 {
		b.WriteString("Neighborhoods already covered on previous days, do NOT plan this day around any of them: ")
		b.WriteString(strings.Join(tc.areas, "; "))
		b.WriteString(".\n")
	}

	if len(tc.restaurantTitles) > 0 {
		b.WriteString("Restaurants and meal spots already used, NONE of these may appear again:\n")
		for _, title := range tc.restaurantTitles {
			b.WriteString("- " + title + "\n")
		}
	}

	if len(tc.activityTitles) > 0 {
		recent := tc.activityTitles
		if len(recent) > recentActivityWindow {
			recent = recent[len(recent)-recentActivityWindow:]
		}
		b.WriteString("Recent activities (vary the style, repeats are discouraged): ")
		b.WriteString(strings.Join(recent, "; "))
		b.WriteString(".\n")
	}

	if tc.daysCommitted > 0 {
		avg := tc.totalMinutes / tc.daysCommitted
		switch {
		case avg > heavyDayAvgMinutes:
			b.WriteString(fmt.Sprintf("Pace so far averages %d activity minutes per day; plan a lighter day.\n", avg))
		case avg < lightDayAvgMinutes:
			b.WriteString(fmt.Sprintf("Pace so far averages %d activity minutes per day; you can add more.\n", avg))
		}
	}

	if b.Len() == 0 {
		return "No constraints accumulated yet."
	}
	return b.String()
}

// Commit folds a finalized day into the ledger. This is the commit point:
// once folded, the day's content constrains every subsequent day and is never
// rolled back.
func (tc *TripContext) Commit(plan response_models.DayPlan) {
	for _, card := range plan.Cards {
		title := strings.TrimSpace(card.Title)
		if title == "" {
			continue
		}
		if card.IsDining() {
			tc.restaurantTitles = append(tc.restaurantTitles, title)
		} else if strings.ToLower(card.Type) == response_models.CardActivity {
			tc.activityTitles = append(tc.activityTitles, title)
		}

		minutes := card.DurationMinutes
		if minutes <= 0 {
			minutes = defaultCardMinutes
		}
		tc.totalMinutes += minutes
	}

	if area := primaryArea(plan.Cards); area != "" {
		tc.areas = append(tc.areas, area)
	}
	tc.daysCommitted++
}

// primaryArea extracts the single geographic label for a day: the first
// comma-delimited segment of the first non-hotel, non-transit card's
// location. Empty when that card has no location; the heuristic is allowed
// to miss.
func primaryArea(cards []response_models.ActivityCard) string {
	for _, card := range cards {
		t := strings.ToLower(card.Type)
		if t == response_models.CardHotel || t == response_models.CardTransit {
			continue
		}
		segment, _, _ := strings.Cut(card.Location, ",")
		return strings.TrimSpace(segment)
	}
	return ""
}
