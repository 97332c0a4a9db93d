package services

import (
	"fmt"
	"sort"
	"strings"

	"slingshot/internal/models/request_models"
	"slingshot/internal/models/response_models"
	"slingshot/pkg/utils"
)

// Budget tiers map to a per-person/day spending range rendered into prompts.
var budgetRanges = map[string]string{
	"budget":      "$30-60 USD per person per day",
	"moderate":    "$60-120 USD per person per day",
	"comfortable": "$120-250 USD per person per day",
	"luxury":      "$250+ USD per person per day",
}

var purposeGuidance = map[string]string{
	"romantic_getaway": "Favor intimate settings, scenic spots and memorable dinners.",
	"friend_getaway":   "Favor social, lively spots with room for spontaneous fun.",
	"family_vacation":  "Favor kid-friendly pacing with downtime between activities.",
	"solo_adventure":   "Favor walkable exploration and places easy to enjoy alone.",
	"honeymoon":        "Favor romance, privacy and a few splurge moments.",
	"business_leisure": "Keep daytime light and flexible, concentrate plans toward evenings.",
}

func budgetRange(tier string) string {
	if r, ok := budgetRanges[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return r
	}
	return budgetRanges["moderate"]
}

func guidanceFor(purpose string) string {
	if g, ok := purposeGuidance[strings.ToLower(strings.TrimSpace(purpose))]; ok {
		return g
	}
	return "Balance well-known highlights with local experiences."
}

const dayCardSchema = `{
  "cards": [
    {"type":"restaurant","title":"...","start_time":"07:30","duration_minutes":60,"location":"Neighborhood, City","tags":["breakfast"],"cost":15}
  ]
}`

// BuildDayPrompt turns the request, the day position and the accumulated
// cross-day constraints into the instruction payload for one generation call.
// The downstream model routinely ignores soft suggestions, so ordering and
// count rules are phrased as non-negotiable.
func BuildDayPrompt(req *request_models.ItineraryRequest, day, totalDays int, contextBlock string) string {
	shift := utils.DaypartShift(req.Profile.DaypartBias)
	isFirst := day == 1
	isLast := day == totalDays

	minCards, maxCards := 6, 9
	if isFirst || isLast {
		// First/last days carry a hotel check-in/out card, leaving less room.
		minCards, maxCards = 5, 8
	}

	travelers := req.Travelers
	if travelers < 1 {
		travelers = 1
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Plan day %d of a %d-day trip to %s for %d traveler(s).\n", day, totalDays, req.Destination, travelers)
	fmt.Fprintf(&b, "Trip purpose: %s. %s\n", req.Purpose, guidanceFor(req.Purpose))
	fmt.Fprintf(&b, "Budget: %s.\n\n", budgetRange(req.Budget))

	b.WriteString("Schedule skeleton for this day (anchor times, follow the rhythm):\n")
	fmt.Fprintf(&b, "- %s breakfast\n", utils.ToClock(utils.AnchorBreakfast+shift))
	fmt.Fprintf(&b, "- %s morning activity\n", utils.ToClock(utils.AnchorMorningStart+shift))
	fmt.Fprintf(&b, "- %s lunch\n", utils.ToClock(utils.AnchorLunch+shift))
	fmt.Fprintf(&b, "- %s afternoon activity\n", utils.ToClock(utils.AnchorLunch+shift+150))
	fmt.Fprintf(&b, "- %s transit toward dinner\n", utils.ToClock(utils.AnchorDinner+shift-45))
	fmt.Fprintf(&b, "- %s dinner\n", utils.ToClock(utils.AnchorDinner+shift))
	fmt.Fprintf(&b, "- %s evening activity\n\n", utils.ToClock(utils.AnchorDinner+shift+120))

	if isFirst {
		b.WriteString("This is the ARRIVAL day: include a hotel check-in card at 15:00.\n")
	}
	if isLast {
		b.WriteString("This is the DEPARTURE day: include a hotel check-out card at 11:00.\n")
	}

	b.WriteString("\nTrip context so far:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n")

	if req.MustDo != "" {
		fmt.Fprintf(&b, "Must-do requests from the traveler: %s\n", req.MustDo)
	}
	if req.Commitments != "" {
		fmt.Fprintf(&b, "Existing commitments to plan around: %s\n", req.Commitments)
	}
	if prefs := renderProfileExtras(req.Profile); prefs != "" {
		fmt.Fprintf(&b, "Traveler preferences: %s\n", prefs)
	}

	b.WriteString("\nNON-NEGOTIABLE RULES:\n")
	fmt.Fprintf(&b, "1. Return between %d and %d cards.\n", minCards, maxCards)
	b.WriteString("2. Start times MUST be strictly increasing. No two cards may share a start time.\n")
	b.WriteString("3. Card types: activity, restaurant, meal, hotel, transit, entertainment, shopping.\n")
	b.WriteString("4. Never reuse any restaurant or neighborhood listed as forbidden in the trip context above.\n")
	b.WriteString("5. Times are HH:MM 24-hour. duration_minutes is an integer. At most 5 tags per card.\n")
	b.WriteString("\nReturn JSON only, exactly this shape:\n")
	b.WriteString(dayCardSchema)

	return b.String()
}

func renderProfileExtras(profile *request_models.TravelerProfile) string {
	if profile == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("daypart=%s", profile.DaypartBias)}

	keys := make([]string, 0, len(profile.Extras))
	for k := range profile.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, profile.Extras[k]))
	}
	return strings.Join(parts, ", ")
}

// BuildExplanationPrompt asks for the trip-level rationale once all days are
// finalized.
func BuildExplanationPrompt(req *request_models.ItineraryRequest, days []response_models.DayPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize in 3-4 sentences how this %d-day %s itinerary matches the travelers' preferences", req.DurationDays, req.Destination)
	if prefs := renderProfileExtras(req.Profile); prefs != "" {
		fmt.Fprintf(&b, " (%s)", prefs)
	}
	b.WriteString(". Itinerary:\n")

	for _, day := range days {
		fmt.Fprintf(&b, "Day %d:", day.Day)
		for i, card := range day.Cards {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(" " + card.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("Plain text only, addressed to the travelers.")
	return b.String()
}

// FallbackExplanation is the templated rationale used when the explanation
// call fails. Non-fatal by design.
func FallbackExplanation(req *request_models.ItineraryRequest) string {
	return fmt.Sprintf(
		"Your %d-day trip to %s balances sightseeing, food and downtime, with a different neighborhood each day and no repeated restaurants.",
		req.DurationDays, req.Destination,
	)
}
