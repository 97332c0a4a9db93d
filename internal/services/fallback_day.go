package services

import (
	"fmt"
	"sort"

	"slingshot/internal/models/gen_models"
	"slingshot/internal/models/response_models"
	"slingshot/pkg/utils"
)

// Hotel cards keep fixed check-in/out times regardless of daypart bias.
const (
	hotelCheckInMinutes  = 15 * 60
	hotelCheckOutMinutes = 11 * 60
)

// BuildFallbackDay produces the deterministic template day used when
// generation fails or returns too few cards. It is the availability floor:
// always 4-6 cards, internally time-ordered, no external calls. Dining titles
// carry the day number so consecutive fallback days never trip the trip-wide
// restaurant dedup. Cards are returned raw so the fallback flows through the
// same repair pass as generated output.
func BuildFallbackDay(destination string, day, totalDays, shift int) []gen_models.RawCard {
	cards := []gen_models.RawCard{
		{
			Type:            response_models.CardActivity,
			Title:           fmt.Sprintf("Morning exploration of %s", destination),
			StartTime:       utils.ToClock(utils.AnchorMorningStart + shift),
			DurationMinutes: 100,
			Tags:            []string{"walking", "sightseeing"},
		},
		{
			Type:            response_models.CardMeal,
			Title:           fmt.Sprintf("Local lunch, day %d", day),
			StartTime:       utils.ToClock(utils.AnchorLunch + shift),
			DurationMinutes: 90,
			Tags:            []string{"food"},
		},
		{
			Type:            response_models.CardActivity,
			Title:           "Self-guided afternoon walk",
			StartTime:       utils.ToClock(utils.AnchorLunch + shift + 90),
			DurationMinutes: 90,
			Tags:            []string{"walking"},
		},
		{
			Type:            response_models.CardRestaurant,
			Title:           fmt.Sprintf("Neighborhood dinner, day %d", day),
			StartTime:       utils.ToClock(utils.AnchorDinner + shift),
			DurationMinutes: 90,
			Tags:            []string{"food", "dinner"},
		},
	}

	if day == 1 {
		cards = append(cards, gen_models.RawCard{
			Type:            response_models.CardHotel,
			Title:           "Hotel check-in",
			StartTime:       utils.ToClock(hotelCheckInMinutes),
			DurationMinutes: 30,
		})
	}
	if day == totalDays && totalDays > 1 {
		cards = append(cards, gen_models.RawCard{
			Type:            response_models.CardHotel,
			Title:           "Hotel check-out",
			StartTime:       utils.ToClock(hotelCheckOutMinutes),
			DurationMinutes: 30,
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return utils.ToMinutes(cards[i].StartTime) < utils.ToMinutes(cards[j].StartTime)
	})

	return cards
}
