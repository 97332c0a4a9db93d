package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"

	"github.com/patrickmn/go-cache"

	"slingshot/internal/models/request_models"
	"slingshot/internal/models/response_models"
	"slingshot/pkg/utils"
)

// minGeneratedCards is the floor below which a generated day is discarded in
// favor of the fallback template.
const minGeneratedCards = 3

type ItineraryServiceInterface interface {
	SynthesizeItinerary(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.TripItinerary, error)
}

type ItineraryService struct {
	completion utils.CompletionClientInterface
	results    *cache.Cache
}

func NewItineraryService(completion utils.CompletionClientInterface, results *cache.Cache) ItineraryServiceInterface {
	return &ItineraryService{
		completion: completion,
		results:    results,
	}
}

// SynthesizeItinerary drives the day loop as a left-fold over day indices
// with the trip context as the carried state: day N's prompt depends only on
// the finalized, post-repair state of days 1..N-1. Generation is strictly
// sequential for that reason. Every generated or fallback day flows through
// the same repair pass before it is committed.
func (s *ItineraryService) SynthesizeItinerary(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.TripItinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := requestCacheKey(req)
	if cached, found := s.results.Get(key); found {
		log.Printf("itinerary: cache hit for %s/%d days", req.Destination, req.DurationDays)
		return cached.(*response_models.TripItinerary), nil
	}

	start := req.Start()
	shift := utils.DaypartShift(req.Profile.DaypartBias)
	tc := NewTripContext()
	days := make([]response_models.DayPlan, 0, req.DurationDays)

	for day := 1; day <= req.DurationDays; day++ {
		// The whole synthesis is one cancelable unit: bail before starting
		// the next day so a partial itinerary never escapes.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt := BuildDayPrompt(req, day, req.DurationDays, tc.RenderConstraints(day))

		raw, err := s.completion.GenerateDayCards(ctx, prompt)
		if err != nil || len(raw) < minGeneratedCards {
			// One deterministic fallback beats probabilistic retries against
			// a slow, costly service. Never retried.
			if err != nil {
				log.Printf("itinerary: day %d generation failed (%v), using fallback day", day, err)
			} else {
				log.Printf("itinerary: day %d returned %d cards, using fallback day", day, len(raw))
			}
			raw = BuildFallbackDay(req.Destination, day, req.DurationDays, shift)
		}

		cards, report := RepairDay(raw, tc.RestaurantHistory())
		if report.Repaired() {
			log.Printf("itinerary: day %d repaired (dup times=%v, removed=%d, timing=%v)",
				day, report.DuplicateStartTimes, len(report.RemovedRestaurants), report.TimingIssues)
		}

		plan := response_models.DayPlan{
			Day:   day,
			Date:  start.AddDate(0, 0, day-1).Format("2006-01-02"),
			Cards: cards,
		}
		tc.Commit(plan)
		days = append(days, plan)
	}

	itinerary := &response_models.TripItinerary{
		Destination: req.Destination,
		Days:        days,
		Explanation: s.synthesizeExplanation(ctx, req, days),
	}

	s.results.Set(key, itinerary, cache.DefaultExpiration)
	return itinerary, nil
}

// synthesizeExplanation makes the one best-effort rationale call. Failure is
// never fatal; a templated string stands in.
func (s *ItineraryService) synthesizeExplanation(ctx context.Context, req *request_models.ItineraryRequest, days []response_models.DayPlan) string {
	text, err := s.completion.GenerateExplanation(ctx, BuildExplanationPrompt(req, days))
	if err != nil || text == "" {
		log.Printf("itinerary: explanation synthesis failed (%v), using template", err)
		return FallbackExplanation(req)
	}
	return text
}

func requestCacheKey(req *request_models.ItineraryRequest) string {
	payload, _ := json.Marshal(req)
	return fmt.Sprintf("%x", sha256.Sum256(payload))[:16]
}
