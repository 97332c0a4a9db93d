package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"

	"slingshot/internal/models/gen_models"
	"slingshot/internal/models/request_models"
	"slingshot/internal/models/response_models"
	"slingshot/pkg/utils"
)

// fakeCompletionClient scripts one card list per day, in call order, and can
// be told to fail specific days.
type fakeCompletionClient struct {
	dayOutputs  [][]gen_models.RawCard
	failDays    map[int]bool
	dayCalls    int
	prompts     []string
	explanation string
	explainErr  error
}

func (f *fakeCompletionClient) GenerateDayCards(ctx context.Context, prompt string) ([]gen_models.RawCard, error) {
	f.dayCalls++
	f.prompts = append(f.prompts, prompt)
	if f.failDays[f.dayCalls] {
		return nil, errors.New("completion provider unavailable")
	}
	if f.dayCalls-1 < len(f.dayOutputs) {
		return f.dayOutputs[f.dayCalls-1], nil
	}
	return nil, errors.New("no scripted output")
}

func (f *fakeCompletionClient) GenerateExplanation(ctx context.Context, prompt string) (string, error) {
	if f.explainErr != nil {
		return "", f.explainErr
	}
	return f.explanation, nil
}

func lisbonRequest() *request_models.ItineraryRequest {
	return &request_models.ItineraryRequest{
		Destination:  "Lisbon",
		StartDate:    "2026-09-04",
		DurationDays: 3,
		Budget:       "moderate",
		Travelers:    2,
		Purpose:      "friend_getaway",
		Profile:      &request_models.TravelerProfile{DaypartBias: "balanced"},
	}
}

func scriptedLisbonDays() [][]gen_models.RawCard {
	day1 := []gen_models.RawCard{
		{Type: "meal", Title: "Breakfast at Fábrica", StartTime: "07:30", DurationMinutes: 45, Location: "Alfama, Lisbon"},
		{Type: "activity", Title: "Castelo de São Jorge", StartTime: "09:30", DurationMinutes: 120, Location: "Alfama, Lisbon"},
		{Type: "restaurant", Title: "Taberna do Largo", StartTime: "12:30", DurationMinutes: 90, Location: "Alfama, Lisbon"},
		{Type: "hotel", Title: "Hotel check-in", StartTime: "15:00", DurationMinutes: 30},
		{Type: "restaurant", Title: "Cervejaria Ramiro", StartTime: "19:30", DurationMinutes: 120},
	}
	day2 := []gen_models.RawCard{
		{Type: "meal", Title: "Pastelaria Santo António", StartTime: "07:45", DurationMinutes: 45, Location: "Baixa, Lisbon"},
		{Type: "activity", Title: "Baixa and Chiado stroll", StartTime: "09:15", DurationMinutes: 150, Location: "Baixa, Lisbon"},
		{Type: "restaurant", Title: "Taberna do Largo", StartTime: "12:30", DurationMinutes: 90}, // repeat, must be removed
		{Type: "activity", Title: "MAAT museum", StartTime: "14:30", DurationMinutes: 120, Location: "Belém, Lisbon"},
		{Type: "restaurant", Title: "Ponto Final", StartTime: "19:00", DurationMinutes: 120},
	}
	day3 := []gen_models.RawCard{
		{Type: "hotel", Title: "Hotel check-out", StartTime: "10:30", DurationMinutes: 30},
		{Type: "activity", Title: "LX Factory", StartTime: "11:30", DurationMinutes: 120, Location: "Alcântara, Lisbon"},
		{Type: "restaurant", Title: "A Cevicheria", StartTime: "14:00", DurationMinutes: 90},
		{Type: "activity", Title: "Miradouro sunset", StartTime: "18:00", DurationMinutes: 60},
	}
	return [][]gen_models.RawCard{day1, day2, day3}
}

func newTestService(fake *fakeCompletionClient) ItineraryServiceInterface {
	return NewItineraryService(fake, cache.New(time.Hour, 0))
}

func TestSynthesizeItineraryEndToEnd(t *testing.T) {
	fake := &fakeCompletionClient{
		dayOutputs:  scriptedLisbonDays(),
		explanation: "A food-forward three days split across Alfama, Baixa and Alcântara.",
	}
	svc := newTestService(fake)

	itinerary, err := svc.SynthesizeItinerary(context.Background(), lisbonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(itinerary.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(itinerary.Days))
	}

	// Day 1 carries a hotel check-in near 15:00.
	var checkIn bool
	for _, c := range itinerary.Days[0].Cards {
		if c.Type == response_models.CardHotel && c.StartTime == "15:00" {
			checkIn = true
		}
	}
	if !checkIn {
		t.Fatalf("day 1 missing hotel check-in: %v", itinerary.Days[0].Cards)
	}

	// Day 3 carries a check-out in the 10:00-11:00 window.
	var checkOut bool
	for _, c := range itinerary.Days[2].Cards {
		if c.Type == response_models.CardHotel {
			m := utils.ToMinutes(c.StartTime)
			if m >= 600 && m <= 660 {
				checkOut = true
			}
		}
	}
	if !checkOut {
		t.Fatalf("day 3 missing morning hotel check-out: %v", itinerary.Days[2].Cards)
	}

	// No dining title repeats anywhere in the trip.
	seen := map[string]bool{}
	for _, day := range itinerary.Days {
		for _, c := range day.Cards {
			if !c.IsDining() {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(c.Title))
			if seen[key] {
				t.Fatalf("dining title %q repeats across the trip", c.Title)
			}
			seen[key] = true
		}
	}

	// Start times strictly increasing within each day.
	for _, day := range itinerary.Days {
		prev := -1
		for _, c := range day.Cards {
			m := utils.ToMinutes(c.StartTime)
			if m < 0 {
				continue
			}
			if m <= prev {
				t.Fatalf("day %d start times not strictly increasing: %v", day.Day, day.Cards)
			}
			prev = m
		}
	}

	// Each day's primary area is distinct across the trip.
	seenAreas := map[string]bool{}
	for _, day := range itinerary.Days {
		area := primaryArea(day.Cards)
		if area == "" {
			continue
		}
		if seenAreas[area] {
			t.Fatalf("primary area %q repeats across the trip", area)
		}
		seenAreas[area] = true
	}
	if len(seenAreas) != 3 {
		t.Fatalf("got %d distinct areas, want 3: %v", len(seenAreas), seenAreas)
	}

	// Dates follow the start date.
	if itinerary.Days[0].Date != "2026-09-04" || itinerary.Days[2].Date != "2026-09-06" {
		t.Fatalf("dates wrong: %s .. %s", itinerary.Days[0].Date, itinerary.Days[2].Date)
	}

	if itinerary.Explanation != fake.explanation {
		t.Fatalf("explanation = %q, want scripted one", itinerary.Explanation)
	}

	// Day 2's prompt carries day 1's constraints forward.
	day2Prompt := fake.prompts[1]
	if !strings.Contains(day2Prompt, "Alfama") {
		t.Fatalf("day 2 prompt missing used-area constraint:\n%s", day2Prompt)
	}
	if !strings.Contains(day2Prompt, "Taberna do Largo") {
		t.Fatalf("day 2 prompt missing restaurant history:\n%s", day2Prompt)
	}
}

func TestSynthesizeItineraryFallsBackOnFailedDay(t *testing.T) {
	days := scriptedLisbonDays()
	fake := &fakeCompletionClient{
		dayOutputs:  days,
		failDays:    map[int]bool{2: true},
		explanation: "ok",
	}
	svc := newTestService(fake)

	itinerary, err := svc.SynthesizeItinerary(context.Background(), lisbonRequest())
	if err != nil {
		t.Fatalf("a failed day must not fail the synthesis: %v", err)
	}
	if len(itinerary.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(itinerary.Days))
	}

	day2 := itinerary.Days[1]
	if len(day2.Cards) < 4 {
		t.Fatalf("fallback day has %d cards, want at least 4", len(day2.Cards))
	}
	var template bool
	for _, c := range day2.Cards {
		if c.Title == "Local lunch, day 2" {
			template = true
		}
	}
	if !template {
		t.Fatalf("day 2 should be the fallback template: %v", day2.Cards)
	}

	// Days 1 and 3 stay generated.
	if itinerary.Days[0].Cards[0].Title != "Breakfast at Fábrica" {
		t.Fatalf("day 1 should be generated output: %v", itinerary.Days[0].Cards)
	}
}

func TestSynthesizeItineraryFallsBackOnTooFewCards(t *testing.T) {
	fake := &fakeCompletionClient{
		dayOutputs: [][]gen_models.RawCard{
			{{Type: "activity", Title: "Only thing", StartTime: "10:00", DurationMinutes: 60}},
		},
		explanation: "ok",
	}
	svc := newTestService(fake)

	req := lisbonRequest()
	req.DurationDays = 1

	itinerary, err := svc.SynthesizeItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(itinerary.Days[0].Cards) < 4 {
		t.Fatalf("too-few-cards day should use the fallback floor, got %v", itinerary.Days[0].Cards)
	}
}

func TestSynthesizeItineraryValidation(t *testing.T) {
	svc := newTestService(&fakeCompletionClient{})

	cases := []struct {
		name string
		mut  func(*request_models.ItineraryRequest)
		want error
	}{
		{"missing destination", func(r *request_models.ItineraryRequest) { r.Destination = "" }, utils.ErrMissingRequiredField},
		{"missing start date", func(r *request_models.ItineraryRequest) { r.StartDate = "" }, utils.ErrMissingRequiredField},
		{"bad start date", func(r *request_models.ItineraryRequest) { r.StartDate = "next friday" }, utils.ErrMissingRequiredField},
		{"duration too long", func(r *request_models.ItineraryRequest) { r.DurationDays = 45 }, utils.ErrInvalidDurationRange},
		{"negative duration", func(r *request_models.ItineraryRequest) { r.DurationDays = -1 }, utils.ErrInvalidDurationRange},
		{"missing profile", func(r *request_models.ItineraryRequest) { r.Profile = nil }, utils.ErrMissingPreferenceProfile},
	}
	for _, tc := range cases {
		req := lisbonRequest()
		tc.mut(req)
		_, err := svc.SynthesizeItinerary(context.Background(), req)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSynthesizeItineraryExplanationFallback(t *testing.T) {
	fake := &fakeCompletionClient{
		dayOutputs: scriptedLisbonDays(),
		explainErr: errors.New("provider down"),
	}
	svc := newTestService(fake)

	req := lisbonRequest()
	itinerary, err := svc.SynthesizeItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itinerary.Explanation != FallbackExplanation(req) {
		t.Fatalf("explanation = %q, want templated fallback", itinerary.Explanation)
	}
}

func TestSynthesizeItineraryCachesResults(t *testing.T) {
	fake := &fakeCompletionClient{
		dayOutputs:  scriptedLisbonDays(),
		explanation: "ok",
	}
	svc := newTestService(fake)

	if _, err := svc.SynthesizeItinerary(context.Background(), lisbonRequest()); err != nil {
		t.Fatalf("first synthesis failed: %v", err)
	}
	if fake.dayCalls != 3 {
		t.Fatalf("first synthesis made %d day calls, want 3", fake.dayCalls)
	}

	if _, err := svc.SynthesizeItinerary(context.Background(), lisbonRequest()); err != nil {
		t.Fatalf("second synthesis failed: %v", err)
	}
	if fake.dayCalls != 3 {
		t.Fatalf("cached synthesis should not call the provider again, got %d calls", fake.dayCalls)
	}
}

func TestSynthesizeItineraryHonorsCancellation(t *testing.T) {
	fake := &fakeCompletionClient{dayOutputs: scriptedLisbonDays(), explanation: "ok"}
	svc := newTestService(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SynthesizeItinerary(ctx, lisbonRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
