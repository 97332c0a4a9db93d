package services

import (
	"log"
	"sort"
	"strings"

	"github.com/samber/lo"

	"slingshot/internal/models/gen_models"
	"slingshot/internal/models/response_models"
	"slingshot/pkg/utils"
)

const (
	maxCardTags         = 5
	maxCardMinutes      = 16 * 60
	monotonicDefaultGap = 60
)

// RepairReport records what the validator found in one day's raw cards.
type RepairReport struct {
	DuplicateStartTimes bool
	RemovedRestaurants  []string
	TimingIssues        bool
}

// Repaired reports whether any pass had to change the day.
func (r RepairReport) Repaired() bool {
	return r.DuplicateStartTimes || r.TimingIssues || len(r.RemovedRestaurants) > 0
}

// RepairDay turns one day's untrusted cards into validated cards. Three
// passes: duplicate start-time detection, cross-day restaurant dedup against
// the full trip history, and chronological monotonicity. Duplicate times and
// ordering defects share one repair, a stable sort by start time; duplicate
// restaurants are removed outright since there is no safe auto-substitute.
// Removal runs before the sort because it changes the list the sort operates
// on. Repair never fabricates cards: a short day is accepted degradation.
func RepairDay(raw []gen_models.RawCard, restaurantHistory []string) ([]response_models.ActivityCard, RepairReport) {
	var report RepairReport

	cards := coerceCards(raw)

	// Pass: cross-day restaurant dedup. seen also tracks titles kept within
	// this day so an in-day repeat cannot slip past the trip-wide rule.
	seen := make(map[string]bool, len(restaurantHistory))
	for _, title := range restaurantHistory {
		seen[title] = true
	}
	cards = lo.Filter(cards, func(card response_models.ActivityCard, _ int) bool {
		if !card.IsDining() {
			return true
		}
		key := strings.ToLower(strings.TrimSpace(card.Title))
		if seen[key] {
			report.RemovedRestaurants = append(report.RemovedRestaurants, card.Title)
			return false
		}
		seen[key] = true
		return true
	})
	if len(report.RemovedRestaurants) > 0 {
		log.Printf("repair: removed %d duplicate restaurant card(s): %v", len(report.RemovedRestaurants), report.RemovedRestaurants)
	}

	// Pass: duplicate start times among cards that have one.
	times := lo.FilterMap(cards, func(card response_models.ActivityCard, _ int) (int, bool) {
		m := utils.ToMinutes(card.StartTime)
		return m, m >= 0
	})
	if len(lo.Uniq(times)) < len(times) {
		report.DuplicateStartTimes = true
		log.Printf("repair: duplicate start times detected, re-sorting day")
	}

	// Pass: chronological monotonicity. The cursor is the previous card's
	// start plus its duration (60 when missing).
	cursor := -1
	for _, card := range cards {
		start := utils.ToMinutes(card.StartTime)
		if start < 0 {
			continue
		}
		if cursor >= 0 && start < cursor {
			report.TimingIssues = true
			log.Printf("repair: card %q starts at %s before expected %s, re-sorting day", card.Title, card.StartTime, utils.ToClock(cursor))
			break
		}
		gap := card.DurationMinutes
		if gap <= 0 {
			gap = monotonicDefaultGap
		}
		cursor = start + gap
	}

	if report.DuplicateStartTimes || report.TimingIssues {
		sortCardsByStart(cards)
	}

	return cards, report
}

// coerceCards converts untrusted raw cards into validated shapes: empty
// titles are dropped, unparseable start times cleared, durations clamped,
// tags truncated. Unknown types pass through, the enum is open.
func coerceCards(raw []gen_models.RawCard) []response_models.ActivityCard {
	cards := make([]response_models.ActivityCard, 0, len(raw))
	for _, rc := range raw {
		title := strings.TrimSpace(rc.Title)
		if title == "" {
			log.Printf("repair: dropping card with empty title")
			continue
		}

		cardType := strings.ToLower(strings.TrimSpace(rc.Type))
		if cardType == "" {
			cardType = response_models.CardActivity
		}

		start := rc.StartTime
		if utils.ToMinutes(start) < 0 {
			start = ""
		}

		duration := rc.DurationMinutes
		if duration < 0 {
			duration = 0
		}
		if duration > maxCardMinutes {
			duration = maxCardMinutes
		}

		tags := rc.Tags
		if len(tags) > maxCardTags {
			tags = tags[:maxCardTags]
		}

		cards = append(cards, response_models.ActivityCard{
			Type:            cardType,
			Title:           title,
			StartTime:       start,
			DurationMinutes: duration,
			Location:        strings.TrimSpace(rc.Location),
			Tags:            tags,
			Cost:            rc.Cost,
		})
	}
	return cards
}

// sortCardsByStart stable-sorts the timed cards by start time while untimed
// cards keep their slot. Timed cards are pulled out, sorted among themselves,
// and written back over the timed positions, so an untimed card sitting
// between two out-of-order timed ones can never block the reorder.
func sortCardsByStart(cards []response_models.ActivityCard) {
	timedIdx := make([]int, 0, len(cards))
	timed := make([]response_models.ActivityCard, 0, len(cards))
	for i, c := range cards {
		if utils.ToMinutes(c.StartTime) >= 0 {
			timedIdx = append(timedIdx, i)
			timed = append(timed, c)
		}
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return utils.ToMinutes(timed[i].StartTime) < utils.ToMinutes(timed[j].StartTime)
	})

	for k, i := range timedIdx {
		cards[i] = timed[k]
	}
}
