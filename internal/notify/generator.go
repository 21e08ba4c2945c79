package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/pkg/logger"
	"github.com/vitalog/vitalog/pkg/metrics"
)

// Generator runs the enabled strategies for one user in fixed order and
// filters the combined output through the deduplication cache.
type Generator struct {
	strategies []Strategy
	dedup      *DedupCache
	log        *zap.Logger
}

// DefaultStrategies returns the built-in strategy set in evaluation order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		MealStrategy{},
		HydrationStrategy{},
		ExerciseStrategy{},
		ProgressStrategy{},
		ActivityStrategy{},
	}
}

// NewGenerator constructs a Generator. When no strategies are supplied the
// default set is used.
func NewGenerator(dedup *DedupCache, strategies ...Strategy) *Generator {
	if dedup == nil {
		dedup = NewDedupCache(DefaultDedupWindow)
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Generator{
		strategies: strategies,
		dedup:      dedup,
		log:        logger.WithModule("generator"),
	}
}

// GenerateAll evaluates the enabled strategies for one user. A disabled
// strategy is never invoked. A failing strategy contributes zero candidates
// and never aborts the others. Suppressed duplicates are dropped; surviving
// candidates are marked fired and returned in strategy order.
func (g *Generator) GenerateAll(profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) []Candidate {
	var combined []Candidate

	for _, strategy := range g.strategies {
		if !strategyEnabled(settings, strategy.Name()) {
			continue
		}

		candidates, err := g.evaluate(strategy, profile, snapshot, settings, now)
		if err != nil {
			metrics.StrategyFailures.WithLabelValues(strategy.Name()).Inc()
			g.log.Warn("strategy evaluation failed",
				zap.String("strategy", strategy.Name()),
				zap.String("user_id", profile.UserID),
				zap.Error(err),
			)
			continue
		}
		combined = append(combined, candidates...)
	}

	result := make([]Candidate, 0, len(combined))
	for _, candidate := range combined {
		if g.dedup.ShouldSuppress(profile.UserID, candidate.Type, candidate.Title, now) {
			metrics.RemindersSuppressed.WithLabelValues(candidate.Type).Inc()
			continue
		}
		g.dedup.MarkFired(profile.UserID, candidate.Type, candidate.Title, now)
		metrics.RemindersGenerated.WithLabelValues(candidate.Type).Inc()
		result = append(result, candidate)
	}

	return result
}

// evaluate runs one strategy, converting panics into errors so a misbehaving
// strategy cannot take down the sweep.
func (g *Generator) evaluate(strategy Strategy, profile UserProfile, snapshot ContextSnapshot, settings Settings, now time.Time) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("strategy panic: %v", r)
		}
	}()

	return strategy.Evaluate(profile, snapshot, settings, now)
}

// Dedup exposes the generator's cache for maintenance eviction.
func (g *Generator) Dedup() *DedupCache {
	return g.dedup
}

func strategyEnabled(settings Settings, name string) bool {
	switch name {
	case models.NotificationTypeMeal:
		return settings.MealReminders
	case models.NotificationTypeHydration:
		return settings.HydrationReminders
	case models.NotificationTypeExercise:
		return settings.ExerciseReminders
	case models.NotificationTypeProgress:
		return settings.ProgressReminders
	case models.NotificationTypeActivity:
		return settings.ActivityReminders
	default:
		return false
	}
}
