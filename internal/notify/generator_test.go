package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name       string
	candidates []Candidate
	err        error
	panicWith  any
	calls      int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Evaluate(UserProfile, ContextSnapshot, Settings, time.Time) ([]Candidate, error) {
	s.calls++
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.candidates, s.err
}

func TestGeneratorSkipsDisabledStrategies(t *testing.T) {
	hydration := &stubStrategy{name: "hydration", candidates: []Candidate{{Type: "hydration", Title: "drink"}}}

	settings := testSettings()
	settings.HydrationReminders = false

	generator := NewGenerator(NewDedupCache(time.Hour), hydration)
	result := generator.GenerateAll(testProfile(), ContextSnapshot{}, settings, clock(9, 0))

	require.Empty(t, result)
	require.Zero(t, hydration.calls, "disabled strategy must never be invoked")
}

func TestGeneratorIsolatesStrategyFailures(t *testing.T) {
	failing := &stubStrategy{name: "meal", err: errors.New("boom")}
	healthy := &stubStrategy{name: "exercise", candidates: []Candidate{{Type: "exercise", Title: "move"}}}

	generator := NewGenerator(NewDedupCache(time.Hour), failing, healthy)
	result := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), clock(9, 0))

	require.Len(t, result, 1)
	require.Equal(t, "exercise", result[0].Type)
}

func TestGeneratorRecoversFromStrategyPanic(t *testing.T) {
	panicking := &stubStrategy{name: "progress", panicWith: "nil map write"}
	healthy := &stubStrategy{name: "activity", candidates: []Candidate{{Type: "activity", Title: "run"}}}

	generator := NewGenerator(NewDedupCache(time.Hour), panicking, healthy)
	result := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), clock(9, 0))

	require.Len(t, result, 1)
	require.Equal(t, "activity", result[0].Type)
}

func TestGeneratorFiltersThroughDedupCache(t *testing.T) {
	strategy := &stubStrategy{name: "hydration", candidates: []Candidate{{Type: "hydration", Title: "drink"}}}

	generator := NewGenerator(NewDedupCache(time.Hour), strategy)
	now := clock(9, 0)

	first := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), now)
	require.Len(t, first, 1)

	second := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), now.Add(10*time.Minute))
	require.Empty(t, second, "identical reminder within the window is suppressed")

	third := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), now.Add(61*time.Minute))
	require.Len(t, third, 1, "reminder fires again once the window has passed")
}

func TestGeneratorPreservesStrategyOrder(t *testing.T) {
	meal := &stubStrategy{name: "meal", candidates: []Candidate{{Type: "meal", Title: "eat"}}}
	activity := &stubStrategy{name: "activity", candidates: []Candidate{
		{Type: "activity", Title: "run"},
		{Type: "activity", Title: "yoga"},
	}}

	generator := NewGenerator(NewDedupCache(time.Hour), meal, activity)
	result := generator.GenerateAll(testProfile(), ContextSnapshot{}, testSettings(), clock(9, 0))

	require.Len(t, result, 3)
	require.Equal(t, "meal", result[0].Type)
	require.Equal(t, "run", result[1].Title)
	require.Equal(t, "yoga", result[2].Title)
}

func TestGeneratorUsesDefaultStrategies(t *testing.T) {
	generator := NewGenerator(nil)
	require.Len(t, generator.strategies, 5)

	order := []string{"meal", "hydration", "exercise", "progress", "activity"}
	for i, strategy := range generator.strategies {
		require.Equal(t, order[i], strategy.Name())
	}
}
