package notify

import "strings"

// Localized meal and exercise suggestions keyed by lowercase country name.
// Unknown countries fall back to the "default" entry.

var mealSuggestions = map[string]map[string][]string{
	"default": {
		"breakfast": {"oatmeal with fruit", "scrambled eggs on toast", "greek yogurt with granola"},
		"lunch":     {"grilled chicken salad", "lentil soup with bread", "tuna sandwich"},
		"dinner":    {"baked salmon with vegetables", "stir-fried tofu with rice", "turkey chili"},
	},
	"vietnam": {
		"breakfast": {"pho bo", "banh mi op la", "xoi man"},
		"lunch":     {"com tam", "bun cha", "goi cuon"},
		"dinner":    {"canh chua with rice", "ca kho to", "bo luc lac"},
	},
	"japan": {
		"breakfast": {"tamago kake gohan", "miso soup with rice", "natto on rice"},
		"lunch":     {"soba noodles", "onigiri with salmon", "chicken teriyaki bowl"},
		"dinner":    {"grilled mackerel set", "sukiyaki", "oyakodon"},
	},
	"mexico": {
		"breakfast": {"huevos rancheros", "chilaquiles", "fruit with yogurt"},
		"lunch":     {"chicken tinga tacos", "pozole", "nopales salad"},
		"dinner":    {"fish veracruz", "enchiladas verdes", "black bean soup"},
	},
	"italy": {
		"breakfast": {"yogurt with muesli", "ricotta on wholegrain bread", "fruit salad"},
		"lunch":     {"minestrone", "caprese salad with bread", "pasta e fagioli"},
		"dinner":    {"grilled sea bass", "chicken cacciatore", "risotto with vegetables"},
	},
}

var exerciseSuggestions = map[string][]string{
	"default": {"a brisk 30-minute walk", "a bodyweight circuit", "a bike ride"},
	"vietnam": {"an evening walk by the lake", "a badminton session", "group aerobics in the park"},
	"japan":   {"radio taiso stretching", "a jog around the block", "a swim at the local pool"},
	"mexico":  {"a football kickabout", "a dance session", "a hill walk"},
	"italy":   {"a passeggiata", "a cycling loop", "a swim"},
}

// suggestMeals returns up to max localized meal ideas for the meal name.
func suggestMeals(country, meal string, max int) []string {
	byMeal, ok := mealSuggestions[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		byMeal = mealSuggestions["default"]
	}

	ideas := byMeal[strings.ToLower(meal)]
	if len(ideas) == 0 {
		ideas = mealSuggestions["default"][strings.ToLower(meal)]
	}
	if max > 0 && len(ideas) > max {
		ideas = ideas[:max]
	}
	return ideas
}

// suggestExercise returns one localized activity idea.
func suggestExercise(country string) string {
	ideas, ok := exerciseSuggestions[strings.ToLower(strings.TrimSpace(country))]
	if !ok || len(ideas) == 0 {
		ideas = exerciseSuggestions["default"]
	}
	return ideas[0]
}
