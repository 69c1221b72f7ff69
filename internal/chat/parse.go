// internal/chat/parse.go
package chat

import (
	"regexp"
	"strconv"
	"strings"

	"chatfit/internal/fitness"
	"chatfit/internal/models"
)

var (
	durationPattern      = regexp.MustCompile(`(\d+)\s*(min|minute|minutes|hour|hours)`)
	minutesPattern       = regexp.MustCompile(`(\d+)\s*(min|minute|minutes)`)
	calorieBudgetPattern = regexp.MustCompile(`(\d+)\s*calories`)
)

// workoutSynonyms maps phrases people actually type to catalog names.
// Checked in order after the catalog's canonical names fail to match.
var workoutSynonyms = []struct {
	phrase    string
	canonical string
}{
	{"ran", "Running"},
	{"jogged", "Running"},
	{"run", "Running"},
	{"jog", "Running"},
	{"running", "Running"},
	{"jogging", "Running"},
	{"walked", "Walking"},
	{"walking", "Walking"},
	{"walk", "Walking"},
	{"biked", "Cycling"},
	{"cycling", "Cycling"},
	{"bike", "Cycling"},
	{"biking", "Cycling"},
	{"cycle", "Cycling"},
	{"swam", "Swimming"},
	{"swimming", "Swimming"},
	{"swim", "Swimming"},
	{"yoga", "Yoga"},
	{"pilates", "Pilates"},
	{"weight training", "Weight Training"},
	{"weights", "Weight Training"},
	{"lifted", "Weight Training"},
	{"lifting", "Weight Training"},
	{"strength training", "Weight Training"},
	{"hiit", "HIIT"},
	{"high intensity", "HIIT"},
	{"interval training", "HIIT"},
}

// extractExerciseType scans for a catalog exercise name first, then for
// common synonyms. Returns "" when nothing matches.
func extractExerciseType(msg string) string {
	for _, info := range fitness.Exercises {
		if strings.Contains(msg, strings.ToLower(info.Name)) {
			return info.Name
		}
	}

	for _, syn := range workoutSynonyms {
		if strings.Contains(msg, syn.phrase) {
			return syn.canonical
		}
	}

	return ""
}

// extractDuration finds a "<number> min/hour" phrase, converting hours
// to minutes. Returns false when the message has no duration.
func extractDuration(msg string) (int, bool) {
	match := durationPattern.FindStringSubmatch(msg)
	if match == nil {
		return 0, false
	}

	duration, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	if strings.Contains(match[2], "hour") {
		duration *= 60
	}
	return duration, true
}

// extractMinutes is the suggestion-side duration parse: minutes only,
// defaulting when absent.
func extractMinutes(msg string, fallback int) int {
	match := minutesPattern.FindStringSubmatch(msg)
	if match == nil {
		return fallback
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return fallback
	}
	return minutes
}

// extractIntensity maps effort words to an intensity, defaulting to
// moderate.
func extractIntensity(msg string) models.Intensity {
	if containsAny(msg, "easy", "light", "slow") {
		return models.LowIntensity
	}
	if containsAny(msg, "hard", "intense", "fast") {
		return models.HighIntensity
	}
	return models.ModerateIntensity
}

// extractCalorieBudget reads an "under N calories" style constraint.
func extractCalorieBudget(msg string) (int, bool) {
	if !containsAny(msg, "under", "less than") {
		return 0, false
	}
	match := calorieBudgetPattern.FindStringSubmatch(msg)
	if match == nil {
		return 0, false
	}
	budget, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return budget, true
}
