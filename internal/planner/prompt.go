package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Unspecified is rendered for optional preference fields the user left empty.
const Unspecified = "unspecified"

var exampleDocument = PlanDocument{
	Name:            "Full Body Strength Foundation",
	Description:     "Three full body sessions per week focused on the main compound lifts.",
	ProgramDuration: "8 weeks",
	WeeklySchedule: []ScheduleDocument{
		{
			Day:   "Monday",
			Focus: "Lower body",
			Exercises: []ExerciseDocument{
				{Name: "Back Squat", Sets: "4", Reps: "6-8", Rest: "120 seconds", Notes: "Keep the chest up"},
				{Name: "Romanian Deadlift", Sets: "3", Reps: "10", Rest: "90 seconds", Notes: ""},
			},
		},
		{
			Day:   "Thursday",
			Focus: "Upper body",
			Exercises: []ExerciseDocument{
				{Name: "Bench Press", Sets: "4", Reps: "6-8", Rest: "120 seconds", Notes: ""},
				{Name: "Plank", Sets: "3", Reps: "45 seconds", Rest: "60 seconds", Notes: "Brace the core"},
			},
		},
	},
}

var experienceLabels = map[domain.ExperienceLevel]string{
	domain.ExperienceBeginner:     "beginner",
	domain.ExperienceMiddle:       "intermediate",
	domain.ExperienceProfessional: "professional",
}

// BuildPrompt renders pref into the generation request. Every preference
// field appears in the text, empty optional fields as Unspecified.
func BuildPrompt(pref *domain.Preference) (string, error) {
	schemaJSON, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan schema: %w", err)
	}
	exampleJSON, err := json.MarshalIndent(exampleDocument, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal example plan: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Create a personal workout plan for the user described below.\n\n")

	sb.WriteString("User preferences:\n")
	sb.WriteString(fmt.Sprintf("- Gender: %s.\n", textOr(pref.Gender)))
	sb.WriteString(fmt.Sprintf("- Age: %s.\n", intOr(pref.Age, " years")))
	sb.WriteString(fmt.Sprintf("- Height: %s.\n", floatOr(pref.Height, " cm")))
	sb.WriteString(fmt.Sprintf("- Weight: %s.\n", floatOr(pref.Weight, " kg")))
	sb.WriteString(fmt.Sprintf("- Goal: %s.\n", quotedOr(pref.Goal)))
	sb.WriteString(fmt.Sprintf("- Experience level: %s.\n", experienceOr(pref.ExperienceLevel)))
	sb.WriteString(fmt.Sprintf("- Workout frequency: %s.\n", countOr(pref.WorkoutFrequency, " sessions per week")))
	sb.WriteString(fmt.Sprintf("- Preferred exercises: %s.\n", quotedOr(pref.PreferredExercises)))
	sb.WriteString(fmt.Sprintf("- Program duration: %s.\n", countOr(pref.ProgramMonths, " months")))
	sb.WriteString("\n")

	sb.WriteString("The weekly schedule must contain one entry per training day, matching the workout frequency.\n\n")

	sb.WriteString("The reply must be a single JSON document that matches this JSON schema:\n")
	sb.Write(schemaJSON)
	sb.WriteString("\n\n")

	sb.WriteString("Example of a valid reply:\n")
	sb.Write(exampleJSON)
	sb.WriteString("\n\n")

	sb.WriteString("Reply with the JSON document only. Do not add explanations, comments, markdown or code fences.")
	return sb.String(), nil
}

func textOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unspecified
	}
	return s
}

func quotedOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unspecified
	}
	return strconv.Quote(s)
}

func intOr(v *int, unit string) string {
	if v == nil {
		return Unspecified
	}
	return strconv.Itoa(*v) + unit
}

func floatOr(v *float64, unit string) string {
	if v == nil {
		return Unspecified
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func countOr(n int, unit string) string {
	if n <= 0 {
		return Unspecified
	}
	return strconv.Itoa(n) + unit
}

func experienceOr(level domain.ExperienceLevel) string {
	if label, ok := experienceLabels[level]; ok {
		return label
	}
	return textOr(string(level))
}
