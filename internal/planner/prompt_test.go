package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"strings"
	"testing"
)

func fullPreference() *domain.Preference {
	age, height, weight := 29, 181.5, 77.0
	return &domain.Preference{
		Gender:             "male",
		Age:                &age,
		Height:             &height,
		Weight:             &weight,
		Goal:               "run a half marathon",
		ExperienceLevel:    domain.ExperienceMiddle,
		WorkoutFrequency:   4,
		PreferredExercises: "running and bodyweight",
		ProgramMonths:      3,
	}
}

func TestBuildPromptRendersEveryField(t *testing.T) {
	prompt, err := BuildPrompt(fullPreference())
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for _, want := range []string{
		"Gender: male.",
		"Age: 29 years.",
		"Height: 181.5 cm.",
		"Weight: 77 kg.",
		`Goal: "run a half marathon".`,
		"Experience level: intermediate.",
		"Workout frequency: 4 sessions per week.",
		`Preferred exercises: "running and bodyweight".`,
		"Program duration: 3 months.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, Unspecified+".") {
		t.Errorf("fully specified preference rendered a placeholder")
	}
}

func TestBuildPromptMarksMissingFields(t *testing.T) {
	pref := &domain.Preference{
		Goal:               "get fit",
		ExperienceLevel:    domain.ExperienceBeginner,
		WorkoutFrequency:   2,
		PreferredExercises: "swimming",
		ProgramMonths:      1,
	}
	prompt, err := BuildPrompt(pref)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for _, label := range []string{"Gender", "Age", "Height", "Weight"} {
		if want := "- " + label + ": " + Unspecified + "."; !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// No line may end with an empty substitution.
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasSuffix(line, ": .") || strings.HasSuffix(line, `: "".`) {
			t.Errorf("empty substitution in %q", line)
		}
	}
}

func TestBuildPromptContainsContract(t *testing.T) {
	prompt, err := BuildPrompt(fullPreference())
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for _, want := range []string{
		`"weekly_schedule"`,
		`"program_duration"`,
		`"exercises"`,
		`"additionalProperties": false`,
		"Full Body Strength Foundation",
		"JSON document only",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExampleDocumentIsValid(t *testing.T) {
	if err := validate.Struct(&exampleDocument); err != nil {
		t.Fatalf("example document fails validation: %v", err)
	}
}
