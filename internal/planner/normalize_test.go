package planner

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const validPlan = `{
  "name": "Strength Block",
  "description": "Two days a week",
  "program_duration": "8 weeks",
  "weekly_schedule": [
    {"day": "Monday", "focus": "Legs", "exercises": [
      {"name": "Squat", "sets": "3", "reps": "8", "rest": "90s", "notes": ""},
      {"name": "Lunge", "sets": "3", "reps": "10", "rest": "60s", "notes": ""},
      {"name": "Calf Raise", "sets": "4", "reps": "15", "rest": "45s", "notes": "slow"}
    ]},
    {"day": "Thursday", "focus": "Upper", "exercises": [
      {"name": "Bench Press", "sets": "3", "reps": "8", "rest": "90s", "notes": ""},
      {"name": "Row", "sets": "3", "reps": "10", "rest": "60s", "notes": ""},
      {"name": "Plank", "sets": "3", "reps": "30 seconds", "rest": "30s", "notes": ""}
    ]}
  ]
}`

func TestNormalizeFencedMatchesUnwrapped(t *testing.T) {
	plain, err := Normalize(validPlan)
	if err != nil {
		t.Fatalf("Normalize plain: %v", err)
	}
	for name, raw := range map[string]string{
		"json fence":    "```json\n" + validPlan + "\n```",
		"bare fence":    "```\n" + validPlan + "\n```",
		"padded":        "\n\n  " + validPlan + "  \n",
		"inline fence":  "```json" + validPlan + "```",
		"uppercase tag": "```JSON\n" + validPlan + "\n```\n",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize(raw)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if !reflect.DeepEqual(got, plain) {
				t.Fatalf("fenced document differs from plain one")
			}
		})
	}
	if len(plain.WeeklySchedule) != 2 || len(plain.WeeklySchedule[1].Exercises) != 3 {
		t.Fatalf("unexpected shape: %+v", plain)
	}
	if plain.WeeklySchedule[0].Exercises[2].Name != "Calf Raise" {
		t.Fatalf("exercise order not preserved")
	}
}

func TestNormalizeAcceptsNumericText(t *testing.T) {
	raw := `{"name":"N","program_duration":12,"weekly_schedule":[{"day":1,"focus":"Legs","exercises":[{"name":"Squat","sets":3,"reps":12,"rest":60}]}]}`
	doc, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	ex := doc.WeeklySchedule[0].Exercises[0]
	if ex.Sets != "3" || ex.Reps != "12" || ex.Rest != "60" || doc.ProgramDuration != "12" {
		t.Fatalf("numbers not kept as text: %+v %q", ex, doc.ProgramDuration)
	}
	if doc.WeeklySchedule[0].Day != "1" {
		t.Fatalf("day = %q", doc.WeeklySchedule[0].Day)
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		detail string
	}{
		{"empty", "   ", "empty response"},
		{"fence only", "```json\n```", "empty response"},
		{"truncated", validPlan[:len(validPlan)/2], "decode"},
		{"prose", "Here is your plan: " + validPlan, "decode"},
		{"trailing data", validPlan + `{"extra":true}`, "unexpected data"},
		{"unknown field", `{"name":"N","program_duration":"1","weekly_schedule":[],"preferences":"abc"}`, "unknown field"},
		{"unknown nested field", strings.Replace(validPlan, `"notes": "slow"`, `"notes": "slow", "weight": "20kg"`, 1), "unknown field"},
		{"missing name", `{"program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[{"name":"a","sets":"1","reps":"1"}]}]}`, "name: is required"},
		{"empty schedule", `{"name":"N","program_duration":"1 week","weekly_schedule":[]}`, "weekly_schedule: needs at least 1"},
		{"no exercises", `{"name":"N","program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[]}]}`, "weekly_schedule[0].exercises"},
		{"missing reps", `{"name":"N","program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[{"name":"a","sets":"1"}]}]}`, "weekly_schedule[0].exercises[0].reps: is required"},
		{"null sets", `{"name":"N","program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[{"name":"a","sets":null,"reps":"1"}]}]}`, "null"},
		{"object sets", `{"name":"N","program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[{"name":"a","sets":{"n":3},"reps":"1"}]}]}`, "object"},
		{"bool reps", `{"name":"N","program_duration":"1 week","weekly_schedule":[{"day":"Mon","focus":"x","exercises":[{"name":"a","sets":"3","reps":true}]}]}`, "boolean"},
		{"top level array", `[` + validPlan + `]`, "decode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Normalize(tc.raw)
			if doc != nil {
				t.Fatalf("expected no document, got %+v", doc)
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("err = %v (%T), want *MalformedError", err, err)
			}
			if !strings.Contains(me.Detail, tc.detail) {
				t.Fatalf("detail %q does not mention %q", me.Detail, tc.detail)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{}\n```": "{}",
		"```\n{}```":       "{}",
		"{}":               "{}",
		"  {}\n":           "{}",
	}
	for in, want := range cases {
		if got := StripFences(in); got != want {
			t.Errorf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
