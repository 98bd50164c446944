// Package planner turns a workout preference into a generation prompt and
// turns the generator's reply back into a validated plan document.
package planner

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// PlanDocument is the structure the generator must reply with.
type PlanDocument struct {
	Name            string             `json:"name" jsonschema_description:"Short title of the plan" validate:"required,max=255"`
	Description     string             `json:"description" jsonschema_description:"What the plan is for and how to follow it" validate:"max=2000"`
	ProgramDuration Text               `json:"program_duration" jsonschema_description:"Total length of the program, e.g. 8 weeks" validate:"required,max=255"`
	WeeklySchedule  []ScheduleDocument `json:"weekly_schedule" jsonschema_description:"Training days of one week, in order" validate:"required,min=1,max=14,dive"`
}

type ScheduleDocument struct {
	Day       Text               `json:"day" jsonschema_description:"Day label, e.g. Monday or Day 1" validate:"required,max=255"`
	Focus     Text               `json:"focus" jsonschema_description:"Muscle groups or goal of the day" validate:"required,max=255"`
	Exercises []ExerciseDocument `json:"exercises" validate:"required,min=1,max=30,dive"`
}

type ExerciseDocument struct {
	Name  string `json:"name" validate:"required,max=255"`
	Sets  Text   `json:"sets" jsonschema_description:"Number of sets, e.g. 3" validate:"required,max=255"`
	Reps  Text   `json:"reps" jsonschema_description:"Repetitions or duration, e.g. 8-12 or 30 seconds" validate:"required,max=255"`
	Rest  Text   `json:"rest" jsonschema_description:"Rest between sets, e.g. 60 seconds" validate:"max=255"`
	Notes Text   `json:"notes" jsonschema_description:"Technique cues, may be empty" validate:"max=2000"`
}

// Text is a free-form scalar. Generators often emit counts as bare numbers
// ("sets": 3), so a JSON number is accepted and kept in its literal form.
// null, booleans, objects and arrays are rejected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
		return nil
	default:
		return fmt.Errorf("expected a string or number, got %s", literalKind(c))
	}
}

func (t Text) String() string { return string(t) }

// JSONSchema advertises Text as a plain string.
func (Text) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

func literalKind(c byte) string {
	switch c {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return fmt.Sprintf("%q", c)
	}
}

var planSchema = generateSchema[PlanDocument]()

func generateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// Schema returns the JSON schema of PlanDocument.
func Schema() *jsonschema.Schema {
	return planSchema
}
