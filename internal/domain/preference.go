package domain

import (
	"time"
)

// ExperienceLevel is the self-reported training experience of a user.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceMiddle       ExperienceLevel = "middle"
	ExperienceProfessional ExperienceLevel = "professional"
)

// Valid reports whether l is one of the known levels.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceMiddle, ExperienceProfessional:
		return true
	}
	return false
}

// Preference describes what a user wants from a generated plan.
// Gender, Age, Height and Weight are optional; nil means the user did not say.
type Preference struct {
	ID                 string          `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID             string          `bson:"userId" gorm:"index;type:varchar(36);not null" json:"-"`
	Gender             string          `bson:"gender,omitempty" gorm:"size:30" json:"gender,omitempty"`
	Age                *int            `bson:"age,omitempty" json:"age,omitempty"`
	Height             *float64        `bson:"height,omitempty" json:"height,omitempty"`
	Weight             *float64        `bson:"weight,omitempty" json:"weight,omitempty"`
	Goal               string          `bson:"goal" gorm:"size:150;not null" json:"goal"`
	ExperienceLevel    ExperienceLevel `bson:"experienceLevel" gorm:"size:20;not null" json:"experience_level"`
	WorkoutFrequency   int             `bson:"workoutFrequency" gorm:"not null" json:"workout_frequency"` // sessions per week, 1-7
	PreferredExercises string          `bson:"preferredExercises" gorm:"size:150;not null" json:"prefer_workout_ex"`
	ProgramMonths      int             `bson:"programMonths" gorm:"not null" json:"time_of_program"` // 1-12
	CreatedAt          time.Time       `bson:"createdAt" json:"created_at"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updated_at"`
}
