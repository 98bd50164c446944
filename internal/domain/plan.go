package domain

import (
	"time"
)

// Plan is a generated workout program. Plans are only ever created by the
// generation pipeline, together with their schedules and exercises.
type Plan struct {
	ID              string           `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string           `bson:"userId" gorm:"index;type:varchar(36);not null" json:"-"`
	PreferenceID    string           `bson:"preferenceId" gorm:"index;type:varchar(36);not null" json:"preference_id"`
	Name            string           `bson:"name" gorm:"size:255;not null" json:"name"`
	Description     string           `bson:"description,omitempty" json:"description"`
	ProgramDuration string           `bson:"programDuration" gorm:"size:255" json:"program_duration"`
	StartDate       time.Time        `bson:"startDate" json:"start_date"`
	EndDate         time.Time        `bson:"endDate" json:"end_date"`
	CreatedByAI     bool             `bson:"createdByAi" json:"created_by_ai"`
	CreatedAt       time.Time        `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updated_at"`
	WeeklySchedules []WeeklySchedule `bson:"-" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"weekly_schedule"`
}

// WeeklySchedule is one training day of a plan. Position keeps the order the
// generator produced; day labels are free text and are never sorted.
type WeeklySchedule struct {
	ID        string     `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	PlanID    string     `bson:"planId" gorm:"index;type:varchar(36);not null" json:"-"`
	Position  int        `bson:"position" gorm:"not null" json:"-"`
	Day       string     `bson:"day" gorm:"size:255;not null" json:"day"`
	Focus     string     `bson:"focus" gorm:"size:255" json:"focus"`
	CreatedAt time.Time  `bson:"createdAt" json:"-"`
	Exercises []Exercise `bson:"-" gorm:"foreignKey:WeeklyScheduleID;constraint:OnDelete:CASCADE" json:"exercises"`
}
