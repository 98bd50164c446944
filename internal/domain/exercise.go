package domain

import (
	"time"
)

// Exercise is a single entry of a weekly schedule. All prescription fields are
// free-form text as produced by the generator ("3", "8-12", "60s").
type Exercise struct {
	ID               string    `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	WeeklyScheduleID string    `bson:"weeklyScheduleId" gorm:"index;type:varchar(36);not null" json:"-"`
	PlanID           string    `bson:"planId" gorm:"index;type:varchar(36);not null" json:"-"` // Denormalized for cascade deletes
	Position         int       `bson:"position" gorm:"not null" json:"-"`
	Name             string    `bson:"name" gorm:"size:255;not null" json:"name"`
	Sets             string    `bson:"sets" gorm:"size:255" json:"sets"`
	Reps             string    `bson:"reps" gorm:"size:255" json:"reps"`
	Rest             string    `bson:"rest,omitempty" gorm:"size:255" json:"rest"`
	Notes            string    `bson:"notes,omitempty" json:"notes"`
	CreatedAt        time.Time `bson:"createdAt" json:"-"`
}
