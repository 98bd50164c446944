package domain

import (
	"time"
)

// User is an account holder. Nickname and email are both unique.
type User struct {
	ID           string    `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	Nickname     string    `bson:"nickname" gorm:"uniqueIndex;size:30;not null" json:"nickname"`
	Email        string    `bson:"email" gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName    string    `bson:"firstName,omitempty" gorm:"size:150" json:"first_name"`
	LastName     string    `bson:"lastName,omitempty" gorm:"size:150" json:"last_name"`
	PasswordHash string    `bson:"passwordHash" gorm:"not null" json:"-"` // Never expose this via JSON
	IsVerified   bool      `bson:"isVerified" gorm:"not null;default:false" json:"is_verified"`
	AvatarKey    string    `bson:"avatarKey,omitempty" gorm:"size:512" json:"-"` // S3 object key, empty when no avatar
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}

// HasAvatar reports whether an avatar object key has been recorded for the user.
func (u *User) HasAvatar() bool {
	return u.AvatarKey != ""
}

// Profile holds body metrics. A user has at most one profile.
type Profile struct {
	ID        string    `bson:"_id" gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `bson:"userId" gorm:"uniqueIndex;type:varchar(36);not null" json:"user_id"`
	Age       int       `bson:"age" json:"age"`       // years, 1-120
	Height    float64   `bson:"height" json:"height"` // cm, 30-250
	Weight    float64   `bson:"weight" json:"weight"` // kg, 2-300
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
