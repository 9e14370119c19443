package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Language     *string   `db:"language"`
	Level        *string   `db:"level"`
	Reason       *string   `db:"reason"`
	DailyGoal    *int      `db:"daily_goal"`
	AvatarURL    *string   `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Preferences are the learning settings a user picks during onboarding.
// A nil field has never been set.
type Preferences struct {
	Language  *string `json:"language"`
	Level     *string `json:"level"`
	Reason    *string `json:"reason"`
	DailyGoal *int    `json:"daily_goal"`
}

func (p Preferences) IsEmpty() bool {
	return p.Language == nil && p.Level == nil && p.Reason == nil && p.DailyGoal == nil
}

// UserView is the outward representation of a user. It never carries the
// password hash.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Language  *string   `json:"language"`
	Level     *string   `json:"level"`
	Reason    *string   `json:"reason"`
	DailyGoal *int      `json:"daily_goal"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Preferences() Preferences {
	return Preferences{
		Language:  u.Language,
		Level:     u.Level,
		Reason:    u.Reason,
		DailyGoal: u.DailyGoal,
	}
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Language:  u.Language,
		Level:     u.Level,
		Reason:    u.Reason,
		DailyGoal: u.DailyGoal,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
