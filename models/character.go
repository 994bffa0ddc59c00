package models

import "time"

// Character is a game character owned by a user account. Characters are
// created by the game server and are read-only in the portal.
type Character struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	Level      int       `json:"level"`
	Experience int64     `json:"experience"`
	Resets     int       `json:"resets"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Character model.
func (c Character) TableName() string {
	return "characters"
}
