package models

import "time"

// News is a front-page announcement managed through the admin back-office.
type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the News model.
func (n News) TableName() string {
	return "news"
}
