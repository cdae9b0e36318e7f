package model

import "time"

// Identifiable is implemented by every persisted type.
type Identifiable interface {
	GetID() int
}

// Entity carries the primary key shared by all tables.
type Entity struct {
	ID int `json:"id" gorm:"primaryKey"`
}

func (e Entity) GetID() int {
	return e.ID
}

type Article struct {
	Entity
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"not null;uniqueIndex"`
	Author      string     `json:"author"`
	Tags        string     `json:"tags"` // comma separated
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName pins the table used by gorm and by the article repository.
func (Article) TableName() string {
	return "articles"
}

// Principal is the authenticated caller carried in access tokens.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
