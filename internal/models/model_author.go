package models

import (
	"time"

	"gorm.io/datatypes"
)

type Author struct {
	ID         string                       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string                       `gorm:"column:name;type:varchar(128);not null;index" json:"name"`
	Country    string                       `gorm:"column:country;type:varchar(64);index" json:"country"`
	Avatar     string                       `gorm:"column:avatar;type:text" json:"avatar"`
	Bio        string                       `gorm:"column:bio;type:text" json:"bio"`
	Genres     datatypes.JSONSlice[string]  `gorm:"column:genres;type:jsonb;default:'[]'" json:"genres"`
	Rating     float64                      `gorm:"column:rating;not null;default:0" json:"rating"`
	BooksCount int                          `gorm:"column:books_count;not null;default:0" json:"booksCount"`
	Followers  int64                        `gorm:"column:followers;not null;default:0" json:"followers"`
	CreatedAt  time.Time                    `json:"createdAt"`
	UpdatedAt  time.Time                    `json:"updatedAt"`
}

func (Author) TableName() string {
	return "authors"
}

// Follow links a user to an author they follow. One row per pair.
type Follow struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_follow_user_author,priority:1" json:"userId"`
	AuthorID  string    `gorm:"column:author_id;type:uuid;not null;uniqueIndex:uniq_follow_user_author,priority:2;index" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

type Favorite struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_favorite_user_novel,priority:1" json:"userId"`
	NovelID   string    `gorm:"column:novel_id;type:uuid;not null;uniqueIndex:uniq_favorite_user_novel,priority:2" json:"novelId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}
