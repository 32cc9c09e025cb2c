package models

import "time"

type Novel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Genre       string    `gorm:"column:genre;type:varchar(64);index" json:"genre"`
	Cover       string    `gorm:"column:cover;type:text" json:"cover"`
	AuthorID    *string   `gorm:"column:author_id;type:uuid;index" json:"authorId"`
	AuthorName  string    `gorm:"column:author_name;type:varchar(128)" json:"author"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Novel) TableName() string {
	return "novels"
}

// Chapter is one numbered installment of a novel. No is unique per novel.
type Chapter struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NovelID   string    `gorm:"column:novel_id;type:uuid;not null;uniqueIndex:uniq_novel_chapter_no,priority:1" json:"novelId"`
	No        int       `gorm:"column:no;not null;uniqueIndex:uniq_novel_chapter_no,priority:2" json:"no"`
	Title     string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Chapter) TableName() string {
	return "chapters"
}
