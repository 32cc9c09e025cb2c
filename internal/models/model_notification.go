package models

import "time"

type Notification struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index:idx_notification_user_created,priority:1" json:"userId"`
	Title     string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	Link      string    `gorm:"column:link;type:text" json:"link"`
	Read      bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index:idx_notification_user_created,priority:2" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
