package models

import (
	"time"

	"github.com/phamdangkhoamet/dkstory/pkg/types"
	"gorm.io/datatypes"
)

type ReportAttachment struct {
	Name string `json:"name"`
	// URL is either a link or a base64 data URL supplied by the client.
	URL string `json:"url"`
}

// Report is a moderation complaint about a novel, a chapter or anything else.
type Report struct {
	ID          string                                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Type        types.ReportType                      `gorm:"column:type;type:varchar(32);not null;index" json:"type"`
	NovelID     *string                               `gorm:"column:novel_id;type:varchar(64)" json:"novelId"`
	ChapterNo   *int                                  `gorm:"column:chapter_no" json:"chapterNo"`
	Reason      string                                `gorm:"column:reason;type:varchar(255)" json:"reason"`
	Description string                                `gorm:"column:description;type:text;not null" json:"description"`
	Attachments datatypes.JSONSlice[ReportAttachment] `gorm:"column:attachments;type:jsonb" json:"attachments"`
	UserID      *string                               `gorm:"column:user_id;type:uuid" json:"userId"`
	Status      types.ReportStatus                    `gorm:"column:status;type:varchar(32);not null;default:pending;index" json:"status"`
	CreatedAt   time.Time                             `json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`
}

func (Report) TableName() string {
	return "reports"
}
