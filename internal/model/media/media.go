package media

import "time"

// Photo uploaded image, referenced by users and courses
type Photo struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID        string    `gorm:"column:uid;type:varchar(36);not null;uniqueIndex" json:"uid"`
	Path       string    `gorm:"column:path;type:varchar(500);not null" json:"photo"`
	UploadedBy uint      `gorm:"column:uploaded_by;index" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Photo) TableName() string {
	return "tbl_photo"
}

// Video lesson file attached to a course through list_video
type Video struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID        string    `gorm:"column:uid;type:varchar(36);not null;uniqueIndex" json:"uid"`
	Title      string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Path       string    `gorm:"column:path;type:varchar(500);not null" json:"video"`
	UploadedBy uint      `gorm:"column:uploaded_by;index" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Video) TableName() string {
	return "tbl_video"
}
