package course

import "time"

// ActivationKey single-use redemption token for one course. The token is a
// random secret and never the row id.
type ActivationKey struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	KeyActive string    `gorm:"column:key_active;type:varchar(64);not null;uniqueIndex" json:"key_active"`
	CourseID  uint      `gorm:"column:course_id;not null;index" json:"course_id"`
	Course    *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivationKey) TableName() string {
	return "tbl_key_active"
}
