package course

import (
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"
)

// Feedback a student's note on a course
type Feedback struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CourseID    uint       `gorm:"column:course_id;not null;index" json:"course"`
	Course      *Course    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user"`
	User        *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Description string     `gorm:"column:description;type:varchar(255);not null" json:"description"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "tbl_feeling_student"
}
