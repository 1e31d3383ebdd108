package course

import (
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusNew      Status = "NEW"
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Course a purchasable learning product. Title is unique among rows that
// are not soft-deleted.
type Course struct {
	ID                 uint                      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title              string                    `gorm:"column:title;type:varchar(255);not null;uniqueIndex:idx_course_title_live,where:deleted = false" json:"title"`
	Description        string                    `gorm:"column:description;type:varchar(500);not null;default:''" json:"description"`
	OldPrice           int64                     `gorm:"column:old_price;not null;default:0;check:old_price >= 0" json:"old_price"`
	NewPrice           int64                     `gorm:"column:new_price;not null;default:0;check:new_price >= 0" json:"new_price"`
	Type               datatypes.JSONSlice[int]  `gorm:"column:type" json:"type"`
	Status             Status                    `gorm:"column:status;type:varchar(20);not null;default:'NEW'" json:"status"`
	Reason             string                    `gorm:"column:reason;type:varchar(255);not null;default:''" json:"reason"`
	UserID             uint                      `gorm:"column:user_id;index" json:"user"`
	Owner              *user.User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PhotoID            *uint                     `gorm:"column:photo_id" json:"photo"`
	Photo              *media.Photo              `gorm:"foreignKey:PhotoID;constraint:OnDelete:SET NULL" json:"-"`
	ListVideo          datatypes.JSONSlice[uint] `gorm:"column:list_video" json:"list_video"`
	RegistrationNumber int                       `gorm:"column:registration_number;not null;default:0" json:"registration_number"`
	Deleted            bool                      `gorm:"column:deleted;not null;default:false;index" json:"deleted"`
	CreatedAt          time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string {
	return "tbl_course"
}

// Reviewable reports whether s is a status an administrator may assign
func (s Status) Reviewable() bool {
	return s == StatusApproved || s == StatusRejected
}
