package user

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

const (
	AccountNormal    = "normal"
	AccountTemporary = "temporary"
)

type User struct {
	ID            uint                      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email         string                    `gorm:"column:email;type:varchar(254);not null;uniqueIndex" json:"email"`
	Username      string                    `gorm:"column:username;type:varchar(20);not null;uniqueIndex" json:"username"`
	PasswordHash  string                    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role          string                    `gorm:"column:role;type:varchar(20);not null;default:'student'" json:"role"`
	Name          string                    `gorm:"column:name;type:varchar(30)" json:"name"`
	Phone         string                    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Slogan        string                    `gorm:"column:slogan;type:varchar(50)" json:"slogan"`
	Description   string                    `gorm:"column:description;type:varchar(254)" json:"description"`
	PhotoID       *uint                     `gorm:"column:photo_id" json:"photo_id"`
	OwnerCourse   datatypes.JSONSlice[uint] `gorm:"column:owner_course" json:"owner_course"`
	AccountType   string                    `gorm:"column:account_type;type:varchar(20);not null;default:'normal'" json:"account_type"`
	TemporaryUser bool                      `gorm:"column:temporary_user;not null;default:false" json:"temporary_user"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "tbl_user"
}

// IsAdmin reports whether the account carries the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
