package model

import (
	"github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"gorm.io/gorm"
)

func InitTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&media.Photo{},
		&media.Video{},
		&user.User{},
		&course.Course{},
		&course.ActivationKey{},
		&course.Feedback{},
	)
}
