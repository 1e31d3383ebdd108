package testutils

import (
	"fmt"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTestUser creates a student with a unique username and email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.NewString()[:8]

	testUser := &user.User{
		Username:    fmt.Sprintf("user_%s", uniqueID),
		Email:       fmt.Sprintf("test_%s@example.com", uniqueID),
		Role:        user.RoleStudent,
		AccountType: user.AccountNormal,
		OwnerCourse: datatypes.JSONSlice[uint]{},
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// WithTemporary marks the account as a provisional lecturer
func WithTemporary() UserOption {
	return func(u *user.User) {
		u.TemporaryUser = true
		u.AccountType = user.AccountTemporary
	}
}

// WithPassword stores a bcrypt hash of password
func WithPassword(password string) UserOption {
	return func(u *user.User) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		u.PasswordHash = string(hash)
	}
}

// CreateTestPhoto creates a photo row without a file behind it
func CreateTestPhoto(db *gorm.DB, uploadedBy uint) *media.Photo {
	uid := uuid.NewString()
	photo := &media.Photo{
		UID:        uid,
		Path:       "photo/local/" + uid + ".png",
		UploadedBy: uploadedBy,
	}

	if err := db.Create(photo).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test photo: %v", err))
	}

	return photo
}

// CreateTestCourse inserts a course directly, without minting keys
func CreateTestCourse(db *gorm.DB, ownerID uint, opts ...CourseOption) *course.Course {
	testCourse := &course.Course{
		Title:       fmt.Sprintf("course_%s", uuid.NewString()[:8]),
		Description: "test course",
		OldPrice:    100,
		NewPrice:    80,
		Type:        datatypes.JSONSlice[int]{1},
		Status:      course.StatusNew,
		UserID:      ownerID,
		ListVideo:   datatypes.JSONSlice[uint]{},
	}

	for _, opt := range opts {
		opt(testCourse)
	}

	if err := db.Create(testCourse).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test course: %v", err))
	}

	return testCourse
}

// CourseOption configures test course
type CourseOption func(*course.Course)

func WithTitle(title string) CourseOption {
	return func(c *course.Course) {
		c.Title = title
	}
}

func WithDescription(description string) CourseOption {
	return func(c *course.Course) {
		c.Description = description
	}
}

func WithPrices(oldPrice, newPrice int64) CourseOption {
	return func(c *course.Course) {
		c.OldPrice = oldPrice
		c.NewPrice = newPrice
	}
}

func WithTypes(types ...int) CourseOption {
	return func(c *course.Course) {
		c.Type = datatypes.JSONSlice[int](types)
	}
}

func WithStatus(status course.Status) CourseOption {
	return func(c *course.Course) {
		c.Status = status
	}
}

func WithDeleted() CourseOption {
	return func(c *course.Course) {
		c.Deleted = true
	}
}

func WithPhoto(photoID uint) CourseOption {
	return func(c *course.Course) {
		c.PhotoID = &photoID
	}
}
