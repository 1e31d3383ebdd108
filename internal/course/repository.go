package course

import (
	"context"

	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetByID loads a course with its owner and photo, soft-deleted or not
func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*courseModel.Course, error) {
	var c courseModel.Course
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Photo").
		First(&c, id).Error
	return &c, err
}

// TitleTaken reports whether a live course other than excludeID uses title
func (r *CourseRepository) TitleTaken(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&courseModel.Course{}).
		Where("title = ? AND deleted = ?", title, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) PhotoExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&media.Photo{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) GetUser(ctx context.Context, id uint) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

// Create inserts c with tx
func (r *CourseRepository) Create(tx *gorm.DB, c *courseModel.Course) error {
	return tx.Omit("Owner", "Photo").Create(c).Error
}

// UpdateContent writes the owner editable columns of c with tx
func (r *CourseRepository) UpdateContent(tx *gorm.DB, c *courseModel.Course) error {
	return tx.Model(c).
		Select("photo_id", "title", "old_price", "new_price", "type", "list_video", "description", "updated_at").
		Updates(c).Error
}

// MarkDeleted flips the soft-delete flag of a live course. It returns false
// when no live course with id exists.
func (r *CourseRepository) MarkDeleted(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Model(&courseModel.Course{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	return result.RowsAffected > 0, result.Error
}

// SetReview stores an administrator decision with tx
func (r *CourseRepository) SetReview(tx *gorm.DB, id uint, status courseModel.Status, reason string) error {
	return tx.Model(&courseModel.Course{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "reason": reason}).Error
}

// AppendOwnedCourse records courseID in the owner's owner_course list with tx
func (r *CourseRepository) AppendOwnedCourse(tx *gorm.DB, userID, courseID uint) error {
	var owner userModel.User
	if err := tx.Select("id", "owner_course").First(&owner, userID).Error; err != nil {
		return err
	}
	owned := append(datatypes.JSONSlice[uint]{}, owner.OwnerCourse...)
	owned = append(owned, courseID)
	return tx.Model(&userModel.User{}).Where("id = ?", userID).Update("owner_course", owned).Error
}

// List counts and loads one page of the query built by scope
func (r *CourseRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) ([]courseModel.Course, int64, error) {
	base := scope(r.db.WithContext(ctx).Model(&courseModel.Course{})).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []courseModel.Course
	err := base.Preload("Owner").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) CreateFeedback(ctx context.Context, f *courseModel.Feedback) error {
	return r.db.WithContext(ctx).Omit("Course", "User").Create(f).Error
}
