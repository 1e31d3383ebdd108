package activation

import (
	"context"

	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KeyRepository struct {
	db *gorm.DB
}

func NewKeyRepository(db *gorm.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

// Insert writes keys with tx
func (r *KeyRepository) Insert(tx *gorm.DB, keys []courseModel.ActivationKey) error {
	return tx.Create(&keys).Error
}

// Consume deletes the row holding token and returns it. Only one of any
// number of concurrent callers gets the row back; the others get nothing.
func (r *KeyRepository) Consume(tx *gorm.DB, token string) (*courseModel.ActivationKey, error) {
	var deleted []courseModel.ActivationKey
	result := tx.Clauses(clause.Returning{}).
		Where("key_active = ?", token).
		Delete(&deleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, nil
	}
	return &deleted[0], nil
}

// FindCourse loads a course by id with tx
func (r *KeyRepository) FindCourse(tx *gorm.DB, courseID uint) (*courseModel.Course, error) {
	var c courseModel.Course
	if err := tx.First(&c, courseID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountByCourse counts the live tokens of a course
func (r *KeyRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&courseModel.ActivationKey{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// ListByCourse returns the live tokens of a course, oldest first
func (r *KeyRepository) ListByCourse(ctx context.Context, courseID uint) ([]courseModel.ActivationKey, error) {
	var keys []courseModel.ActivationKey
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&keys).Error
	return keys, err
}
