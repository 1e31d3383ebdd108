package user

import (
	"context"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

// FindConflict returns a user other than excludeID holding username or
// email, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindConflict(ctx context.Context, username, email string, excludeID uint) (*userModel.User, error) {
	var u userModel.User
	q := r.db.WithContext(ctx).Where("(username = ? OR email = ?)", username, email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&u).Error
	return &u, err
}

func (r *UserRepository) GetPhoto(ctx context.Context, id uint) (*media.Photo, error) {
	var p media.Photo
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// UpdateProfile writes the self-editable columns of u
func (r *UserRepository) UpdateProfile(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).
		Model(u).
		Select("username", "phone", "name", "email", "photo_id", "updated_at").
		Updates(u).Error
}

// List returns all users, optionally only those with role
func (r *UserRepository) List(ctx context.Context, role string) ([]userModel.User, error) {
	var users []userModel.User
	q := r.db.WithContext(ctx).Order("id ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}

// ListTemporary returns lecturers still waiting for onboarding
func (r *UserRepository) ListTemporary(ctx context.Context) ([]userModel.User, error) {
	var users []userModel.User
	err := r.db.WithContext(ctx).
		Where("temporary_user = ? AND role = ?", true, userModel.RoleLecturer).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// ClearTemporary onboards a provisional account; false when id does not exist
func (r *UserRepository) ClearTemporary(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"temporary_user": false,
			"account_type":   userModel.AccountNormal,
		})
	return result.RowsAffected > 0, result.Error
}

// Delete removes one user; owned courses and their keys cascade
func (r *UserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&userModel.User{}, id)
	return result.RowsAffected > 0, result.Error
}
