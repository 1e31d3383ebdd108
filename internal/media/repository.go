package media

import (
	"context"

	mediaModel "github.com/LeDuoc95/BE-FEDUU/internal/model/media"

	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) CreatePhoto(ctx context.Context, p *mediaModel.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *MediaRepository) ListPhotosBy(ctx context.Context, uploadedBy uint) ([]mediaModel.Photo, error) {
	var photos []mediaModel.Photo
	err := r.db.WithContext(ctx).
		Where("uploaded_by = ?", uploadedBy).
		Order("id ASC").
		Find(&photos).Error
	return photos, err
}

func (r *MediaRepository) CreateVideo(ctx context.Context, v *mediaModel.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}
