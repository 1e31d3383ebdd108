package media

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	mediaModel "github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	"github.com/LeDuoc95/BE-FEDUU/internal/permission"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PhotoField = "imagesUser"
	VideoField = "file"

	photoDir = "photo/local"
	videoDir = "video/local"
)

type MediaService struct {
	mediaRepo *MediaRepository
	storage   *DiskStorage
	maxPhoto  int64
	maxVideo  int64
}

func NewMediaService(db *gorm.DB, storage *DiskStorage, conf config.UploadConfig) *MediaService {
	return &MediaService{
		mediaRepo: NewMediaRepository(db),
		storage:   storage,
		maxPhoto:  int64(conf.MaxPhotoMB) << 20,
		maxVideo:  int64(conf.MaxVideoMB) << 20,
	}
}

// inferCategory classifies an upload by MIME type, falling back to the
// file extension when the client sent none.
func inferCategory(fh *multipart.FileHeader) string {
	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	default:
		return "other"
	}
}

func checkFile(fh *multipart.FileHeader, field, category string, max int64) error {
	if fh == nil {
		return response.ErrRequiredField(field)
	}
	if max > 0 && fh.Size > max {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage(fmt.Sprintf("%s must not exceed %d MB", field, max>>20)),
		)
	}
	if inferCategory(fh) != category {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage(fmt.Sprintf("%s must be a %s file", field, category)),
		)
	}
	return nil
}

func (s *MediaService) store(fh *multipart.FileHeader, dir string) (string, string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", response.ErrStore("failed to read upload", err)
	}
	defer src.Close()

	uid, rel, err := s.storage.Save(dir, filepath.Ext(fh.Filename), src)
	if err != nil {
		return "", "", response.ErrStore("failed to store upload", err)
	}
	return uid, rel, nil
}

// UploadPhoto stores an image uploaded by a signed-in user
func (s *MediaService) UploadPhoto(ctx context.Context, actor *authsdk.UserContext, fh *multipart.FileHeader) (*PhotoView, error) {
	if err := permission.Authorize(actor, permission.MediaUpload, 0); err != nil {
		return nil, err
	}
	if err := checkFile(fh, PhotoField, "image", s.maxPhoto); err != nil {
		return nil, err
	}

	uid, rel, err := s.store(fh, photoDir)
	if err != nil {
		return nil, err
	}

	p := &mediaModel.Photo{UID: uid, Path: rel, UploadedBy: actor.UserID}
	if err := s.mediaRepo.CreatePhoto(ctx, p); err != nil {
		_ = s.storage.Remove(rel)
		return nil, response.ErrStore("failed to save photo", err)
	}

	logger.L().Info("photo uploaded", zap.Uint("photo_id", p.ID), zap.Uint("user_id", actor.UserID))
	return &PhotoView{ID: p.ID, UID: p.UID, Photo: p.Path, CreatedAt: p.CreatedAt}, nil
}

// ListPhotos returns the photos the caller uploaded
func (s *MediaService) ListPhotos(ctx context.Context, actor *authsdk.UserContext) ([]PhotoView, error) {
	if !actor.Authenticated() {
		return nil, response.ErrUnauthorized()
	}

	photos, err := s.mediaRepo.ListPhotosBy(ctx, actor.UserID)
	if err != nil {
		return nil, response.ErrStore("failed to list photos", err)
	}

	views := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, PhotoView{ID: p.ID, UID: p.UID, Photo: p.Path, CreatedAt: p.CreatedAt})
	}
	return views, nil
}

// UploadVideo stores a lesson video. Only accounts that may create
// courses can upload videos.
func (s *MediaService) UploadVideo(ctx context.Context, actor *authsdk.UserContext, fh *multipart.FileHeader, title string) (*VideoView, error) {
	if err := permission.Authorize(actor, permission.CourseCreate, 0); err != nil {
		return nil, err
	}
	if err := checkFile(fh, VideoField, "video", s.maxVideo); err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	}

	uid, rel, err := s.store(fh, videoDir)
	if err != nil {
		return nil, err
	}

	v := &mediaModel.Video{UID: uid, Title: title, Path: rel, UploadedBy: actor.UserID}
	if err := s.mediaRepo.CreateVideo(ctx, v); err != nil {
		_ = s.storage.Remove(rel)
		return nil, response.ErrStore("failed to save video", err)
	}

	logger.L().Info("video uploaded", zap.Uint("video_id", v.ID), zap.Uint("user_id", actor.UserID))
	return &VideoView{ID: v.ID, UID: v.UID, Title: v.Title, Video: v.Path}, nil
}
