package activation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/permission"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize number of keys minted with every new course
const DefaultBatchSize = 10

// Ledger owns the pools of single-use activation keys
type Ledger struct {
	db        *gorm.DB
	keyRepo   *KeyRepository
	batchSize int
}

func NewLedger(db *gorm.DB, batchSize int) *Ledger {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ledger{
		db:        db,
		keyRepo:   NewKeyRepository(db),
		batchSize: batchSize,
	}
}

// BatchSize is the pool size of a freshly created course
func (l *Ledger) BatchSize() int {
	return l.batchSize
}

func newToken() string {
	return uuid.NewString()
}

// MintBatch creates count fresh tokens for courseID. It must run on the
// transaction that inserted the course so that a failure here undoes the
// course as well.
func (l *Ledger) MintBatch(tx *gorm.DB, courseID uint, count int) ([]courseModel.ActivationKey, error) {
	if count <= 0 {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage(fmt.Sprintf("batch size must be positive, got %d", count)),
		)
	}
	if courseID == 0 {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("course id is required to mint keys"),
		)
	}

	keys := make([]courseModel.ActivationKey, count)
	for i := range keys {
		keys[i] = courseModel.ActivationKey{
			KeyActive: newToken(),
			CourseID:  courseID,
		}
	}

	if err := l.keyRepo.Insert(tx, keys); err != nil {
		return nil, response.ErrStore("failed to mint activation keys", err)
	}
	return keys, nil
}

// Redeem consumes token and mints one replacement for the same course,
// returning the course the token unlocked. A token that never existed or
// was already consumed is NotFound, and so is a token of a soft-deleted
// course, which stays unconsumed.
func (l *Ledger) Redeem(ctx context.Context, token string) (*courseModel.Course, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, response.ErrRequiredField("key_active")
	}

	var unlocked *courseModel.Course
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		consumed, err := l.keyRepo.Consume(tx, token)
		if err != nil {
			return response.ErrStore("failed to redeem activation key", err)
		}
		if consumed == nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("activation key is invalid or already used"),
			)
		}

		replacement := []courseModel.ActivationKey{{
			KeyActive: newToken(),
			CourseID:  consumed.CourseID,
		}}
		if err := l.keyRepo.Insert(tx, replacement); err != nil {
			return response.ErrStore("failed to reissue activation key", err)
		}

		unlocked, err = l.keyRepo.FindCourse(tx, consumed.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotFound("course", consumed.CourseID)
			}
			return response.ErrStore("failed to load course", err)
		}
		// rolling back keeps the token on the withdrawn course
		if unlocked.Deleted {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("course is no longer available"),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("activation key redeemed", zap.Uint("course_id", unlocked.ID))
	return unlocked, nil
}

// Count returns the size of a course's pool
func (l *Ledger) Count(ctx context.Context, courseID uint) (int64, error) {
	count, err := l.keyRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return 0, response.ErrStore("failed to count activation keys", err)
	}
	return count, nil
}

// List returns a course's pool
func (l *Ledger) List(ctx context.Context, courseID uint) ([]courseModel.ActivationKey, error) {
	keys, err := l.keyRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, response.ErrStore("failed to list activation keys", err)
	}
	return keys, nil
}

// Pool returns the pool of a course to its owner or an administrator
func (l *Ledger) Pool(ctx context.Context, actor *authsdk.UserContext, courseID uint) (*PoolResponse, error) {
	c, err := l.keyRepo.FindCourse(l.db.WithContext(ctx), courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound("course", courseID)
		}
		return nil, response.ErrStore("failed to load course", err)
	}

	if err := permission.Authorize(actor, permission.CourseKeys, c.UserID); err != nil {
		return nil, err
	}

	keys, err := l.List(ctx, courseID)
	if err != nil {
		return nil, err
	}

	views := make([]KeyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, KeyView{ID: k.ID, KeyActive: k.KeyActive, CreatedAt: k.CreatedAt})
	}
	return &PoolResponse{CourseID: courseID, Count: len(views), Keys: views}, nil
}
