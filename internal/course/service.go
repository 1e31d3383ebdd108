package course

import (
	"context"
	"errors"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/activation"
	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/permission"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseService struct {
	db         *gorm.DB
	courseRepo *CourseRepository
	ledger     *activation.Ledger
	cache      *ListCache
	conf       config.CourseConfig
}

func NewCourseService(db *gorm.DB, ledger *activation.Ledger, cache *ListCache, conf config.CourseConfig) *CourseService {
	return &CourseService{
		db:         db,
		courseRepo: NewCourseRepository(db),
		ledger:     ledger,
		cache:      cache,
		conf:       conf,
	}
}

// checkContent runs the checks shared by create and update. excludeID is
// the course being updated, 0 on create.
func (s *CourseService) checkContent(ctx context.Context, req *CourseRequest, excludeID uint) (*courseFields, error) {
	fields, err := req.validate()
	if err != nil {
		return nil, err
	}

	ok, err := s.courseRepo.PhotoExists(ctx, fields.photoID)
	if err != nil {
		return nil, response.ErrStore("failed to check photo", err)
	}
	if !ok {
		return nil, response.ErrNotFound("photo", fields.photoID)
	}

	taken, err := s.courseRepo.TitleTaken(ctx, fields.title, excludeID)
	if err != nil {
		return nil, response.ErrStore("failed to check course title", err)
	}
	if taken {
		return nil, response.ErrDuplicateTitle()
	}
	return fields, nil
}

func (s *CourseService) loadLive(ctx context.Context, id uint) (*courseModel.Course, error) {
	c, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound("course", id)
		}
		return nil, response.ErrStore("failed to load course", err)
	}
	if c.Deleted {
		return nil, response.ErrNotFound("course", id)
	}
	return c, nil
}

// storeError maps a failure inside a mutation transaction
func storeError(msg string, err error) error {
	var be *response.BusinessError
	if errors.As(err, &be) {
		return be
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.ErrDuplicateTitle()
	}
	return response.ErrStore(msg, err)
}

// Create inserts a course owned by actor and mints its initial pool of
// activation keys in the same transaction.
func (s *CourseService) Create(ctx context.Context, actor *authsdk.UserContext, req *CourseRequest) (*CourseView, error) {
	if err := permission.Authorize(actor, permission.CourseCreate, 0); err != nil {
		return nil, err
	}

	fields, err := s.checkContent(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	owner, err := s.courseRepo.GetUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrUnauthorized()
		}
		return nil, response.ErrStore("failed to load course owner", err)
	}

	newPrice := int64(0)
	if fields.newPrice != nil {
		newPrice = *fields.newPrice
	}

	c := &courseModel.Course{
		Title:       fields.title,
		Description: fields.description,
		OldPrice:    fields.oldPrice,
		NewPrice:    newPrice,
		Type:        datatypes.JSONSlice[int](fields.types),
		Status:      courseModel.Status(s.conf.InitialStatus(owner.Role, owner.TemporaryUser)),
		UserID:      owner.ID,
		PhotoID:     &fields.photoID,
		ListVideo:   datatypes.JSONSlice[uint](nonNil(fields.listVideo)),
	}

	var minted int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.courseRepo.Create(tx, c); err != nil {
			return err
		}
		keys, err := s.ledger.MintBatch(tx, c.ID, s.ledger.BatchSize())
		if err != nil {
			return err
		}
		minted = len(keys)
		return s.courseRepo.AppendOwnedCourse(tx, owner.ID, c.ID)
	})
	if err != nil {
		logger.L().Error("create course failed", zap.String("title", fields.title), zap.Error(err))
		return nil, storeError("failed to create course", err)
	}

	s.cache.Invalidate(ctx)
	logger.L().Info("course created",
		zap.Uint("course_id", c.ID),
		zap.Uint("owner_id", owner.ID),
		zap.String("status", string(c.Status)),
		zap.Int("keys_minted", minted),
	)

	c.Owner = owner
	view := toView(c)
	return &view, nil
}

// Update replaces the owner editable content of a course. Status and
// reason are not writable here.
func (s *CourseService) Update(ctx context.Context, actor *authsdk.UserContext, id uint, req *CourseRequest) (*CourseView, error) {
	if !actor.Authenticated() {
		return nil, response.ErrUnauthorized()
	}

	c, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permission.Authorize(actor, permission.CourseUpdate, c.UserID); err != nil {
		return nil, err
	}

	fields, err := s.checkContent(ctx, req, c.ID)
	if err != nil {
		return nil, err
	}

	c.PhotoID = &fields.photoID
	c.Title = fields.title
	c.OldPrice = fields.oldPrice
	c.Type = datatypes.JSONSlice[int](fields.types)
	c.Description = fields.description
	if fields.listVideo != nil {
		c.ListVideo = datatypes.JSONSlice[uint](fields.listVideo)
	}
	if fields.newPrice != nil {
		c.NewPrice = *fields.newPrice
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.UpdateContent(tx, c)
	})
	if err != nil {
		return nil, storeError("failed to update course", err)
	}

	s.cache.Invalidate(ctx)
	logger.L().Info("course updated", zap.Uint("course_id", c.ID), zap.Uint("actor_id", actor.UserID))

	view := toView(c)
	return &view, nil
}

// SoftDelete hides a course from listings by setting its deleted flag. The
// row and its keys stay in the store.
func (s *CourseService) SoftDelete(ctx context.Context, actor *authsdk.UserContext, id uint) error {
	if !actor.Authenticated() {
		return response.ErrUnauthorized()
	}

	c, err := s.loadLive(ctx, id)
	if err != nil {
		return err
	}

	if err := permission.Authorize(actor, permission.CourseDelete, c.UserID); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.courseRepo.MarkDeleted(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return response.ErrNotFound("course", id)
		}
		return nil
	})
	if err != nil {
		return storeError("failed to delete course", err)
	}

	s.cache.Invalidate(ctx)
	logger.L().Info("course soft-deleted", zap.Uint("course_id", id), zap.Uint("actor_id", actor.UserID))
	return nil
}

// Review records an administrator decision. A rejection needs a reason;
// an approval clears it.
func (s *CourseService) Review(ctx context.Context, actor *authsdk.UserContext, id uint, req *ReviewRequest) (*CourseView, error) {
	if err := permission.Authorize(actor, permission.CourseReview, 0); err != nil {
		return nil, err
	}

	status := courseModel.Status(req.Status)
	if !status.Reviewable() {
		return nil, invalid("status must be APPROVED or REJECTED")
	}
	reason := req.Reason
	if status == courseModel.StatusRejected && reason == "" {
		return nil, response.ErrRequiredField("reason")
	}
	if status == courseModel.StatusApproved {
		reason = ""
	}

	c, err := s.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.courseRepo.SetReview(tx, id, status, reason)
	})
	if err != nil {
		return nil, storeError("failed to review course", err)
	}

	s.cache.Invalidate(ctx)
	logger.L().Info("course reviewed",
		zap.Uint("course_id", id),
		zap.String("from", string(c.Status)),
		zap.String("to", string(status)),
	)

	c.Status = status
	c.Reason = reason
	view := toView(c)
	return &view, nil
}

// Detail returns the full representation of a course to lecturers and
// administrators. Soft-deleted courses are visible to administrators only.
func (s *CourseService) Detail(ctx context.Context, actor *authsdk.UserContext, id uint) (*CourseDetailView, error) {
	if err := permission.Authorize(actor, permission.CourseDetail, 0); err != nil {
		return nil, err
	}

	c, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound("course", id)
		}
		return nil, response.ErrStore("failed to load course", err)
	}
	if c.Deleted && !permission.IsAdmin(actor) {
		return nil, response.ErrNotFound("course", id)
	}

	view := toDetailView(c)
	return &view, nil
}

// CreateFeedback stores a signed-in user's note on a live course
func (s *CourseService) CreateFeedback(ctx context.Context, actor *authsdk.UserContext, req *FeedbackRequest) (*FeedbackView, error) {
	if err := permission.Authorize(actor, permission.Feedback, 0); err != nil {
		return nil, err
	}

	if _, err := s.loadLive(ctx, req.Course); err != nil {
		return nil, err
	}

	f := &courseModel.Feedback{
		CourseID:    req.Course,
		UserID:      actor.UserID,
		Description: req.Description,
	}
	if err := s.courseRepo.CreateFeedback(ctx, f); err != nil {
		return nil, response.ErrStore("failed to save feedback", err)
	}

	return &FeedbackView{
		ID:          f.ID,
		Course:      f.CourseID,
		User:        f.UserID,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}, nil
}

func (s *CourseService) list(ctx context.Context, caller *authsdk.UserContext, q ListQuery) (*dto.Page[CourseView], error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	page, size, offset := dto.PageBounds(q.Page, q.PageSize, s.conf.PageSize, s.conf.MaxPageSize)
	courses, total, err := s.courseRepo.List(ctx, func(db *gorm.DB) *gorm.DB {
		return Filter(Scope(db, caller), q)
	}, offset, size)
	if err != nil {
		return nil, response.ErrStore("failed to list courses", err)
	}

	results := make([]CourseView, 0, len(courses))
	for i := range courses {
		results = append(results, toView(&courses[i]))
	}
	return &dto.Page[CourseView]{Count: total, Page: page, PageSize: size, Results: results}, nil
}

// ListOwner lists what caller may see: anonymous callers get the live
// catalogue, administrators everything, others their own live courses.
func (s *CourseService) ListOwner(ctx context.Context, caller *authsdk.UserContext, q ListQuery) (*dto.Page[CourseView], error) {
	return s.list(ctx, caller, q.ownerFilters())
}

// ListPublic lists the live catalogue with every filter available
func (s *CourseService) ListPublic(ctx context.Context, q ListQuery) (*dto.Page[CourseView], error) {
	if page := s.cache.Get(ctx, q); page != nil {
		return page, nil
	}

	page, err := s.list(ctx, &authsdk.UserContext{}, q)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, q, page)
	return page, nil
}
