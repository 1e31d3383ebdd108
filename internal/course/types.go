package course

import (
	"fmt"
	"strings"
	"time"

	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"
)

// CourseRequest body of create and update. Pointer and slice fields
// distinguish an absent field from a zero value.
type CourseRequest struct {
	Photo       *uint   `json:"photo"`
	PhotoID     *uint   `json:"photo_id"`
	OldPrice    *int64  `json:"old_price"`
	NewPrice    *int64  `json:"new_price"`
	Title       *string `json:"title"`
	Type        []int   `json:"type"`
	Description *string `json:"description"`
	ListVideo   []uint  `json:"list_video"`
}

// courseFields validated content of a CourseRequest
type courseFields struct {
	photoID     uint
	oldPrice    int64
	newPrice    *int64
	title       string
	types       []int
	description string
	listVideo   []uint
}

// validate checks the mandatory fields in declared order and reports the
// first one that is missing.
func (r *CourseRequest) validate() (*courseFields, error) {
	photo := r.Photo
	if photo == nil {
		photo = r.PhotoID
	}

	title := ""
	if r.Title != nil {
		title = strings.TrimSpace(*r.Title)
	}

	switch {
	case photo == nil:
		return nil, response.ErrRequiredField("photo")
	case r.OldPrice == nil:
		return nil, response.ErrRequiredField("old_price")
	case title == "":
		return nil, response.ErrRequiredField("title")
	case r.Type == nil:
		return nil, response.ErrRequiredField("type")
	case r.Description == nil:
		return nil, response.ErrRequiredField("description")
	}

	if *r.OldPrice < 0 {
		return nil, invalid("old_price must not be negative")
	}
	if r.NewPrice != nil && *r.NewPrice < 0 {
		return nil, invalid("new_price must not be negative")
	}
	if len(title) > 255 {
		return nil, invalid("title must not exceed 255 characters")
	}
	if len(*r.Description) > 500 {
		return nil, invalid("description must not exceed 500 characters")
	}

	return &courseFields{
		photoID:     *photo,
		oldPrice:    *r.OldPrice,
		newPrice:    r.NewPrice,
		title:       title,
		types:       r.Type,
		description: *r.Description,
		listVideo:   r.ListVideo,
	}, nil
}

// ReviewRequest administrator decision on a course
type ReviewRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// FeedbackRequest body of POST /course/create-feeling
type FeedbackRequest struct {
	Course      uint   `json:"course" binding:"required"`
	Description string `json:"description" binding:"required,max=255"`
}

// ListQuery filters accepted by the course listings. All filters are
// AND-combined.
type ListQuery struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Status      string `form:"status"`
	OldPrice    string `form:"old_price"`
	NewPrice    string `form:"new_price"`
	MinPrice    *int64 `form:"min_price"`
	MaxPrice    *int64 `form:"max_price"`
	Type        *int   `form:"type"`
	User        *uint  `form:"user"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// ownerFilters keeps only the filters the owner listing supports
func (q ListQuery) ownerFilters() ListQuery {
	return ListQuery{
		Title:    q.Title,
		NewPrice: q.NewPrice,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

func (q ListQuery) validate() error {
	for name, v := range map[string]string{"old_price": q.OldPrice, "new_price": q.NewPrice} {
		for _, r := range v {
			if r < '0' || r > '9' {
				return invalid(fmt.Sprintf("%s filter must contain digits only", name))
			}
		}
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return invalid("min_price must not exceed max_price")
	}
	return nil
}

// CourseView listing representation; user is the owner's username
type CourseView struct {
	ID          uint               `json:"id"`
	Deleted     bool               `json:"deleted"`
	Title       string             `json:"title"`
	NewPrice    int64              `json:"new_price"`
	OldPrice    int64              `json:"old_price"`
	Type        []int              `json:"type"`
	Description string             `json:"description"`
	Photo       *uint              `json:"photo"`
	Status      courseModel.Status `json:"status"`
	Reason      string             `json:"reason"`
	ListVideo   []uint             `json:"list_video"`
	User        string             `json:"user"`
}

// PhotoView nested photo of the detail representation
type PhotoView struct {
	ID    uint   `json:"id"`
	UID   string `json:"uid"`
	Photo string `json:"photo"`
}

// CourseDetailView detail representation with the photo expanded
type CourseDetailView struct {
	ID                 uint               `json:"id"`
	Deleted            bool               `json:"deleted"`
	Title              string             `json:"title"`
	NewPrice           int64              `json:"new_price"`
	OldPrice           int64              `json:"old_price"`
	Type               []int              `json:"type"`
	Description        string             `json:"description"`
	Photo              *PhotoView         `json:"photo"`
	User               string             `json:"user"`
	Status             courseModel.Status `json:"status"`
	Reason             string             `json:"reason"`
	ListVideo          []uint             `json:"list_video"`
	RegistrationNumber int                `json:"registration_number"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// FeedbackView a stored feedback
type FeedbackView struct {
	ID          uint      `json:"id"`
	Course      uint      `json:"course"`
	User        uint      `json:"user"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toView(c *courseModel.Course) CourseView {
	v := CourseView{
		ID:          c.ID,
		Deleted:     c.Deleted,
		Title:       c.Title,
		NewPrice:    c.NewPrice,
		OldPrice:    c.OldPrice,
		Type:        nonNil(c.Type),
		Description: c.Description,
		Photo:       c.PhotoID,
		Status:      c.Status,
		Reason:      c.Reason,
		ListVideo:   nonNil(c.ListVideo),
	}
	if c.Owner != nil {
		v.User = c.Owner.Username
	}
	return v
}

func toDetailView(c *courseModel.Course) CourseDetailView {
	v := CourseDetailView{
		ID:                 c.ID,
		Deleted:            c.Deleted,
		Title:              c.Title,
		NewPrice:           c.NewPrice,
		OldPrice:           c.OldPrice,
		Type:               nonNil(c.Type),
		Description:        c.Description,
		Status:             c.Status,
		Reason:             c.Reason,
		ListVideo:          nonNil(c.ListVideo),
		RegistrationNumber: c.RegistrationNumber,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.Owner != nil {
		v.User = c.Owner.Username
	}
	if c.Photo != nil {
		v.Photo = &PhotoView{ID: c.Photo.ID, UID: c.Photo.UID, Photo: c.Photo.Path}
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func invalid(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}
