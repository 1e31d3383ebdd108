package course

import (
	"strconv"

	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService *CourseService
}

func NewCourseHandler(courseService *CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("invalid course id"),
		))
		return 0, false
	}
	return uint(id), true
}

func bindQuery(c *gin.Context) (ListQuery, bool) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("invalid query: "+err.Error()),
		))
		return q, false
	}
	return q, true
}

// Create creates a course
// @Summary Create a course
// @Description Creates a course owned by the caller and mints its initial activation keys
// @Tags course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CourseRequest true "course"
// @Success 201 {object} response.Response{data=CourseView}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /course/create [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.courseService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.Created(c, view)
}

// Update updates a course
// @Summary Update a course
// @Tags course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param request body CourseRequest true "course"
// @Success 200 {object} response.Response{data=CourseView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /course/update/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.courseService.Update(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, view)
}

// Delete soft-deletes a course
// @Summary Soft-delete a course
// @Tags course
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /course/delete/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.courseService.SoftDelete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.Empty(c)
}

// Review sets the review status of a course
// @Summary Review a course
// @Description Administrators approve or reject a course; a rejection needs a reason
// @Tags course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param request body ReviewRequest true "decision"
// @Success 200 {object} response.Response{data=CourseView}
// @Failure 403 {object} response.Response
// @Router /course/review/{id} [put]
func (h *CourseHandler) Review(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.courseService.Review(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, view)
}

// Detail returns one course
// @Summary Course detail
// @Tags course
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} response.Response{data=CourseDetailView}
// @Failure 404 {object} response.Response
// @Router /course/list/{id} [get]
func (h *CourseHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.courseService.Detail(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, view)
}

// ListOwner lists the courses visible to the caller
// @Summary List visible courses
// @Description Anonymous callers see live courses, administrators every course, others their own live courses
// @Tags course
// @Produce json
// @Param title query string false "title contains"
// @Param new_price query string false "new price contains digits"
// @Param min_price query int false "minimum new price"
// @Param max_price query int false "maximum new price"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size"
// @Success 200 {object} response.Response{data=dto.Page[CourseView]}
// @Router /course/list-owner [get]
func (h *CourseHandler) ListOwner(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	page, err := h.courseService.ListOwner(c.Request.Context(), middleware.CurrentUser(c), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, page)
}

// List lists the public catalogue
// @Summary Public course catalogue
// @Tags course
// @Produce json
// @Param title query string false "title contains"
// @Param description query string false "description contains"
// @Param status query string false "status contains"
// @Param old_price query string false "old price contains digits"
// @Param new_price query string false "new price contains digits"
// @Param min_price query int false "minimum new price"
// @Param max_price query int false "maximum new price"
// @Param type query int false "type tag"
// @Param user query int false "owner id"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size"
// @Success 200 {object} response.Response{data=dto.Page[CourseView]}
// @Router /course/list [get]
func (h *CourseHandler) List(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	page, err := h.courseService.ListPublic(c.Request.Context(), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, page)
}

// CreateFeedback stores a student's note on a course
// @Summary Leave feedback on a course
// @Tags course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FeedbackRequest true "feedback"
// @Success 201 {object} response.Response{data=FeedbackView}
// @Router /course/create-feeling [post]
func (h *CourseHandler) CreateFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.courseService.CreateFeedback(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.Created(c, view)
}
