package user

import (
	"strconv"

	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *UserService
	// accessMaxAge cookie lifetime in seconds
	accessMaxAge int
}

func NewUserHandler(userService *UserService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		accessMaxAge: userService.jwt.ExpireTime * 3600,
	}
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("invalid user id"),
		))
		return 0, false
	}
	return uint(id), true
}

// Register creates an account
// @Summary Register
// @Description Creates a student or lecturer account. Lecturer accounts start as temporary.
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "account"
// @Success 201 {object} response.Response{data=RegisterResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /user/create [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.Created(c, view)
}

// Login signs a user in
// @Summary Login
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} response.Response{data=TokenResponse}
// @Failure 401 {object} response.Response
// @Router /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	tokens, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	c.SetCookie("access_token", tokens.Access, h.accessMaxAge, "/", "", false, true)
	dto.SuccessResponse(c, tokens)
}

// Refresh rotates a refresh token
// @Summary Refresh tokens
// @Tags user
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "refresh token"
// @Success 200 {object} response.Response{data=TokenResponse}
// @Failure 401 {object} response.Response
// @Router /user/api/token/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	tokens, err := h.userService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	c.SetCookie("access_token", tokens.Access, h.accessMaxAge, "/", "", false, true)
	dto.SuccessResponse(c, tokens)
}

// Me returns the caller's profile
// @Summary Current user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=ProfileView}
// @Router /user/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	view, err := h.userService.Me(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// ChangePassword
// @Summary Change password
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PasswordRequest true "old and new password"
// @Success 200 {object} response.Response
// @Router /user/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), &req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.Empty(c)
}

// ResetPassword
// @Summary Reset password
// @Description Like change-password; without new_password a password is generated and returned once
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PasswordRequest true "old and optional new password"
// @Success 200 {object} response.Response{data=PasswordResponse}
// @Router /user/reset-password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	resp, err := h.userService.ResetPassword(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// Update edits the caller's profile
// @Summary Update profile
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRequest true "profile"
// @Success 200 {object} response.Response{data=ProfileView}
// @Router /user/update [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// List lists accounts
// @Summary List users (admin)
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param position query string false "role" Enums(student, lecturer, admin)
// @Success 200 {object} response.Response{data=[]UserView}
// @Router /user/list [get]
func (h *UserHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	users, err := h.userService.List(c.Request.Context(), middleware.CurrentUser(c), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, users)
}

// Delete removes one account
// @Summary Delete a user (admin)
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /user/delete/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.Empty(c)
}

// ListTemporary lists lecturers waiting for onboarding
// @Summary List temporary lecturers (admin)
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]UserView}
// @Router /user/temporary [get]
func (h *UserHandler) ListTemporary(c *gin.Context) {
	users, err := h.userService.ListTemporary(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, users)
}

// Onboard clears the temporary flag of an account
// @Summary Onboard a temporary lecturer (admin)
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} response.Response
// @Router /user/temporary/{id} [put]
func (h *UserHandler) Onboard(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Onboard(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.Empty(c)
}
