package user

import (
	"regexp"
	"strings"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// RegisterRequest body of POST /user/create. Password is optional; a
// random one is generated when it is absent.
type RegisterRequest struct {
	Email    *string `json:"email" example:"student@example.com"`
	Username *string `json:"username" example:"student01"`
	Name     string  `json:"name" binding:"max=30"`
	Phone    string  `json:"phone" binding:"max=20"`
	Role     string  `json:"role" example:"student" enums:"student,lecturer"`
	Password string  `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"student01"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// PasswordRequest body of change-password and reset-password
type PasswordRequest struct {
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
}

// UpdateRequest body of PUT /user/update; every field is required
type UpdateRequest struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Photo    *uint   `json:"photo"`
}

// ListQuery filter of GET /user/list; position is a role name
type ListQuery struct {
	Position string `form:"position"`
}

// PhotoView avatar as the front end renders it
type PhotoView struct {
	ID     *uint  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Path   string `json:"path"`
}

// UserView admin listing representation
type UserView struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Position    string `json:"position"`
	Phone       string `json:"phone"`
	AccountType string `json:"account_type"`
	Photo       *uint  `json:"photo"`
}

// ProfileView the signed-in user's own profile
type ProfileView struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Position      string    `json:"position"`
	Slogan        string    `json:"slogan"`
	OwnerCourse   []uint    `json:"owner_course"`
	TemporaryUser bool      `json:"temporary_user"`
	Description   string    `json:"description"`
	Photo         PhotoView `json:"photo"`
}

// TokenResponse answer of login and refresh. Refresh is empty when refresh
// sessions are unavailable.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
	ProfileView
}

// PasswordResponse carries a generated password back exactly once
type PasswordResponse struct {
	Password string `json:"password,omitempty"`
}

// RegisterResponse the new account; Password is set only when the server generated it
type RegisterResponse struct {
	UserView
	PasswordResponse
}

func toUserView(u *userModel.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Username:    u.Username,
		Position:    u.Role,
		Phone:       u.Phone,
		AccountType: u.AccountType,
		Photo:       u.PhotoID,
	}
}

func toProfileView(u *userModel.User, photo *media.Photo) ProfileView {
	owned := []uint(u.OwnerCourse)
	if owned == nil {
		owned = []uint{}
	}

	v := ProfileView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		Position:      u.Role,
		Slogan:        u.Slogan,
		OwnerCourse:   owned,
		TemporaryUser: u.TemporaryUser,
		Description:   u.Description,
		Photo:         PhotoView{Name: "image.png", Status: "done"},
	}
	if photo != nil {
		v.Photo.ID = &photo.ID
		v.Photo.Path = photo.Path
	}
	return v
}

func invalid(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}

func checkUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return invalid("username must be between 3 and 20 characters")
	}
	if !usernameRegex.MatchString(username) {
		return invalid("username may contain only letters, digits and underscores")
	}
	return nil
}

func checkEmail(email string) error {
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return invalid("email is not a valid address")
	}
	return nil
}

func checkPassword(password string) error {
	if len(password) < 6 || len(password) > 72 {
		return invalid("password must be between 6 and 72 characters")
	}
	return nil
}

// validate checks email then username, then the optional fields
func (r *RegisterRequest) validate() (email, username string, err error) {
	if r.Email == nil || strings.TrimSpace(*r.Email) == "" {
		return "", "", response.ErrRequiredField("email")
	}
	if r.Username == nil || strings.TrimSpace(*r.Username) == "" {
		return "", "", response.ErrRequiredField("username")
	}

	email = strings.ToLower(strings.TrimSpace(*r.Email))
	username = strings.TrimSpace(*r.Username)
	if err := checkEmail(email); err != nil {
		return "", "", err
	}
	if err := checkUsername(username); err != nil {
		return "", "", err
	}

	switch r.Role {
	case "", userModel.RoleStudent, userModel.RoleLecturer:
	default:
		return "", "", invalid("role must be student or lecturer")
	}

	if r.Password != "" {
		if err := checkPassword(r.Password); err != nil {
			return "", "", err
		}
	}
	return email, username, nil
}

type profileFields struct {
	username string
	phone    string
	name     string
	email    string
	photoID  uint
}

func (r *UpdateRequest) validate() (*profileFields, error) {
	switch {
	case r.Username == nil:
		return nil, response.ErrRequiredField("username")
	case r.Phone == nil:
		return nil, response.ErrRequiredField("phone")
	case r.Name == nil:
		return nil, response.ErrRequiredField("name")
	case r.Email == nil:
		return nil, response.ErrRequiredField("email")
	case r.Photo == nil:
		return nil, response.ErrRequiredField("photo")
	}

	f := &profileFields{
		username: strings.TrimSpace(*r.Username),
		phone:    strings.TrimSpace(*r.Phone),
		name:     strings.TrimSpace(*r.Name),
		email:    strings.ToLower(strings.TrimSpace(*r.Email)),
		photoID:  *r.Photo,
	}
	if err := checkUsername(f.username); err != nil {
		return nil, err
	}
	if err := checkEmail(f.email); err != nil {
		return nil, err
	}
	if len(f.phone) > 20 {
		return nil, invalid("phone must not exceed 20 characters")
	}
	if len(f.name) > 30 {
		return nil, invalid("name must not exceed 30 characters")
	}
	return f, nil
}
