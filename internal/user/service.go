package user

import (
	"context"
	"errors"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/internal/model/media"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/internal/permission"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// bcryptCost is lowered by tests
var bcryptCost = bcrypt.DefaultCost

type UserService struct {
	userRepo *UserRepository
	// sessions is nil when Redis is disabled
	sessions *SessionStore
	jwt      config.JWTConfig
}

func NewUserService(db *gorm.DB, sessions *SessionStore, jwtConf config.JWTConfig) *UserService {
	return &UserService{
		userRepo: NewUserRepository(db),
		sessions: sessions,
		jwt:      jwtConf,
	}
}

func errSessionsUnavailable() *response.BusinessError {
	return response.ErrOperationFailed("refresh sessions are unavailable", nil)
}

func errBadCredentials() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("invalid username or password"),
	)
}

func (s *UserService) conflict(ctx context.Context, username, email string, excludeID uint) error {
	existing, err := s.userRepo.FindConflict(ctx, username, email, excludeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return response.ErrStore("failed to check existing users", err)
	}

	msg := "email is already registered"
	if existing.Username == username {
		msg = "username already exists"
	}
	return response.NewBusinessError(
		response.WithErrorCode(response.Conflict),
		response.WithErrorMessage(msg),
	)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", response.ErrStore("failed to hash password", err)
	}
	return string(hash), nil
}

// Register creates a student or lecturer account. Lecturers start as
// temporary accounts until an administrator onboards them. A password the
// server generates is returned once and never stored in clear.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	email, username, err := req.validate()
	if err != nil {
		return nil, err
	}

	if err := s.conflict(ctx, username, email, 0); err != nil {
		return nil, err
	}

	password, generated := req.Password, ""
	if password == "" {
		if password, err = randomToken(); err != nil {
			return nil, response.ErrStore("failed to generate password", err)
		}
		generated = password
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &userModel.User{
		Email:        email,
		Username:     username,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         userModel.RoleStudent,
		AccountType:  userModel.AccountNormal,
		OwnerCourse:  datatypes.JSONSlice[uint]{},
	}
	if req.Role == userModel.RoleLecturer {
		u.Role = userModel.RoleLecturer
		u.AccountType = userModel.AccountTemporary
		u.TemporaryUser = true
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("username or email already exists"),
			)
		}
		return nil, response.ErrStore("failed to create user", err)
	}

	logger.L().Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return &RegisterResponse{
		UserView:         toUserView(u),
		PasswordResponse: PasswordResponse{Password: generated},
	}, nil
}

// issue signs an access token for u and, when sessions are available, a
// refresh token.
func (s *UserService) issue(ctx context.Context, u *userModel.User) (*TokenResponse, error) {
	access, err := authsdk.GenerateToken(authsdk.UserContext{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, s.jwt.Secret, time.Duration(s.jwt.ExpireTime)*time.Hour)
	if err != nil {
		return nil, response.ErrStore("failed to sign access token", err)
	}

	var refresh string
	if s.sessions != nil {
		refresh, err = s.sessions.Issue(ctx, SessionData{UserID: u.ID, Username: u.Username, Role: u.Role})
		if err != nil {
			return nil, response.ErrStore("failed to store refresh token", err)
		}
	}

	return &TokenResponse{
		Access:      access,
		Refresh:     refresh,
		ProfileView: toProfileView(u, s.photoOf(ctx, u)),
	}, nil
}

func (s *UserService) photoOf(ctx context.Context, u *userModel.User) *media.Photo {
	if u.PhotoID == nil {
		return nil
	}
	photo, err := s.userRepo.GetPhoto(ctx, *u.PhotoID)
	if err != nil {
		return nil
	}
	return photo
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials()
		}
		return nil, response.ErrStore("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, errBadCredentials()
	}

	logger.L().Info("user logged in", zap.Uint("user_id", u.ID))
	return s.issue(ctx, u)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair
// is issued with the user's current role.
func (s *UserService) Refresh(ctx context.Context, token string) (*TokenResponse, error) {
	if s.sessions == nil {
		return nil, errSessionsUnavailable()
	}

	data, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage("refresh token is invalid or expired"),
			)
		}
		return nil, response.ErrStore("failed to read refresh token", err)
	}

	revoked, err := s.sessions.Revoke(ctx, token, data.UserID)
	if err != nil {
		return nil, response.ErrStore("failed to revoke refresh token", err)
	}
	if !revoked {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("refresh token is invalid or expired"),
		)
	}

	u, err := s.userRepo.GetByID(ctx, data.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrUnauthorized()
		}
		return nil, response.ErrStore("failed to load user", err)
	}

	return s.issue(ctx, u)
}

func (s *UserService) Me(ctx context.Context, actor *authsdk.UserContext) (*ProfileView, error) {
	if !actor.Authenticated() {
		return nil, response.ErrUnauthorized()
	}
	u, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound("user", actor.UserID)
		}
		return nil, response.ErrStore("failed to load user", err)
	}
	view := toProfileView(u, s.photoOf(ctx, u))
	return &view, nil
}

func (s *UserService) loadSelf(ctx context.Context, actor *authsdk.UserContext) (*userModel.User, error) {
	if !actor.Authenticated() {
		return nil, response.ErrUnauthorized()
	}
	u, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrUnauthorized()
		}
		return nil, response.ErrStore("failed to load user", err)
	}
	return u, nil
}

func (s *UserService) setPassword(ctx context.Context, u *userModel.User, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return response.ErrStore("failed to update password", err)
	}
	if s.sessions != nil {
		if err := s.sessions.RevokeAll(ctx, u.ID); err != nil {
			logger.L().Warn("refresh tokens not revoked", zap.Uint("user_id", u.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *UserService) verifyOld(u *userModel.User, req *PasswordRequest) error {
	if req.OldPassword == nil || *req.OldPassword == "" {
		return response.ErrRequiredField("old_password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*req.OldPassword)) != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("old password is wrong"),
		)
	}
	return nil
}

// ChangePassword replaces the caller's password and signs out every
// other session.
func (s *UserService) ChangePassword(ctx context.Context, actor *authsdk.UserContext, req *PasswordRequest) error {
	u, err := s.loadSelf(ctx, actor)
	if err != nil {
		return err
	}
	if err := s.verifyOld(u, req); err != nil {
		return err
	}
	if req.NewPassword == nil || *req.NewPassword == "" {
		return response.ErrRequiredField("new_password")
	}
	if err := checkPassword(*req.NewPassword); err != nil {
		return err
	}
	if err := s.setPassword(ctx, u, *req.NewPassword); err != nil {
		return err
	}

	logger.L().Info("password changed", zap.Uint("user_id", u.ID))
	return nil
}

// ResetPassword works like ChangePassword but generates the new password
// when none is given and returns it once.
func (s *UserService) ResetPassword(ctx context.Context, actor *authsdk.UserContext, req *PasswordRequest) (*PasswordResponse, error) {
	u, err := s.loadSelf(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := s.verifyOld(u, req); err != nil {
		return nil, err
	}

	resp := &PasswordResponse{}
	password := ""
	if req.NewPassword != nil && *req.NewPassword != "" {
		password = *req.NewPassword
		if err := checkPassword(password); err != nil {
			return nil, err
		}
	} else {
		if password, err = randomToken(); err != nil {
			return nil, response.ErrStore("failed to generate password", err)
		}
		resp.Password = password
	}

	if err := s.setPassword(ctx, u, password); err != nil {
		return nil, err
	}

	logger.L().Info("password reset", zap.Uint("user_id", u.ID))
	return resp, nil
}

// UpdateProfile assigns username, phone, name, email and photo of the caller
func (s *UserService) UpdateProfile(ctx context.Context, actor *authsdk.UserContext, req *UpdateRequest) (*ProfileView, error) {
	u, err := s.loadSelf(ctx, actor)
	if err != nil {
		return nil, err
	}

	f, err := req.validate()
	if err != nil {
		return nil, err
	}

	photo, err := s.userRepo.GetPhoto(ctx, f.photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound("photo", f.photoID)
		}
		return nil, response.ErrStore("failed to load photo", err)
	}

	if err := s.conflict(ctx, f.username, f.email, u.ID); err != nil {
		return nil, err
	}

	u.Username = f.username
	u.Phone = f.phone
	u.Name = f.name
	u.Email = f.email
	u.PhotoID = &photo.ID

	if err := s.userRepo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("username or email already exists"),
			)
		}
		return nil, response.ErrStore("failed to update profile", err)
	}

	view := toProfileView(u, photo)
	return &view, nil
}

func toUserViews(users []userModel.User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return views
}

// List returns every account to an administrator, optionally by role
func (s *UserService) List(ctx context.Context, actor *authsdk.UserContext, q ListQuery) ([]UserView, error) {
	if err := permission.Authorize(actor, permission.UserAdmin, 0); err != nil {
		return nil, err
	}
	if q.Position != "" && permission.GetRoleLevel(q.Position) == permission.RoleLevelUnknown {
		return nil, invalid("position must be student, lecturer or admin")
	}

	users, err := s.userRepo.List(ctx, q.Position)
	if err != nil {
		return nil, response.ErrStore("failed to list users", err)
	}
	return toUserViews(users), nil
}

// Delete removes a single account; its courses go with it
func (s *UserService) Delete(ctx context.Context, actor *authsdk.UserContext, id uint) error {
	if err := permission.Authorize(actor, permission.UserAdmin, 0); err != nil {
		return err
	}
	if id == actor.UserID {
		return invalid("administrators cannot delete their own account")
	}

	ok, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return response.ErrStore("failed to delete user", err)
	}
	if !ok {
		return response.ErrNotFound("user", id)
	}

	if s.sessions != nil {
		if err := s.sessions.RevokeAll(ctx, id); err != nil {
			logger.L().Warn("refresh tokens not revoked", zap.Uint("user_id", id), zap.Error(err))
		}
	}
	logger.L().Info("user deleted", zap.Uint("user_id", id), zap.Uint("actor_id", actor.UserID))
	return nil
}

// ListTemporary returns lecturers waiting for onboarding
func (s *UserService) ListTemporary(ctx context.Context, actor *authsdk.UserContext) ([]UserView, error) {
	if err := permission.Authorize(actor, permission.UserAdmin, 0); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListTemporary(ctx)
	if err != nil {
		return nil, response.ErrStore("failed to list temporary users", err)
	}
	return toUserViews(users), nil
}

// Onboard clears the temporary flag of a lecturer account
func (s *UserService) Onboard(ctx context.Context, actor *authsdk.UserContext, id uint) error {
	if err := permission.Authorize(actor, permission.UserAdmin, 0); err != nil {
		return err
	}
	ok, err := s.userRepo.ClearTemporary(ctx, id)
	if err != nil {
		return response.ErrStore("failed to onboard user", err)
	}
	if !ok {
		return response.ErrNotFound("user", id)
	}

	logger.L().Info("user onboarded", zap.Uint("user_id", id))
	return nil
}
