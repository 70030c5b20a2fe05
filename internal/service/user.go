package service

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/interview-api/internal/dto"
	domerr "github.com/hireloop/interview-api/internal/errors"
	"github.com/hireloop/interview-api/internal/model"
	ctxutil "github.com/hireloop/interview-api/pkg/context"
	"github.com/hireloop/interview-api/pkg/logger"
	"gorm.io/gorm"
)

// UserStore is the persistence surface UserService needs. Satisfied by
// repository.UserRepository; tests substitute an in-memory store.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, limit, offset int, activeOnly bool, search string) ([]model.User, int64, error)
	CountStats(ctx context.Context, since time.Time) (total, active, admins, recent int64, err error)
}

type UserService struct {
	userRepo    UserStore
	passwordSvc *PasswordService
	jwtSvc      *JWTService
}

func NewUserService(userRepo UserStore, passwordSvc *PasswordService, jwtSvc *JWTService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		jwtSvc:      jwtSvc,
	}
}

// Register creates a new account. Email and username must both be unused.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domerr.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, domerr.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	user := &model.User{
		Email:           req.Email,
		Username:        req.Username,
		HashedPassword:  hashedPassword,
		FullName:        req.FullName,
		Bio:             req.Bio,
		ExperienceLevel: req.ExperienceLevel,
		PreferredRole:   req.PreferredRole,
		IsActive:        true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered").
		String("username", user.Username).
		Uint("user_id", user.ID).
		Log()

	response := toUserResponse(user)
	return &response, nil
}

// Authenticate checks the identifier (username or email) and password.
// Unknown identifier and wrong password both return ErrBadCredentials,
// and bcrypt runs on both paths to keep timing comparable.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Authenticate")

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.passwordSvc.Verify(password, dummyBcryptDigest)
			logger.LogAuth(identifier, "login", false)
			return nil, domerr.ErrBadCredentials
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	if !s.passwordSvc.Verify(password, user.HashedPassword) {
		logger.LogAuth(identifier, "login", false)
		return nil, domerr.ErrBadCredentials
	}

	if !user.IsActive {
		logger.LogAuth(identifier, "login", false)
		return nil, domerr.ErrInactiveAccount
	}

	return user, nil
}

// dummyBcryptDigest is a digest of an unused password, compared against on
// the unknown-identifier path so both failure modes do comparable work.
const dummyBcryptDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates and issues an access token.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	tokenString, err := s.jwtSvc.IssueToken(user.Username, 0)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.WarnWithContext(ctx, "Failed to record last login").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}

	logger.LogAuth(user.Username, "login", true)

	return &dto.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwtSvc.Expiration().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

// RefreshToken issues a fresh access token for an already authenticated user.
func (s *UserService) RefreshToken(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "RefreshToken")

	tokenString, err := s.jwtSvc.IssueToken(user.Username, 0)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwtSvc.Expiration().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

// ResolveByUsername loads the live user row for a verified token subject.
func (s *UserService) ResolveByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrInvalidToken
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetProfile")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrUserNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	response := toUserResponse(user)
	return &response, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateProfile")

	fields := make(map[string]interface{})
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.ExperienceLevel != nil {
		fields["experience_level"] = *req.ExperienceLevel
	}
	if req.PreferredRole != nil {
		fields["preferred_role"] = *req.PreferredRole
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domerr.ErrUserNotFound
			}
			return nil, domerr.WrapError(domerr.ErrInternal, err)
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ChangePassword")

	if req.NewPassword != req.ConfirmPassword {
		return domerr.ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domerr.ErrUserNotFound
		}
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	if !s.passwordSvc.Verify(req.CurrentPassword, user.HashedPassword) {
		return domerr.ErrIncorrectPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(req.NewPassword)
	if err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return domerr.WrapError(domerr.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("user_id", userID).
		Log()

	return nil
}

// ListUsers is the admin view over all accounts.
func (s *UserService) ListUsers(ctx context.Context, page, perPage int, activeOnly bool, search string) (*dto.UserListResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListUsers")

	offset := (page - 1) * perPage
	users, total, err := s.userRepo.List(ctx, perPage, offset, activeOnly, search)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      out,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// SetUserActive toggles an account. Admins cannot deactivate themselves.
func (s *UserService) SetUserActive(ctx context.Context, actorID, targetID uint, active bool) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SetUserActive")

	if !active && actorID == targetID {
		return nil, domerr.ErrSelfDeactivation
	}

	if err := s.userRepo.SetActive(ctx, targetID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domerr.ErrUserNotFound
		}
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User active flag changed").
		Uint("target_id", targetID).
		Uint("actor_id", actorID).
		Bool("active", active).
		Log()

	return s.GetProfile(ctx, targetID)
}

// Statistics aggregates user counters for the admin dashboard.
func (s *UserService) Statistics(ctx context.Context) (*dto.UserStatistics, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Statistics")

	since := time.Now().AddDate(0, 0, -7)
	total, active, admins, recent, err := s.userRepo.CountStats(ctx, since)
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInternal, err)
	}

	return &dto.UserStatistics{
		TotalUsers:       total,
		ActiveUsers:      active,
		AdminUsers:       admins,
		NewUsersThisWeek: recent,
	}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FullName:        user.FullName,
		Bio:             user.Bio,
		ExperienceLevel: user.ExperienceLevel,
		PreferredRole:   user.PreferredRole,
		IsActive:        user.IsActive,
		IsAdmin:         user.IsAdmin,
		CreatedAt:       user.CreatedAt,
		LastLogin:       user.LastLogin,
	}
}

func totalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(total) / perPage
	if int(total)%perPage > 0 {
		pages++
	}
	return pages
}
