package services

import (
	"jobtrack_backend/internal/auth"
	"jobtrack_backend/internal/models"
	"jobtrack_backend/internal/repositories"
	"jobtrack_backend/internal/services/dto"
	"jobtrack_backend/pkg/apperrors"

	"net/http"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(userID string) (*dto.UserResponse, error)
	Users() ([]dto.UserResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	notifier Notifier
}

func NewAuthService(userRepo repositories.UserRepository, notifier Notifier) AuthService {
	return &authService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleApplicant
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth", "Email already registered", http.StatusConflict)
		}
		return nil, apperrors.InternalError(err)
	}

	// Best-effort, same isolation as the job notifications.
	s.notifier.SendWelcome(user)

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Users lists every registered account. Admin-only at the route level.
func (s *authService) Users() ([]dto.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}
