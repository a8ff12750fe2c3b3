package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/utils"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDemotion       = errors.New("admins cannot revoke their own admin role")
	ErrInvalidRole        = errors.New("role must be user or admin")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, environment string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

func (s *AuthService) Register(name, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validateRegisterInput(name, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
	)

	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil || user.PasswordHash == "" {
		// Google-only accounts have no password to check
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
	)

	return user, token, nil
}

// GoogleLogin finds or creates a user from a decoded Google ID token
// and issues the same session token as email/password login.
func (s *AuthService) GoogleLogin(idToken string) (*models.User, string, error) {
	claims, err := utils.DecodeGoogleToken(idToken)
	if err != nil {
		return nil, "", ErrInvalidGoogleToken
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}

	if user == nil {
		user, err = s.userRepo.GetByGoogleID(claims.Sub)
		if err != nil {
			return nil, "", err
		}
	}

	if user == nil {
		name := claims.Name
		if name == "" {
			name = email
		}
		user = &models.User{
			ID:       uuid.New(),
			Name:     name,
			Email:    email,
			GoogleID: claims.Sub,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			logger.Log.Error("Failed to create google user",
				zap.String("email", email),
				zap.Error(err),
			)
			return nil, "", err
		}
		logger.Log.Info("Google user created",
			zap.String("user_id", user.ID.String()),
		)
	} else if user.GoogleID == "" {
		user.GoogleID = claims.Sub
		if err := s.userRepo.Save(user); err != nil {
			return nil, "", err
		}
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetAllUsers lists every account for the admin user screen.
func (s *AuthService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateRole changes a user's role. The acting admin cannot demote
// themselves; demoting the only other admin is allowed.
func (s *AuthService) UpdateRole(actorID, targetID uuid.UUID, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if actorID == targetID && role != models.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		logger.Log.Error("Failed to update role",
			zap.String("target_id", targetID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	target.Role = role

	logger.Log.Info("User role updated",
		zap.String("actor_id", actorID.String()),
		zap.String("target_id", targetID.String()),
		zap.String("role", string(role)),
	)

	return target, nil
}

func (s *AuthService) validateRegisterInput(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if len(name) > 100 {
		return errors.New("name must be at most 100 characters")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	if len(email) > 100 {
		return errors.New("email too long")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return errors.New("password too long")
	}

	return nil
}
