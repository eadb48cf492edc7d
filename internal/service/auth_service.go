package service

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"folio-be/internal/apperr"
	"folio-be/internal/models"
	"folio-be/internal/repository"
	"folio-be/internal/token"
)

// startingBalance is credited to every new account at registration
const startingBalance = 10000

// Permissive on purpose: one @, a dotted domain, no whitespace. Anything
// stricter rejects addresses that real mail servers accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(req *models.AuthRequest) (*models.AuthResponse, error)
	Login(req *models.AuthRequest) (*models.AuthResponse, error)
	GetUserData(userID string) (*models.UserDataResponse, error)
	UpdateBalance(userID string, balance *float64) error
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *token.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokenService *token.TokenService) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Register creates a new user account and logs it in immediately
func (s *authService) Register(req *models.AuthRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, apperr.Validation("Email, password and full name are required!")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("Please enter a valid email address!")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("Password must be at least 6 characters!")
	}

	// Check if user already exists
	_, err := s.userRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, apperr.Conflict("This email is already registered!")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal("failed to check existing user", err)
	}

	// Hash password. bcrypt salts per password, so two identical passwords
	// never share a stored hash.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user, err := s.userRepo.Create(req.Email, string(hashedPassword), req.FullName, startingBalance)
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	// Generate JWT token for automatic login after registration
	signed, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal("failed to generate token", err)
	}

	return &models.AuthResponse{
		Success: true,
		User: models.PublicUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Balance:  user.Balance,
		},
		Token: signed,
	}, nil
}

// Login authenticates a user and returns the public view with a fresh token.
// Unknown email and wrong password produce the identical error so callers
// cannot probe which half failed.
func (s *authService) Login(req *models.AuthRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Email and password are required!")
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication("Invalid email or password!")
		}
		return nil, apperr.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Authentication("Invalid email or password!")
	}

	signed, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal("failed to generate token", err)
	}

	return &models.AuthResponse{
		Success: true,
		User: models.PublicUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Balance:  user.Balance,
		},
		Token: signed,
	}, nil
}

// GetUserData returns the public view of a user by id
func (s *authService) GetUserData(userID string) (*models.UserDataResponse, error) {
	if userID == "" {
		return nil, apperr.Validation("UserId is required!")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, apperr.Internal("failed to look up user", err)
	}

	return &models.UserDataResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Balance:  user.Balance,
	}, nil
}

// UpdateBalance overwrites a user's balance. A nil balance is a missing
// field; zero is a legitimate value and must be accepted.
func (s *authService) UpdateBalance(userID string, balance *float64) error {
	if userID == "" || balance == nil {
		return apperr.Validation("UserId and balance are required!")
	}

	if err := s.userRepo.UpdateBalance(userID, *balance); err != nil {
		return apperr.Internal("failed to update balance", err)
	}

	return nil
}
