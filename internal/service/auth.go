package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/suryateja948/Restaurant-API/internal/auth"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users         repo.UserRepository
	authenticator *auth.Authenticator
	logger        *zap.SugaredLogger
}

func NewAuthService(
	users repo.UserRepository,
	authenticator *auth.Authenticator,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		users:         users,
		authenticator: authenticator,
		logger:        logger,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	role := domain.RoleUser
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, domain.BadRequest("Invalid role")
		}
		role = parsed
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.Conflict("Email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// the unique email index closes the check-then-create race
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("user signed up", "user_id", user.ID.Hex(), "role", user.Role)

	return user, nil
}

type LoginResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    LoginUserDTO `json:"user"`
}

type LoginUserDTO struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.Unauthorized("Invalid credentials")
	}

	token, err := s.authenticator.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Infow("user logged in", "user_id", user.ID.Hex())

	return &LoginResult{
		Message: "Login successful",
		Token:   token,
		User: LoginUserDTO{
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *AuthService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
