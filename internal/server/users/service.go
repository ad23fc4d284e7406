package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dpatil-neu/skycatalog/internal/common"
	"github.com/dpatil-neu/skycatalog/internal/server/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the identity operations: signup, login, password reset
// and the self-service plan upgrade ladder.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, jwtSecret string, accessTokenValidityDuration time.Duration) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(jwtSecret),
		accessTokenValidityDuration: accessTokenValidityDuration,
	}
}

func (s *Service) Register(ctx context.Context, fullName, username, password string) (*User, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Username:     username,
		PasswordHash: string(hash),
		Plan:         PlanFree,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues an access token carrying the
// username. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

func (s *Service) UpdatePassword(ctx context.Context, username, newPassword string) error {

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, username, string(hash))
}

func (s *Service) Details(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpgradePlan advances the user one step up the Free→Gold→Platinum ladder
// and persists the change. Platinum (and Admin) users keep their tier; the
// call is a no-op then.
func (s *Service) UpgradePlan(ctx context.Context, username string) (Plan, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	next := user.Plan.Next()
	if next == user.Plan {
		return user.Plan, nil
	}

	if err := s.repo.UpdatePlan(ctx, username, next); err != nil {
		return "", err
	}

	return next, nil
}
