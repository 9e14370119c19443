package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"account-service/internal/events"
	"account-service/internal/model"
	"account-service/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordHashCost matches bcrypt.DefaultCost.
	PasswordHashCost  = 10
	MinPasswordLength = 6
	// bcrypt only accepts up to 72 bytes of input.
	MaxPasswordBytes = 72
	// MaxDailyGoal is a full day in minutes.
	MaxDailyGoal = 1440
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrPreferencesNotSet  = errors.New("no preferences found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	Preferences model.Preferences
}

// UpdateProfileParams is a sparse update; nil fields are left untouched.
type UpdateProfileParams struct {
	Name      *string
	Language  *string
	Level     *string
	Reason    *string
	DailyGoal *int
	AvatarURL *string
}

type UserService interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*model.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error)
	SavePreferences(ctx context.Context, userID uuid.UUID, prefs model.Preferences) (*model.Preferences, error)
	// Wait blocks until every event published so far has been handed to the
	// publisher.
	Wait()
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.EventPublisher
	// dummyHash is compared against when the email is unknown so that a miss
	// costs the same bcrypt work as a wrong password.
	dummyHash []byte
	pending   sync.WaitGroup
}

func NewUserService(userRepo repository.UserRepository, publisher events.EventPublisher) (UserService, error) {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}

	dummyHash, err := bcrypt.GenerateFromPassword(seed, PasswordHashCost)
	if err != nil {
		return nil, err
	}

	return &userService{
		userRepo:  userRepo,
		publisher: publisher,
		dummyHash: dummyHash,
	}, nil
}

func (s *userService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if err := validateRegistration(params); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, storageError(err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hashedPassword),
		Language:     params.Preferences.Language,
		Level:        params.Preferences.Level,
		Reason:       params.Preferences.Reason,
		DailyGoal:    params.Preferences.DailyGoal,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageError(err)
	}

	s.publish(func() error { return s.publisher.PublishUserRegistered(created) })

	return created, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, storageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*model.User, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if err := validateDailyGoal(params.DailyGoal); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, userID, repository.UpdateUserParams{
		Name:      params.Name,
		Language:  params.Language,
		Level:     params.Level,
		Reason:    params.Reason,
		DailyGoal: params.DailyGoal,
		AvatarURL: params.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError(err)
	}

	s.publish(func() error { return s.publisher.PublishPreferencesUpdated(updated) })

	return updated, nil
}

func (s *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs := user.Preferences()
	if prefs.IsEmpty() {
		return nil, ErrPreferencesNotSet
	}

	return &prefs, nil
}

func (s *userService) SavePreferences(ctx context.Context, userID uuid.UUID, prefs model.Preferences) (*model.Preferences, error) {
	updated, err := s.UpdateProfile(ctx, userID, UpdateProfileParams{
		Language:  prefs.Language,
		Level:     prefs.Level,
		Reason:    prefs.Reason,
		DailyGoal: prefs.DailyGoal,
	})
	if err != nil {
		return nil, err
	}

	saved := updated.Preferences()
	return &saved, nil
}

func (s *userService) Wait() {
	s.pending.Wait()
}

// publish runs fn in the background; Wait drains it.
func (s *userService) publish(fn func() error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := fn(); err != nil {
			slog.Warn("Failed to publish user event", slog.String("error", err.Error()))
		}
	}()
}

func validateRegistration(params RegisterParams) error {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Email) == "" || params.Password == "" {
		return fmt.Errorf("%w: name, email, and password are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(params.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if len(params.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	return validateDailyGoal(params.Preferences.DailyGoal)
}

func validateDailyGoal(goal *int) error {
	if goal != nil && (*goal < 0 || *goal > MaxDailyGoal) {
		return fmt.Errorf("%w: daily goal must be between 0 and %d", ErrInvalidInput, MaxDailyGoal)
	}
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
