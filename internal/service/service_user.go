package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/internal/validators"
	"github.com/MKhiriev/clearnext/models"
	"golang.org/x/crypto/bcrypt"
)

// IDGenerator produces unique identifiers with a given prefix.
type IDGenerator interface {
	NewID(prefix string) string
}

// userService is the concrete implementation of UserService.
//
// Passwords of registered users are stored as bcrypt hashes. Login failures
// for an unknown email and for a wrong password are indistinguishable to the
// caller, including in timing: an unknown email is still checked against a
// dummy hash.
type userService struct {
	users     store.UserRepository
	tx        store.TxManager
	validator validators.Validator
	ids       IDGenerator

	hashCost           int
	defaultJourneyDays int
	dummyHash          []byte

	now    func() time.Time
	logger *logger.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users store.UserRepository, tx store.TxManager, validator validators.Validator, cfg config.App, logger *logger.Logger) (UserService, error) {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("clearnext-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hashing: %w", err)
	}

	journeyDays := cfg.DefaultJourneyDays
	if journeyDays == 0 {
		journeyDays = models.DefaultJourneyDays
	}

	return &userService{
		users:              users,
		tx:                 tx,
		validator:          validator,
		ids:                utils.NewUUIDGenerator(),
		hashCost:           cost,
		defaultJourneyDays: journeyDays,
		dummyHash:          dummyHash,
		now:                time.Now,
		logger:             logger,
	}, nil
}

// CreateGuest creates an anonymous user with a GUEST_ id.
func (s *userService) CreateGuest(ctx context.Context, req models.GuestRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user := s.newUser(req, utils.GuestIDPrefix, models.UserTypeGuest)

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.CreateGuest").Msg("guest creation ended with error")
		return models.User{}, fmt.Errorf("guest creation ended with error: %w", err)
	}

	return created, nil
}

// Register creates a registered user with a REG_ id. The email is stored
// lower-cased and the password only as a bcrypt hash.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := s.newUser(req.GuestRequest, utils.RegisteredIDPrefix, models.UserTypeRegistered)
	user.Email = normalizeEmail(req.Email)
	user.PasswordHash = string(hash)

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Register").Msg("user registration ended with error")
		return models.User{}, fmt.Errorf("user registration ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates a registered user. Every credential mismatch yields
// ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		// keep the response time of unknown emails close to wrong passwords
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		log.Debug().Str("func", "*userService.Login").Msg("login for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("func", "*userService.Login").Str("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateUser changes profile fields. A shorter journey is accepted only if
// it still covers every completed day.
func (s *userService) UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	var updated models.User
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.users.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		if req.JourneyDays != nil && *req.JourneyDays < current.CurrentDay-1 {
			return ErrJourneyTooShort
		}

		updated, err = s.users.UpdateUser(ctx, userID, req)
		return err
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) && !errors.Is(err, ErrJourneyTooShort) {
			logger.FromContext(ctx).Err(err).Str("func", "*userService.UpdateUser").Msg("user update ended with error")
		}
		return models.User{}, err
	}

	return updated, nil
}

func (s *userService) newUser(req models.GuestRequest, prefix string, userType models.UserType) models.User {
	journeyDays := req.JourneyDays
	if journeyDays == 0 {
		journeyDays = s.defaultJourneyDays
	}

	return models.User{
		UserID:        s.ids.NewID(prefix),
		Name:          strings.TrimSpace(req.Name),
		Status:        strings.TrimSpace(req.Status),
		ConfusionArea: strings.TrimSpace(req.ConfusionArea),
		StruggleType:  strings.TrimSpace(req.StruggleType),
		JourneyDays:   journeyDays,
		CurrentDay:    1,
		UserType:      userType,
		CreatedAt:     s.now().UTC(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
