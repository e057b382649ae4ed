package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// PasswordHasher produces and checks salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Credentials is the credential store. Store faults leave it as
// *model.StorageError; domain failures are returned as sentinels.
type Credentials struct {
	users       model.UserStore
	predictions model.PredictionStore
	hasher      PasswordHasher
	logger      *logger.Logger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentials(
	users model.UserStore,
	predictions model.PredictionStore,
	hasher PasswordHasher,
	logger *logger.Logger,
) *Credentials {
	return &Credentials{
		users:       users,
		predictions: predictions,
		hasher:      hasher,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateUser hashes the password and stores a new user.
func (c *Credentials) CreateUser(ctx context.Context, nu model.NewUser) (int64, error) {
	hash, err := c.hasher.Hash(nu.Password)
	if err != nil {
		c.logger.Error("Credentials service: failed to hash password",
			"username", nu.Username,
			"error", err.Error())
		return 0, model.NewStorageError("hash password", err)
	}

	id, err := c.users.Create(ctx, model.User{
		Username:     nu.Username,
		Email:        nu.Email,
		PasswordHash: hash,
		FullName:     nu.FullName,
		CreatedAt:    c.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) || errors.Is(err, model.ErrDuplicateEmail) {
			c.logger.Info("Credentials service: duplicate user rejected",
				"username", nu.Username,
				"reason", err.Error())
			return 0, err
		}
		return 0, c.storageError("create user", err)
	}

	c.logger.Info("Credentials service: user created",
		"user_id", id,
		"username", nu.Username)
	return id, nil
}

// VerifyUser checks credentials and records the login time. Unknown users
// and wrong passwords both yield model.ErrInvalidCredentials.
func (c *Credentials) VerifyUser(ctx context.Context, username, password string) (model.PublicUser, error) {
	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.burnVerification(password)
			return model.PublicUser{}, model.ErrInvalidCredentials
		}
		return model.PublicUser{}, c.storageError("get user by username", err)
	}

	ok, err := c.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		c.logger.Error("Credentials service: stored password hash is unreadable",
			"user_id", user.ID,
			"error", err.Error())
		return model.PublicUser{}, model.ErrInvalidCredentials
	}
	if !ok {
		return model.PublicUser{}, model.ErrInvalidCredentials
	}

	if err := c.users.TouchLastLogin(ctx, user.ID, c.now().UTC()); err != nil {
		return model.PublicUser{}, c.storageError("update last login", err)
	}

	return user.Public(), nil
}

// burnVerification spends the same work as a real check so unknown
// usernames take as long as wrong passwords.
func (c *Credentials) burnVerification(password string) {
	c.dummyOnce.Do(func() {
		hash, err := c.hasher.Hash("unused-placeholder-password")
		if err != nil {
			c.logger.Warn("Credentials service: failed to prepare placeholder hash", "error", err.Error())
			return
		}
		c.dummyHash = hash
	})
	if c.dummyHash != "" {
		_, _ = c.hasher.Verify(password, c.dummyHash)
	}
}

func (c *Credentials) GetUserByID(ctx context.Context, id int64) (model.UserProfile, error) {
	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UserProfile{}, model.ErrNotFound
		}
		return model.UserProfile{}, c.storageError("get user by id", err)
	}
	return user.Profile(), nil
}

// UpdateProfile applies the non-empty fields of update.
func (c *Credentials) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error {
	update = update.Normalize()
	if update.Empty() {
		return nil
	}
	if update.Email != nil && !validEmail(*update.Email) {
		return model.ErrInvalidEmailFormat
	}

	if err := c.users.UpdateProfile(ctx, id, update); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) || errors.Is(err, model.ErrNotFound) {
			return err
		}
		return c.storageError("update profile", err)
	}

	c.logger.Info("Credentials service: profile updated", "user_id", id)
	return nil
}

// ChangePassword re-checks the current password, then replaces it with
// newPassword if that one is strong enough.
func (c *Credentials) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return c.storageError("get user by id", err)
	}

	ok, err := c.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil || !ok {
		return model.ErrInvalidOldPassword
	}
	if _, err := checkPassword(newPassword); err != nil {
		return err
	}

	hash, err := c.hasher.Hash(newPassword)
	if err != nil {
		return model.NewStorageError("hash password", err)
	}
	if err := c.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		return c.storageError("update password", err)
	}

	c.logger.Info("Credentials service: password changed", "user_id", id)
	return nil
}

// SavePrediction appends a history record.
func (c *Credentials) SavePrediction(ctx context.Context, p model.Prediction) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = c.now().UTC()
	}

	id, err := c.predictions.Create(ctx, p)
	if err != nil {
		return 0, c.storageError("save prediction", err)
	}
	return id, nil
}

// GetUserPredictions returns the most recent predictions first. A
// non-positive limit means DefaultHistoryLimit.
func (c *Credentials) GetUserPredictions(ctx context.Context, userID int64, limit int) ([]model.Prediction, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	predictions, err := c.predictions.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, c.storageError("list predictions", err)
	}
	return predictions, nil
}

// GetUserStats returns totals with averages rounded to two decimals.
func (c *Credentials) GetUserStats(ctx context.Context, userID int64) (model.PredictionStats, error) {
	stats, err := c.predictions.StatsByUser(ctx, userID)
	if err != nil {
		return model.PredictionStats{}, c.storageError("get prediction stats", err)
	}

	stats.Average = scoring.Round(stats.Average)
	stats.Highest = scoring.Round(stats.Highest)
	return stats, nil
}

func (c *Credentials) storageError(op string, err error) error {
	c.logger.Error("Credentials service: storage failure",
		"op", op,
		"error", err.Error())
	return model.NewStorageError(op, err)
}
