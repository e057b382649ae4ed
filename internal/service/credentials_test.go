package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/scorepredictor-server/internal/mocks"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type credentialsDeps struct {
	users       *mocks.UserStore
	predictions *mocks.PredictionStore
	hasher      *mocks.PasswordHasher
}

func newTestCredentials(t *testing.T) (*Credentials, credentialsDeps) {
	t.Helper()

	deps := credentialsDeps{
		users:       mocks.NewUserStore(t),
		predictions: mocks.NewPredictionStore(t),
		hasher:      mocks.NewPasswordHasher(t),
	}
	c := NewCredentials(deps.users, deps.predictions, deps.hasher, testutil.MakeNoopLogger())
	c.now = func() time.Time { return fixedNow }
	return c, deps
}

func strPtr(s string) *string { return &s }

func TestCredentials_CreateUser(t *testing.T) {
	dbErr := errors.New("disk I/O error")

	tests := []struct {
		name      string
		storeErr  error
		wantID    int64
		wantErr   error
		isStorage bool
	}{
		{name: "created", wantID: 42},
		{name: "duplicate username", storeErr: model.ErrDuplicateUsername, wantErr: model.ErrDuplicateUsername},
		{name: "duplicate email", storeErr: model.ErrDuplicateEmail, wantErr: model.ErrDuplicateEmail},
		{name: "storage fault", storeErr: dbErr, wantErr: dbErr, isStorage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newTestCredentials(t)
			deps.hasher.On("Hash", "secret1").Return("argon2id$hash", nil)
			deps.users.On("Create", mock.Anything, model.User{
				Username:     "alice",
				Email:        "a@x.com",
				PasswordHash: "argon2id$hash",
				FullName:     "Alice",
				CreatedAt:    fixedNow,
			}).Return(tt.wantID, tt.storeErr)

			id, err := c.CreateUser(context.Background(), model.NewUser{
				Username: "alice",
				Email:    "a@x.com",
				Password: "secret1",
				FullName: "Alice",
			})

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.isStorage, errors.Is(err, model.ErrStorage))
		})
	}
}

func TestCredentials_CreateUser_HashFailure(t *testing.T) {
	c, deps := newTestCredentials(t)
	deps.hasher.On("Hash", "secret1").Return("", errors.New("entropy exhausted"))

	_, err := c.CreateUser(context.Background(), model.NewUser{Username: "alice", Password: "secret1"})
	require.ErrorIs(t, err, model.ErrStorage)
}

func TestCredentials_VerifyUser_Success(t *testing.T) {
	c, deps := newTestCredentials(t)
	stored := model.User{ID: 7, Username: "alice", Email: "a@x.com", FullName: "Alice", PasswordHash: "stored"}

	deps.users.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
	deps.hasher.On("Verify", "secret1", "stored").Return(true, nil)
	deps.users.On("TouchLastLogin", mock.Anything, int64(7), fixedNow).Return(nil)

	user, err := c.VerifyUser(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, model.PublicUser{ID: 7, Username: "alice", Email: "a@x.com", FullName: "Alice"}, user)
}

func TestCredentials_VerifyUser_FailuresCollapse(t *testing.T) {
	t.Run("unknown username", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)
		deps.hasher.On("Hash", mock.Anything).Return("placeholder", nil).Once()
		deps.hasher.On("Verify", "secret1", "placeholder").Return(false, nil)

		_, err := c.VerifyUser(context.Background(), "ghost", "secret1")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)

		// The placeholder hash is computed once.
		_, err = c.VerifyUser(context.Background(), "ghost", "secret1")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: 7, PasswordHash: "stored"}, nil)
		deps.hasher.On("Verify", "wrong", "stored").Return(false, nil)

		_, err := c.VerifyUser(context.Background(), "alice", "wrong")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
		deps.users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("corrupt stored hash", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: 7, PasswordHash: "garbage"}, nil)
		deps.hasher.On("Verify", "secret1", "garbage").Return(false, errors.New("malformed"))

		_, err := c.VerifyUser(context.Background(), "alice", "secret1")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestCredentials_VerifyUser_StorageFault(t *testing.T) {
	c, deps := newTestCredentials(t)
	deps.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, errors.New("connection reset"))

	_, err := c.VerifyUser(context.Background(), "alice", "secret1")
	require.ErrorIs(t, err, model.ErrStorage)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestCredentials_GetUserByID(t *testing.T) {
	c, deps := newTestCredentials(t)
	last := fixedNow.Add(-time.Hour)
	deps.users.On("GetByID", mock.Anything, int64(7)).Return(model.User{
		ID: 7, Username: "alice", PasswordHash: "stored", CreatedAt: fixedNow, LastLogin: &last,
	}, nil)
	deps.users.On("GetByID", mock.Anything, int64(8)).Return(model.User{}, model.ErrNotFound)

	profile, err := c.GetUserByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, fixedNow, profile.CreatedAt)
	require.NotNil(t, profile.LastLogin)
	assert.Equal(t, last, *profile.LastLogin)

	_, err = c.GetUserByID(context.Background(), 8)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCredentials_UpdateProfile(t *testing.T) {
	t.Run("empty fields are not applied", func(t *testing.T) {
		c, _ := newTestCredentials(t)
		err := c.UpdateProfile(context.Background(), 7, model.ProfileUpdate{FullName: strPtr(""), Email: strPtr("")})
		require.NoError(t, err)
	})

	t.Run("only supplied fields mutate", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("UpdateProfile", mock.Anything, int64(7), model.ProfileUpdate{FullName: strPtr("Alice B")}).Return(nil)

		err := c.UpdateProfile(context.Background(), 7, model.ProfileUpdate{FullName: strPtr("Alice B"), Email: strPtr("")})
		require.NoError(t, err)
	})

	t.Run("bad email", func(t *testing.T) {
		c, _ := newTestCredentials(t)
		err := c.UpdateProfile(context.Background(), 7, model.ProfileUpdate{Email: strPtr("nope")})
		require.ErrorIs(t, err, model.ErrInvalidEmailFormat)
	})

	t.Run("email taken", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("UpdateProfile", mock.Anything, int64(7), mock.Anything).Return(model.ErrDuplicateEmail)

		err := c.UpdateProfile(context.Background(), 7, model.ProfileUpdate{Email: strPtr("b@x.com")})
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("storage fault", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("UpdateProfile", mock.Anything, int64(7), mock.Anything).Return(errors.New("boom"))

		err := c.UpdateProfile(context.Background(), 7, model.ProfileUpdate{Email: strPtr("b@x.com")})
		require.ErrorIs(t, err, model.ErrStorage)
	})
}

func TestCredentials_ChangePassword(t *testing.T) {
	t.Run("weak new password", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByID", mock.Anything, int64(7)).Return(model.User{ID: 7, PasswordHash: "stored"}, nil)
		deps.hasher.On("Verify", "secret1", "stored").Return(true, nil)

		err := c.ChangePassword(context.Background(), 7, "secret1", "abc")
		require.ErrorIs(t, err, model.ErrWeakPassword)
		deps.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("wrong old password wins over weak new one", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByID", mock.Anything, int64(7)).Return(model.User{ID: 7, PasswordHash: "stored"}, nil)
		deps.hasher.On("Verify", "wrong", "stored").Return(false, nil)

		err := c.ChangePassword(context.Background(), 7, "wrong", "abc")
		require.ErrorIs(t, err, model.ErrInvalidOldPassword)
	})

	t.Run("wrong old password", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByID", mock.Anything, int64(7)).Return(model.User{ID: 7, PasswordHash: "stored"}, nil)
		deps.hasher.On("Verify", "wrong", "stored").Return(false, nil)

		err := c.ChangePassword(context.Background(), 7, "wrong", "newsecret")
		require.ErrorIs(t, err, model.ErrInvalidOldPassword)
	})

	t.Run("changed", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByID", mock.Anything, int64(7)).Return(model.User{ID: 7, PasswordHash: "stored"}, nil)
		deps.hasher.On("Verify", "secret1", "stored").Return(true, nil)
		deps.hasher.On("Hash", "newsecret").Return("rehashed", nil)
		deps.users.On("UpdatePasswordHash", mock.Anything, int64(7), "rehashed").Return(nil)

		require.NoError(t, c.ChangePassword(context.Background(), 7, "secret1", "newsecret"))
	})

	t.Run("unknown user", func(t *testing.T) {
		c, deps := newTestCredentials(t)
		deps.users.On("GetByID", mock.Anything, int64(9)).Return(model.User{}, model.ErrNotFound)

		err := c.ChangePassword(context.Background(), 9, "secret1", "newsecret")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCredentials_SavePrediction(t *testing.T) {
	c, deps := newTestCredentials(t)
	deps.predictions.On("Create", mock.Anything, model.Prediction{
		UserID: 7, Score: 72.3, Grade: "B", Features: `{"a":1}`, CreatedAt: fixedNow,
	}).Return(int64(11), nil).Once()
	deps.predictions.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("readonly database")).Once()

	id, err := c.SavePrediction(context.Background(), model.Prediction{UserID: 7, Score: 72.3, Grade: "B", Features: `{"a":1}`})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	_, err = c.SavePrediction(context.Background(), model.Prediction{UserID: 7})
	require.ErrorIs(t, err, model.ErrStorage)
}

func TestCredentials_GetUserPredictions_Limit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default on zero", limit: 0, want: DefaultHistoryLimit},
		{name: "default on negative", limit: -3, want: DefaultHistoryLimit},
		{name: "as given", limit: 25, want: 25},
		{name: "capped", limit: 5000, want: MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, deps := newTestCredentials(t)
			deps.predictions.On("ListByUser", mock.Anything, int64(7), tt.want).Return([]model.Prediction{{ID: 1}}, nil)

			got, err := c.GetUserPredictions(context.Background(), 7, tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestCredentials_GetUserStats(t *testing.T) {
	c, deps := newTestCredentials(t)
	deps.predictions.On("StatsByUser", mock.Anything, int64(7)).Return(model.PredictionStats{
		Total: 3, Average: 71.456666, Highest: 88.004,
	}, nil)
	deps.predictions.On("StatsByUser", mock.Anything, int64(8)).Return(model.PredictionStats{}, nil)
	deps.predictions.On("StatsByUser", mock.Anything, int64(9)).Return(model.PredictionStats{}, errors.New("locked"))

	stats, err := c.GetUserStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, model.PredictionStats{Total: 3, Average: 71.46, Highest: 88}, stats)

	empty, err := c.GetUserStats(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, model.PredictionStats{}, empty)

	_, err = c.GetUserStats(context.Background(), 9)
	require.ErrorIs(t, err, model.ErrStorage)
}
