package modmin

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"loan-office/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Save(ctx context.Context, m *Modmin) error {
	ret := _m.Called(ctx, m)
	return ret.Error(0)
}

func (_m *MockRepository) FindByID(ctx context.Context, id string) (*Modmin, error) {
	ret := _m.Called(ctx, id)

	var r0 *Modmin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Modmin)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindByEmail(ctx context.Context, email string) (*Modmin, error) {
	ret := _m.Called(ctx, email)

	var r0 *Modmin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Modmin)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindAll(ctx context.Context, role Role) ([]*Modmin, error) {
	ret := _m.Called(ctx, role)

	var r0 []*Modmin
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Modmin)
	}
	return r0, ret.Error(1)
}

var _ Repository = (*MockRepository)(nil)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("should authenticate an active account with the right password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		account := &Modmin{
			ID:           "adm-1",
			Email:        "admin@example.com",
			PasswordHash: hashFor(t, "correct horse"),
			Role:         RoleAdmin,
			Active:       true,
		}
		mockRepo.On("FindByEmail", ctx, "admin@example.com").Return(account, nil)

		result, err := service.Authenticate(ctx, " Admin@Example.com ", "correct horse")

		assert.NoError(t, err)
		assert.Equal(t, "adm-1", result.ID)
	})

	t.Run("should reject a wrong password as unauthorized", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		account := &Modmin{PasswordHash: hashFor(t, "correct horse"), Active: true}
		mockRepo.On("FindByEmail", ctx, "admin@example.com").Return(account, nil)

		_, err := service.Authenticate(ctx, "admin@example.com", "wrong")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("should reject an unknown email as unauthorized", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrNotFound)

		_, err := service.Authenticate(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("should refuse a suspended account even with the right password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		account := &Modmin{PasswordHash: hashFor(t, "correct horse"), Active: false}
		mockRepo.On("FindByEmail", ctx, "mod@example.com").Return(account, nil)

		_, err := service.Authenticate(ctx, "mod@example.com", "correct horse")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestAddModerator(t *testing.T) {
	ctx := context.Background()

	t.Run("should hash the password and save a Moderator role account", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		mockRepo.On("FindByEmail", ctx, "mod@example.com").Return(nil, ErrNotFound)
		mockRepo.On("Save", ctx, mock.AnythingOfType("*modmin.Modmin")).Return(nil)

		moderator, err := service.AddModerator(ctx, "mod@example.com", "Smith", "Ada", "s3cret-pass")

		assert.NoError(t, err)
		assert.Equal(t, RoleModerator, moderator.Role)
		assert.True(t, moderator.Active)
		assert.NotEqual(t, "s3cret-pass", moderator.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(moderator.PasswordHash), []byte("s3cret-pass")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject a short password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		_, err := service.AddModerator(ctx, "mod@example.com", "Smith", "", "short")

		var vErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		mockRepo.On("FindByEmail", ctx, "mod@example.com").Return(&Modmin{ID: "existing"}, nil)

		_, err := service.AddModerator(ctx, "mod@example.com", "Smith", "", "s3cret-pass")

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})
}

func TestToggleStatusService(t *testing.T) {
	ctx := context.Background()

	t.Run("should flip active to suspended and back", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		account := &Modmin{ID: "mod-1", Active: true}
		mockRepo.On("FindByID", ctx, "mod-1").Return(account, nil)
		mockRepo.On("Save", ctx, account).Return(nil)

		result, err := service.ToggleStatus(ctx, "mod-1")
		assert.NoError(t, err)
		assert.False(t, result.Active)

		result, err = service.ToggleStatus(ctx, "mod-1")
		assert.NoError(t, err)
		assert.True(t, result.Active)
	})

	t.Run("should surface not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewModminService(mockRepo, logger)

		mockRepo.On("FindByID", ctx, "missing").Return(nil, ErrNotFound)

		_, err := service.ToggleStatus(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, Actor{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{Role: RoleModerator}.IsAdmin())
}

func TestListModeratorsService(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	service := NewModminService(mockRepo, logger)

	expected := []*Modmin{{ID: "mod-1", Role: RoleModerator}}
	mockRepo.On("FindAll", ctx, RoleModerator).Return(expected, nil)

	moderators, err := service.ListModerators(ctx)

	assert.NoError(t, err)
	assert.Len(t, moderators, 1)
}
