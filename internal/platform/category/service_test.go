package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/internal/platform/category"
)

// MockRepository is a mock implementation of category.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *category.CustomCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*category.CustomCategory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.CustomCategory), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockRepository) Exists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func TestService_List(t *testing.T) {
	userID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetByUserID", mock.Anything, userID).Return([]*category.CustomCategory{
		{ID: uuid.New(), UserID: userID, Name: "Nuôi mèo"},
	}, nil)

	cats, err := category.NewService(repo).List(context.Background(), userID)
	require.NoError(t, err)

	// Standard set first, custom appended
	require.Greater(t, len(cats), 1)
	assert.Equal(t, "Ăn uống", cats[0].Name)
	assert.False(t, cats[0].Custom)

	last := cats[len(cats)-1]
	assert.Equal(t, "Nuôi mèo", last.Name)
	assert.True(t, last.Custom)
}

func TestService_Add(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a custom category", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Nuôi mèo").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *category.CustomCategory) bool {
			return c.UserID == userID && c.Name == "Nuôi mèo"
		})).Return(nil)

		c, err := category.NewService(repo).Add(context.Background(), userID, "Nuôi mèo")
		require.NoError(t, err)
		assert.Equal(t, "Nuôi mèo", c.Name)
		repo.AssertExpectations(t)
	})

	t.Run("refuses names that shadow a standard category", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := category.NewService(repo).Add(context.Background(), userID, "Ăn uống")
		assert.ErrorIs(t, err, category.ErrShadowsStandard)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("refuses duplicates", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Nuôi mèo").Return(true, nil)

		_, err := category.NewService(repo).Add(context.Background(), userID, "Nuôi mèo")
		assert.ErrorIs(t, err, category.ErrDuplicateCategory)
	})

	t.Run("refuses empty names", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := category.NewService(repo).Add(context.Background(), userID, "")
		assert.ErrorIs(t, err, category.ErrMissingName)
	})
}

func TestService_Remove(t *testing.T) {
	userID := uuid.New()

	t.Run("removes a custom category", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Nuôi mèo").Return(true, nil)
		repo.On("Delete", mock.Anything, userID, "Nuôi mèo").Return(nil)

		err := category.NewService(repo).Remove(context.Background(), userID, "Nuôi mèo")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("standard categories are read-only", func(t *testing.T) {
		repo := new(MockRepository)

		err := category.NewService(repo).Remove(context.Background(), userID, "Lương")
		assert.ErrorIs(t, err, category.ErrStandardReadOnly)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("unknown categories are reported", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Không có").Return(false, nil)

		err := category.NewService(repo).Remove(context.Background(), userID, "Không có")
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestService_Lookup(t *testing.T) {
	userID := uuid.New()

	t.Run("standard names resolve without touching the repo", func(t *testing.T) {
		repo := new(MockRepository)

		c, ok, err := category.NewService(repo).Lookup(context.Background(), userID, "Di chuyển")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, c.Custom)
	})

	t.Run("custom names resolve through the repo", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Nuôi mèo").Return(true, nil)

		c, ok, err := category.NewService(repo).Lookup(context.Background(), userID, "Nuôi mèo")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, c.Custom)
	})

	t.Run("unknown names miss", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", mock.Anything, userID, "Không có").Return(false, nil)

		_, ok, err := category.NewService(repo).Lookup(context.Background(), userID, "Không có")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
