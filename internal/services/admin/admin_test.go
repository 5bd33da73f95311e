package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cod-analytics/backend/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountSubscriptionsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func TestService_Stats(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountUsers", mock.Anything).Return(10, nil)
	repo.On("CountSubscriptionsByStatus", mock.Anything).Return(map[string]int{
		models.StatusTrial:  6,
		models.StatusActive: 3,
	}, nil)

	stats, err := New(repo).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 6, stats.Subscriptions[models.StatusTrial])
	assert.Equal(t, 3, stats.Subscriptions[models.StatusActive])

	// статусы без подписок присутствуют с нулём
	assert.Equal(t, 0, stats.Subscriptions[models.StatusCancelled])
	assert.Equal(t, 0, stats.Subscriptions[models.StatusExpired])
	assert.Len(t, stats.Subscriptions, 4)
}

func TestService_Stats_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountUsers", mock.Anything).Return(0, errors.New("db down"))

	_, err := New(repo).Stats(context.Background())
	assert.Error(t, err)
}
