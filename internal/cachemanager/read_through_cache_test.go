package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key string) ([]string, bool) {
	args := m.Called(ctx, key)
	v, _ := args.Get(0).([]string)
	return v, args.Bool(1)
}

func (m *mockCacheManager) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) ([]string, bool) {
	args := m.Called(ctx, key, ttl)
	v, _ := args.Get(0).([]string)
	return v, args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key string, value []string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCacheManager) Len() int {
	return m.Called().Int(0)
}

func loader(calls *int) func(context.Context, string) ([]string, error) {
	return func(_ context.Context, query string) ([]string, error) {
		*calls++
		if query == "fail" {
			return nil, errors.New("loader failed")
		}
		return []string{"match:" + query}, nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager{}
	calls := 0
	rt := NewReadThroughCache[string, []string, string](managerMock, loader(&calls), true)

	got, err := rt.Get(context.Background(), "key", "sc", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"match:sc"}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return([]string{"cached"}, true)

	calls := 0
	rt := NewReadThroughCache[string, []string, string](managerMock, loader(&calls), false)

	got, err := rt.Get(context.Background(), "key", "sc", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"cached"}, got)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return(nil, false)
	managerMock.On("Set", mock.Anything, "key", []string{"match:sc"}, time.Minute).Return()

	calls := 0
	rt := NewReadThroughCache[string, []string, string](managerMock, loader(&calls), false)

	got, err := rt.Get(context.Background(), "key", "sc", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"match:sc"}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_LoaderErrorNotStored(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return(nil, false)

	calls := 0
	rt := NewReadThroughCache[string, []string, string](managerMock, loader(&calls), false)

	_, err := rt.Get(context.Background(), "key", "fail", time.Minute)
	require.EqualError(t, err, "loader failed")
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("GetWithRefresh", mock.Anything, "key", time.Minute).Return([]string{"cached"}, true)

	calls := 0
	rt := NewReadThroughCache[string, []string, string](managerMock, loader(&calls), false)

	got, err := rt.GetWithRefresh(context.Background(), "key", "sc", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"cached"}, got)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_WithRealCache(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []string]("filter", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rt := NewReadThroughCache[string, []string, string](cache, loader(&calls), false)
	ctx := context.Background()

	for range 3 {
		got, err := rt.GetWithRefresh(ctx, "substring:art", "art", time.Minute)
		require.NoError(t, err)
		require.Equal(t, []string{"match:art"}, got)
	}
	require.Equal(t, 1, calls)

	require.NoError(t, rt.Invalidate(ctx))
	_, err := rt.Get(ctx, "substring:art", "art", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
