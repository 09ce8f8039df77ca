package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	*MemoryStorage
	getErr, setErr error
}

func (f *failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f *failingStorage) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func (f *failingStorage) Delete(ctx context.Context, key string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Delete(ctx, key)
}

func TestStore_LoadsPersistedValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	require.NoError(t, mem.Set(ctx, KeyBearerToken, "tok"))
	require.NoError(t, mem.Set(ctx, KeyAdminAPIKey, "adm"))

	s, err := New(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, "tok", s.BearerToken())
	assert.Equal(t, "adm", s.AdminAPIKey())
}

func TestStore_LoadedOnlyOnce(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()

	s, err := New(ctx, mem)
	require.NoError(t, err)

	require.NoError(t, mem.Set(ctx, KeyBearerToken, "later"))
	assert.Empty(t, s.BearerToken())
}

func TestStore_SetAndClear(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	s, err := New(ctx, nil)
	require.NoError(t, err)
	s.storage = mem

	require.NoError(t, s.SetBearerToken(ctx, "tok"))
	require.NoError(t, s.SetAdminAPIKey(ctx, "adm"))

	v, ok, _ := mem.Get(ctx, KeyBearerToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
	v, ok, _ = mem.Get(ctx, KeyAdminAPIKey)
	assert.True(t, ok)
	assert.Equal(t, "adm", v)

	require.NoError(t, s.SetBearerToken(ctx, ""))
	_, ok, _ = mem.Get(ctx, KeyBearerToken)
	assert.False(t, ok, "empty token removes the key")

	require.NoError(t, s.SetBearerToken(ctx, "tok2"))
	require.NoError(t, s.ClearAll(ctx))
	assert.Empty(t, s.BearerToken())
	assert.Empty(t, s.AdminAPIKey())
	_, ok, _ = mem.Get(ctx, KeyBearerToken)
	assert.False(t, ok)
	_, ok, _ = mem.Get(ctx, KeyAdminAPIKey)
	assert.False(t, ok)
}

func TestStore_LoadFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(context.Background(), &failingStorage{MemoryStorage: NewMemoryStorage(), getErr: boom})
	assert.ErrorIs(t, err, boom)
}

func TestStore_PersistFailureIsLoggedAndReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	logger, hook := test.NewNullLogger()

	s, err := New(ctx, &failingStorage{MemoryStorage: NewMemoryStorage(), setErr: boom}, WithLogger(logger))
	require.NoError(t, err)

	err = s.SetBearerToken(ctx, "tok")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "tok", s.BearerToken(), "memory value changes even when persisting fails")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, KeyBearerToken, hook.LastEntry().Data["key"])

	err = s.ClearAll(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.BearerToken())
}
