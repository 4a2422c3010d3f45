package service

import (
	"context"
	"testing"
	"time"

	"smartschedule-api/core/config"
	"smartschedule-api/core/constants"
	"smartschedule-api/core/errors"
	"smartschedule-api/core/utils"
	"smartschedule-api/modules/auth/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCache struct {
	attempts map[string]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{attempts: map[string]int{}}
}

// keys are prefixed exactly like the redis cache, so a caller that prefixes
// again would miss its own counter
func (f *fakeCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	f.attempts[constants.RedisKeyLoginAttempts+key]++
	return nil
}

func (f *fakeCache) LoginAttempts(ctx context.Context, key string) (int, error) {
	return f.attempts[constants.RedisKeyLoginAttempts+key], nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) SetLastScanAt(ctx context.Context, at time.Time) error { return nil }
func (f *fakeCache) LastScanAt(ctx context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (f *fakeCache) Close() error { return nil }

func setupAuthWithCache(t *testing.T) (*AuthService, *fakeCache) {
	svc := setupAuth(t)
	c := newFakeCache()
	svc.cache = c
	return svc, c
}

func setupAuth(t *testing.T) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("AUTH_USERNAME", "admin")
	t.Setenv("AUTH_PASSWORD_HASH", string(hash))
	t.Setenv("JWT_SECRET", "test-secret")

	_, err = config.Load()
	require.NoError(t, err)

	return NewAuthService(newFakeCache())
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupAuth(t)

	resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "s3cret",
	})

	require.Nil(t, appErr)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	tokenData, err := utils.ValidateAndParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", tokenData.Username)
	assert.Equal(t, constants.ScopeTokenAccess, tokenData.Scope)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuth(t)

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestAuthService_Login_ThrottledAfterRepeatedFailures(t *testing.T) {
	svc, cache := setupAuthWithCache(t)

	for n := 0; n < constants.MaxLoginAttempts; n++ {
		_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "admin",
			Password: "wrong",
		})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
	}

	// even the right password is refused while the account is blocked
	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "s3cret",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	// the counter lives under a single login_attempts: prefix
	assert.Equal(t, constants.MaxLoginAttempts,
		cache.attempts[constants.RedisKeyLoginAttempts+"admin"])
}

func TestAuthService_Refresh(t *testing.T) {
	svc := setupAuth(t)

	login, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "s3cret",
	})
	require.Nil(t, appErr)

	refreshed, appErr := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.Nil(t, appErr)
	assert.NotEmpty(t, refreshed.AccessToken)

	// an access token is not accepted in place of a refresh token
	_, appErr = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}
