package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestService_NewSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(time.Hour, rdb)
	require.NotNil(t, authService)
	assert.Equal(t, time.Hour, authService.ttl)

	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}

	now := time.Now()
	userID := 42
	sessionKey := sessionKeyPrefix + testToken
	mock.ExpectSet(sessionKey, sessionValue(userID, now), 0).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)

	token, err := authService.NewSession(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Logout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(time.Hour, rdb)

	token := "test_token"
	sessionKey := sessionKeyPrefix + token
	mock.ExpectGet(sessionKey).SetVal(sessionValue(42, time.Now()))
	mock.ExpectDel(sessionKey).SetVal(1)
	mock.ExpectSRem(tokensSetKey, token).SetVal(1)

	require.NoError(t, authService.Logout(context.Background(), token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Logout_UnknownToken(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(time.Hour, rdb)

	token := "unknown_token"
	mock.ExpectGet(sessionKeyPrefix + token).RedisNil()

	assert.Error(t, authService.Logout(context.Background(), token))
}

func TestService_ScanAndClean(t *testing.T) {
	ttl := time.Hour
	now := time.Now()
	then := now.Add(-2 * time.Hour)

	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(ttl, rdb)
	require.NotNil(t, authService)

	t1, t2 := "token1", "token2"
	mock.ExpectSMembers(tokensSetKey).SetVal([]string{t1, t2})
	mock.ExpectGet(sessionKeyPrefix + t1).SetVal(sessionValue(1, now))
	mock.ExpectGet(sessionKeyPrefix + t2).SetVal(sessionValue(2, then))
	// only t2 outlived the TTL
	mock.ExpectDel(sessionKeyPrefix + t2).SetVal(1)
	mock.ExpectSRem(tokensSetKey, t2).SetVal(1)

	authService.ScanAndClean(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginChecker_LoggedUserID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	checker := NewLoginChecker(time.Hour, rdb)

	token := "test_token"
	now := time.Now()
	mock.ExpectGet(sessionKeyPrefix + token).SetVal(sessionValue(42, now))

	userID, err := checker.LoggedUserID(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestLoginChecker_LoggedUserID_ExpiredSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	checker := NewLoginChecker(time.Hour, rdb)

	token := "test_token"
	then := time.Now().Add(-2 * time.Hour)
	mock.ExpectGet(sessionKeyPrefix + token).SetVal(sessionValue(42, then))

	userID, err := checker.LoggedUserID(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, userID)
}

func TestLoginChecker_LoggedUserID_UnknownToken(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	checker := NewLoginChecker(time.Hour, rdb)

	mock.ExpectGet(sessionKeyPrefix + "nope").RedisNil()

	userID, err := checker.LoggedUserID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, userID)
}

func TestParseSessionValue(t *testing.T) {
	now := time.Now()
	userID, createdAt, err := parseSessionValue(fmt.Sprintf("42|%d", now.Unix()))
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, now.Unix(), createdAt.Unix())

	for _, malformed := range []string{"", "42", "abc|123", "42|abc"} {
		_, _, err := parseSessionValue(malformed)
		assert.Error(t, err, "value: %s", malformed)
	}
}
