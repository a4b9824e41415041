package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryLock(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	l := New(rdc, 25*time.Second)
	key := Key("a-1")

	mock.ExpectSetNX(key, l.token, 25*time.Second).SetVal(true)
	mock.ExpectSetNX(key, l.token, 25*time.Second).SetVal(false)

	ok, err := l.TryLock(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.TryLock(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryLock_redisDown(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	l := New(rdc, time.Second)

	mock.ExpectSetNX(Key("a-1"), l.token, time.Second).SetErr(errors.New("dial tcp: refused"))

	_, err := l.TryLock(context.Background(), Key("a-1"))
	assert.Error(t, err)
}

func TestUnlock_releasesOwnToken(t *testing.T) {
	rdc, mock := redismock.NewClientMock()
	l := New(rdc, time.Second)

	mock.ExpectEval(releaseScript, []string{"reconcile_lock:a-1"}, l.token).SetVal(int64(1))

	require.NoError(t, l.Unlock(context.Background(), Key("a-1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
