package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameSession(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.Lock(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release() // second call is a no-op

	again, err := locker.Lock(context.Background(), "s1")
	require.NoError(t, err)
	again()
}

func TestLocalLocker_IndependentSessions(t *testing.T) {
	locker := NewLocalLocker()

	r1, err := locker.Lock(context.Background(), "s1")
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r2, err := locker.Lock(ctx, "s2")
	require.NoError(t, err)
	r2()
}
