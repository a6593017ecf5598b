package web

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionLocks(t *testing.T) {
	locks := newSessionLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("s1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
	require.Empty(t, locks.locks)
}

func TestSessionKey(t *testing.T) {
	key, hash, err := newSessionKey()
	require.NoError(t, err)
	require.Len(t, key, 32)
	require.True(t, checkSessionKey(hash, key))
	require.False(t, checkSessionKey(hash, "other"))
	require.False(t, checkSessionKey("", key))
	require.False(t, checkSessionKey(hash, ""))
}
