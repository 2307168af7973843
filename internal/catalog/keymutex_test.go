package catalog

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		holders atomic.Int32
		maxSeen atomic.Int32
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := km.Lock("file:a.jpg")
			n := holders.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			holders.Add(-1)
			unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Empty(t, km.locks)
}

func TestKeyedMutexLockAllDeduplicates(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.LockAll("file:b.jpg", "file:a.jpg", "file:b.jpg")
	assert.Len(t, km.locks, 2)
	unlock()

	assert.Empty(t, km.locks)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock("movie:1")
	done := make(chan struct{})

	go func() {
		unlockB := km.Lock("movie:2")
		unlockB()
		close(done)
	}()

	<-done
	unlockA()
}
