package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLockTableSerializesPerID(t *testing.T) {
	locks := NewLockTable()
	id := uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released entries must not accumulate")
}

func TestLockTableIndependentIDs(t *testing.T) {
	locks := NewLockTable()

	unlockA := locks.Lock(uuid.New())
	defer unlockA()

	// A different artwork's lock must not block while A is held.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(uuid.New())
		unlockB()
		close(done)
	}()
	<-done
}
