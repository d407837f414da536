package group

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventLocksSerializeSameEvent(t *testing.T) {
	l := newEventLocks()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(1)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, l.size())
}

func TestEventLocksIndependentEvents(t *testing.T) {
	l := newEventLocks()
	unlockA := l.Lock(1)
	unlockB := l.Lock(2) // 不同活动不阻塞
	assert.Equal(t, 2, l.size())
	unlockA()
	unlockB()
	assert.Zero(t, l.size())
}
