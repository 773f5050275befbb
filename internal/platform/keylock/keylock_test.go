package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	k := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			unlock := k.Lock("U1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter, "same-key sections must not interleave")
}

func TestExclusiveWaitsOutMutations(t *testing.T) {
	k := New()

	unlockA := k.Lock("U1")

	acquired := make(chan struct{})
	go func() {
		unlock := k.Exclusive()
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("exclusive gate acquired while a mutation lock was held")
	default:
	}

	unlockA()
	<-acquired
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	k := New()

	unlockA := k.Lock("U1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := k.Lock("U2")
		unlock()
		close(done)
	}()
	<-done
}
