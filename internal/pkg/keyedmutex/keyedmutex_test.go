package keyedmutex

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := New()

	const workers = 16
	const iterations = 50

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				m.Lock("person:role")
				counter++
				m.Unlock("person:role")
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Fatalf("counter = %d, want %d", counter, workers*iterations)
	}
	if len(m.locks) != 0 {
		t.Fatalf("expected lock table to drain, %d entries left", len(m.locks))
	}
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	m := New()

	m.Lock("a")
	done := make(chan struct{})
	go func() {
		m.Lock("b")
		m.Unlock("b")
		close(done)
	}()
	<-done
	m.Unlock("a")
}
