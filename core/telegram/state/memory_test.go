package state

import (
	"sync"
	"testing"
)

func TestWithLockSerializesTransitions(t *testing.T) {
	m := NewMemoryManager()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = m.WithLock(7, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, expected %d", counter, workers)
	}
}

func TestWithLockReleasesEntry(t *testing.T) {
	mgr := NewMemoryManager().(*memoryManager)

	hold := make(chan struct{})
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		_ = mgr.WithLock(7, func() error {
			close(hold)
			<-done
			return nil
		})
		close(finished)
	}()

	<-hold
	mgr.locksMu.Lock()
	held := len(mgr.locks)
	mgr.locksMu.Unlock()
	if held != 1 {
		t.Fatalf("locks held during transition = %d, expected 1", held)
	}

	close(done)
	<-finished

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = mgr.WithLock(id, func() error { return nil })
		}(int64(i))
	}
	wg.Wait()

	mgr.locksMu.Lock()
	left := len(mgr.locks)
	mgr.locksMu.Unlock()
	if left != 0 {
		t.Fatalf("locks left after transitions = %d, expected 0", left)
	}
}
