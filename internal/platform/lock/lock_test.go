package lock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLocalLockerSerializesSameKey(t *testing.T) {
	locker := NewLocalLocker()

	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), "staff:abc", func(ctx context.Context) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("WithLock: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("critical section overlapped, max concurrent holders: %d", maxInside)
	}
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	locker := NewLocalLocker()

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), "staff:a", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	done := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), "staff:b", func(ctx context.Context) error {
			close(done)
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a different key must not block")
	}
}

func TestLocalLockerNestedKeys(t *testing.T) {
	locker := NewLocalLocker()

	// Booking takes the staff lock and then the patient lock inside it.
	ran := false
	err := locker.WithLock(context.Background(), "staff:a", func(ctx context.Context) error {
		return locker.WithLock(ctx, "patient:p", func(ctx context.Context) error {
			ran = true
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested WithLock: %v", err)
	}
	if !ran {
		t.Fatal("inner critical section did not run")
	}
}

func TestLocalLockerPropagatesError(t *testing.T) {
	locker := NewLocalLocker()

	want := context.DeadlineExceeded
	err := locker.WithLock(context.Background(), "k", func(ctx context.Context) error {
		return want
	})
	if err != want {
		t.Fatalf("expected the callback error, got %v", err)
	}
}
