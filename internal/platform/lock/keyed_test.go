package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var k KeyedMutex
	var inside, maxInside int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			unlock, err := k.Lock(context.Background(), "club-1")
			if err != nil {
				t.Errorf("lock failed: %v", err)
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&maxInside); got != 1 {
		t.Fatalf("expected at most one holder, got %d", got)
	}
	if k.Len() != 0 {
		t.Fatalf("expected no keys left, got %d", k.Len())
	}
}

func TestKeyedMutex_DifferentKeysIndependent(t *testing.T) {
	var k KeyedMutex
	unlockA, err := k.Lock(context.Background(), "club-a")
	if err != nil {
		t.Fatalf("lock a: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := k.Lock(ctx, "club-b")
	if err != nil {
		t.Fatalf("lock b should not wait on a: %v", err)
	}
	unlockB()
}

func TestKeyedMutex_ContextCancel(t *testing.T) {
	var k KeyedMutex
	unlock, err := k.Lock(context.Background(), "club-1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := k.Lock(ctx, "club-1"); err == nil {
		t.Fatalf("expected context error while key is held")
	}

	unlock()
	unlock()
	if k.Len() != 0 {
		t.Fatalf("expected key released, got %d", k.Len())
	}
}
