package spinlock_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-atomic/api"
	"github.com/momentics/hioload-atomic/spinlock"
	"github.com/momentics/hioload-atomic/workers"
)

func expectMisuse(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected panic", name)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, api.NewError(api.ErrCodeMisuse, "")) {
			t.Fatalf("%s: expected misuse error, got %v", name, r)
		}
	}()
	fn()
}

func TestSpinLockBasic(t *testing.T) {
	lock := spinlock.New(42)
	g := lock.Lock()
	if g.Get() != 42 {
		t.Fatalf("Get = %d, want 42", g.Get())
	}
	*g.Ptr() += 1
	g.Unlock()

	g = lock.Lock()
	defer g.Unlock()
	if g.Get() != 43 {
		t.Fatalf("Get = %d, want 43", g.Get())
	}
}

func counter(threads, increments int, opts ...spinlock.Option) (int, error) {
	lock := spinlock.New(0, opts...)
	err := workers.Run(threads, func(int) {
		for i := 0; i < increments; i++ {
			g := lock.Lock()
			g.Set(g.Get() + 1)
			g.Unlock()
		}
	})
	g := lock.Lock()
	defer g.Unlock()
	return g.Get(), err
}

func TestSpinLockMutualExclusion(t *testing.T) {
	cases := []struct {
		threads, increments int
		opts                []spinlock.Option
	}{
		{10, 100, nil},
		{0, 100, nil},
		{10, 0, nil},
		{5, 2000, nil},
		{8, 500, []spinlock.Option{spinlock.WithSpinLimit(-1)}},
		{8, 500, []spinlock.Option{spinlock.WithSpinLimit(1)}},
		{4, 200, []spinlock.Option{spinlock.WithOwnerCheck()}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%dx%d", tc.threads, tc.increments), func(t *testing.T) {
			got, err := counter(tc.threads, tc.increments, tc.opts...)
			if err != nil {
				t.Fatalf("workers: %v", err)
			}
			if want := tc.threads * tc.increments; got != want {
				t.Fatalf("counter = %d, want %d", got, want)
			}
		})
	}
}

func TestGuardReleaseOnAllExitPaths(t *testing.T) {
	lock := spinlock.New(0)

	lock.Lock().Unlock()
	if lock.IsLocked() {
		t.Fatal("lock still held after immediate unlock")
	}

	early := func(stop bool) int {
		g := lock.Lock()
		defer g.Unlock()
		if stop {
			return -1
		}
		return g.Get()
	}
	if early(true) != -1 || lock.IsLocked() {
		t.Fatal("early return left the lock held")
	}

	func() {
		defer func() { _ = recover() }()
		lock.With(func(v *int) {
			*v = 7
			panic("boom")
		})
	}()
	if lock.IsLocked() {
		t.Fatal("panic inside With left the lock held")
	}

	done := make(chan int)
	go func() {
		g := lock.Lock()
		defer g.Unlock()
		done <- g.Get()
	}()
	select {
	case v := <-done:
		if v != 7 {
			t.Fatalf("value written before panic lost: %d", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("lock not acquirable from another goroutine")
	}
}

func TestTryLock(t *testing.T) {
	lock := spinlock.New("v")
	g, ok := lock.TryLock()
	if !ok {
		t.Fatal("TryLock failed on a free lock")
	}

	res := make(chan bool)
	go func() {
		_, ok := lock.TryLock()
		res <- ok
	}()
	if <-res {
		t.Fatal("TryLock succeeded while held")
	}

	g.Unlock()
	g2, ok := lock.TryLock()
	if !ok {
		t.Fatal("TryLock failed after unlock")
	}
	g2.Unlock()
}

func TestOwnerCheckPanicsOnRelock(t *testing.T) {
	lock := spinlock.New(0, spinlock.WithOwnerCheck())
	g := lock.Lock()
	expectMisuse(t, "relock", func() { lock.Lock() })
	g.Unlock()

	l := spinlock.NewLocker(spinlock.WithOwnerCheck())
	if !l.TryLock() {
		t.Fatal("TryLock failed on a free locker")
	}
	expectMisuse(t, "relock after TryLock", l.Lock)
	l.Unlock()
	l.Lock()
	l.Unlock()
}

func TestGuardMisuse(t *testing.T) {
	lock := spinlock.New(1)
	g := lock.Lock()
	g.Unlock()
	expectMisuse(t, "double unlock", g.Unlock)
	expectMisuse(t, "get after unlock", func() { _ = g.Get() })
	expectMisuse(t, "set after unlock", func() { g.Set(2) })
	if lock.IsLocked() {
		t.Fatal("misuse changed lock state")
	}
}

func TestLockerZeroValueAsSyncLocker(t *testing.T) {
	var l spinlock.Locker
	var mu sync.Locker = &l
	total := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				mu.Lock()
				total++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if total != 2000 {
		t.Fatalf("total = %d, want 2000", total)
	}
}

func TestUnlockFromAnotherGoroutine(t *testing.T) {
	l := spinlock.NewLocker()
	l.Lock()
	done := make(chan struct{})
	go func() {
		l.Unlock()
		close(done)
	}()
	<-done
	if l.IsLocked() {
		t.Fatal("hand-off unlock did not release")
	}
}

func BenchmarkSpinLock(b *testing.B) {
	lock := spinlock.New(0)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g := lock.Lock()
			*g.Ptr()++
			g.Unlock()
		}
	})
}

func BenchmarkLocker(b *testing.B) {
	var l spinlock.Locker
	n := 0
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Lock()
			n++
			l.Unlock()
		}
	})
}

func BenchmarkMutexBaseline(b *testing.B) {
	var mu sync.Mutex
	n := 0
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			mu.Lock()
			n++
			mu.Unlock()
		}
	})
}
