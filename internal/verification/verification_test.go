package verification

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewCode()
		if err != nil {
			t.Fatalf("NewCode: %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q is not numeric", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("codes are not random")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, "u1", "123456", time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ok, _ := store.Verify(ctx, "u1", "000000"); ok {
		t.Fatalf("wrong code accepted")
	}
	if ok, _ := store.Verify(ctx, "u2", "123456"); ok {
		t.Fatalf("code accepted for another user")
	}
	if ok, _ := store.Verify(ctx, "u1", "123456"); !ok {
		t.Fatalf("correct code rejected")
	}
	if ok, _ := store.Verify(ctx, "u1", "123456"); ok {
		t.Fatalf("code accepted twice")
	}

	_ = store.Save(ctx, "u1", "654321", time.Minute)
	now = now.Add(2 * time.Minute)
	if ok, _ := store.Verify(ctx, "u1", "654321"); ok {
		t.Fatalf("expired code accepted")
	}
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, "u1", "111111", time.Minute)
	_ = store.Save(ctx, "u1", "222222", time.Minute)
	if ok, _ := store.Verify(ctx, "u1", "111111"); ok {
		t.Fatalf("replaced code still valid")
	}
	if ok, _ := store.Verify(ctx, "u1", "222222"); !ok {
		t.Fatalf("new code rejected")
	}
}

func TestMemoryStoreAttemptLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, "u1", "123456", time.Minute)
	for i := 0; i < MaxAttempts; i++ {
		if ok, _ := store.Verify(ctx, "u1", "000000"); ok {
			t.Fatalf("wrong code accepted")
		}
	}
	if ok, _ := store.Verify(ctx, "u1", "123456"); ok {
		t.Fatalf("code still valid after %d wrong guesses", MaxAttempts)
	}

	_ = store.Save(ctx, "u1", "123456", time.Minute)
	if ok, _ := store.Verify(ctx, "u1", "123456"); !ok {
		t.Fatalf("resent code rejected")
	}
}

func TestMemoryStoreConcurrentVerify(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, "u1", "123456", time.Minute)

	var wg sync.WaitGroup
	var accepted int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Verify(ctx, "u1", "123456"); ok {
				atomic.AddInt32(&accepted, 1)
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Fatalf("accepted %d times, want once", accepted)
	}
}
