package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReadThrough_MissThenHit(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), time.Minute)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context) ([]byte, error) {
		loads++
		return []byte(`{"id":"ws_1"}`), nil
	}

	data, hit, err := rt.Get(ctx, "websets.get", map[string]string{"id": "ws_1"}, load)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("first Get() = hit, want miss")
	}
	if string(data) != `{"id":"ws_1"}` {
		t.Errorf("data = %s", data)
	}

	data, hit, err = rt.Get(ctx, "websets.get", map[string]string{"id": "ws_1"}, load)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Error("second Get() = miss, want hit")
	}
	if string(data) != `{"id":"ws_1"}` {
		t.Errorf("data = %s", data)
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestReadThrough_ErrorsNotCached(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), time.Minute)
	ctx := context.Background()

	boom := errors.New("upstream down")
	calls := 0
	load := func(ctx context.Context) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return []byte("ok"), nil
	}

	if _, _, err := rt.Get(ctx, "op", nil, load); err != boom {
		t.Fatalf("Get() error = %v, want upstream error", err)
	}

	data, hit, err := rt.Get(ctx, "op", nil, load)
	if err != nil || hit || string(data) != "ok" {
		t.Errorf("retry after error: data = %s hit = %v err = %v", data, hit, err)
	}
	if calls != 2 {
		t.Errorf("loads = %d, want 2 (error never cached)", calls)
	}
}

func TestReadThrough_CollapsesConcurrentMisses(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), time.Minute)
	ctx := context.Background()

	var loads atomic.Int64
	release := make(chan struct{})
	load := func(ctx context.Context) ([]byte, error) {
		loads.Add(1)
		<-release
		return []byte("shared"), nil
	}

	var wg sync.WaitGroup
	results := make([][]byte, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, _, err := rt.Get(ctx, "op", map[string]string{"q": "same"}, load)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			results[i] = data
		}(i)
	}

	// Let the goroutines pile onto the same flight before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := loads.Load(); got < 1 || got > 2 {
		t.Errorf("loads = %d, want concurrent misses collapsed", got)
	}
	for i, data := range results {
		if string(data) != "shared" {
			t.Errorf("result[%d] = %s", i, data)
		}
	}
}

func TestReadThrough_Invalidate(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), time.Minute)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context) ([]byte, error) {
		loads++
		return []byte("v"), nil
	}

	_, _, _ = rt.Get(ctx, "websets.get", map[string]string{"id": "ws_1"}, load)
	rt.Invalidate(ctx, "websets.get")

	_, hit, _ := rt.Get(ctx, "websets.get", map[string]string{"id": "ws_1"}, load)
	if hit {
		t.Error("Get() after Invalidate = hit")
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}
}

func TestReadThrough_DisabledTTL(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), 0)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context) ([]byte, error) {
		loads++
		return []byte("v"), nil
	}

	for i := 0; i < 3; i++ {
		_, hit, err := rt.Get(ctx, "op", nil, load)
		if err != nil || hit {
			t.Fatalf("Get() hit = %v err = %v, want uncached passthrough", hit, err)
		}
	}
	if loads != 3 {
		t.Errorf("loads = %d, want 3 with caching disabled", loads)
	}
}

func TestReadThrough_NilReceiver(t *testing.T) {
	var rt *ReadThrough
	ctx := context.Background()

	data, hit, err := rt.Get(ctx, "op", nil, func(ctx context.Context) ([]byte, error) {
		return []byte("direct"), nil
	})
	if err != nil || hit || string(data) != "direct" {
		t.Errorf("nil ReadThrough Get() = %s, %v, %v; want direct load", data, hit, err)
	}

	// Invalidate on nil must not panic.
	rt.Invalidate(ctx, "op")
}

func TestReadThrough_UnkeyableInputLoadsDirect(t *testing.T) {
	rt := NewReadThrough(NewMemoryStore(0), time.Minute)
	ctx := context.Background()

	loads := 0
	load := func(ctx context.Context) ([]byte, error) {
		loads++
		return []byte("v"), nil
	}

	for i := 0; i < 2; i++ {
		_, hit, err := rt.Get(ctx, "op", make(chan int), load)
		if err != nil || hit {
			t.Fatalf("Get() hit = %v err = %v, want uncached load", hit, err)
		}
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}
}
