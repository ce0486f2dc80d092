package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	if err := s.Set(ctx, "cache:op:abc", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := s.Get(ctx, "cache:op:abc")
	if !ok || string(got) != "value" {
		t.Errorf("Get() = %q, %v; want value, true", got, ok)
	}

	if _, ok := s.Get(ctx, "cache:op:missing"); ok {
		t.Error("Get() on missing key = true, want miss")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	if err := s.Set(ctx, "cache:op:short", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok := s.Get(ctx, "cache:op:short"); !ok {
		t.Fatal("Get() before expiry = miss")
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := s.Get(ctx, "cache:op:short"); ok {
		t.Error("Get() after expiry = hit, want miss")
	}
	// The expired entry is collected on access.
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy cleanup", s.Len())
	}
}

func TestMemoryStore_ZeroTTLSkipsCaching(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	if err := s.Set(ctx, "cache:op:k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := s.Get(ctx, "cache:op:k"); ok {
		t.Error("Get() after zero-TTL Set = hit, want nothing stored")
	}
}

func TestMemoryStore_LRUEviction(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("cache:op:%d", i)
		if err := s.Set(ctx, key, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	// Touch entry 0 so entry 1 becomes the eviction candidate.
	if _, ok := s.Get(ctx, "cache:op:0"); !ok {
		t.Fatal("Get(0) = miss")
	}

	if err := s.Set(ctx, "cache:op:3", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok := s.Get(ctx, "cache:op:1"); ok {
		t.Error("least recently used entry survived eviction")
	}
	for _, key := range []string{"cache:op:0", "cache:op:2", "cache:op:3"} {
		if _, ok := s.Get(ctx, key); !ok {
			t.Errorf("Get(%s) = miss, want survivor", key)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	_ = s.Set(ctx, "cache:op:k", []byte("v"), time.Minute)
	if err := s.Delete(ctx, "cache:op:k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := s.Get(ctx, "cache:op:k"); ok {
		t.Error("Get() after delete = hit")
	}

	// Deleting a missing key is fine.
	if err := s.Delete(ctx, "cache:op:k"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestMemoryStore_DeletePrefix(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	_ = s.Set(ctx, "cache:websets.get:aa", []byte("1"), time.Minute)
	_ = s.Set(ctx, "cache:websets.get:bb", []byte("2"), time.Minute)
	_ = s.Set(ctx, "cache:websets.list:cc", []byte("3"), time.Minute)

	if err := s.DeletePrefix(ctx, "cache:websets.get:"); err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if _, ok := s.Get(ctx, "cache:websets.list:cc"); !ok {
		t.Error("unrelated entry removed by DeletePrefix")
	}
}

func TestMemoryStore_UpdateExisting(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	_ = s.Set(ctx, "cache:op:k", []byte("old"), time.Minute)
	_ = s.Set(ctx, "cache:op:k", []byte("new"), time.Minute)

	got, ok := s.Get(ctx, "cache:op:k")
	if !ok || string(got) != "new" {
		t.Errorf("Get() = %q, %v; want updated value", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (update, not insert)", s.Len())
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"valid", "cache:op:abc123", nil},
		{"empty", "", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"newline", "cache:op\n:x", ErrInvalidKey},
		{"too long", strings.Repeat("k", MaxKeyLength+1), ErrKeyTooLong},
		{"at limit", strings.Repeat("k", MaxKeyLength), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateKey(tt.key); err != tt.wantErr {
				t.Errorf("ValidateKey() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
