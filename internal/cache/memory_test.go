package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if _, err := mc.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := mc.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := mc.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("got %q", got)
	}

	exists, err := mc.Exists(ctx, "k")
	if err != nil || !exists {
		t.Errorf("expected key to exist, got %v %v", exists, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, err := mc.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
	if exists, _ := mc.Exists(ctx, "short"); exists {
		t.Error("expected expired entry to not exist")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, "k", []byte("v"), time.Minute)
	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCacheClearPattern(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	sourceA := "11111111-1111-1111-1111-111111111111"
	sourceB := "22222222-2222-2222-2222-222222222222"
	mc.Set(ctx, BrowserKey(sourceA, "studies", "q1"), []byte("a1"), time.Minute)
	mc.Set(ctx, BrowserKey(sourceA, "series", "q2"), []byte("a2"), time.Minute)
	mc.Set(ctx, BrowserKey(sourceB, "studies", "q1"), []byte("b1"), time.Minute)

	if err := mc.Clear(ctx, SourcePattern(sourceA)); err != nil {
		t.Fatal(err)
	}

	if _, err := mc.Get(ctx, BrowserKey(sourceA, "studies", "q1")); !errors.Is(err, ErrCacheMiss) {
		t.Error("expected source A studies entry cleared")
	}
	if _, err := mc.Get(ctx, BrowserKey(sourceA, "series", "q2")); !errors.Is(err, ErrCacheMiss) {
		t.Error("expected source A series entry cleared")
	}
	if _, err := mc.Get(ctx, BrowserKey(sourceB, "studies", "q1")); err != nil {
		t.Error("source B entry must survive")
	}
}

func TestBrowserKeyStableAndDistinct(t *testing.T) {
	a := BrowserKey("src", "studies", "PatientID=1")
	b := BrowserKey("src", "studies", "PatientID=1")
	c := BrowserKey("src", "studies", "PatientID=2")

	if a != b {
		t.Error("same query must produce the same key")
	}
	if a == c {
		t.Error("different queries must produce different keys")
	}
}
