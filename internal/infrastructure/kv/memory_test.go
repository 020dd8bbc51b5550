package kv

import (
	"bytes"
	"context"
	"testing"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(value, []byte(`{"a":1}`)) {
		t.Fatalf("unexpected value %s", value)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("expected key gone after delete")
	}
	// Deleting again is a no-op.
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	original := []byte("abc")
	if err := m.Set(ctx, "k", original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original[0] = 'z'

	stored, _, _ := m.Get(ctx, "k")
	if !bytes.Equal(stored, []byte("abc")) {
		t.Fatalf("caller mutation leaked into store: %s", stored)
	}

	stored[0] = 'z'
	again, _, _ := m.Get(ctx, "k")
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatalf("reader mutation leaked into store: %s", again)
	}
}

func TestMemoryHonorsContextCancellation(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Set(ctx, "k", []byte("v")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, _, err := m.Get(ctx, "k"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestMemoryKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "a", []byte("1"))
	_ = m.Set(ctx, "b", []byte("2"))

	keys := m.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}
