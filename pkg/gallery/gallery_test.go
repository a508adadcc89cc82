package gallery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("calm ocean", "flow")

	if rec.ID == "" {
		t.Error("ID should be assigned")
	}
	if rec.Prompt != "calm ocean" || rec.Mode != "flow" {
		t.Errorf("record = %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if rec.CreatedAt.Location() != time.UTC {
		t.Error("CreatedAt should be UTC")
	}

	// IDs must be unique.
	if NewRecord("x", "flow").ID == rec.ID {
		t.Error("two records should get distinct IDs")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := NewRecord("stormy night", "emotion")
	rec.Palette = []string{"#d91009", "#ffffff"}
	rec.Dominant = "fear"

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Prompt != rec.Prompt || got.Dominant != rec.Dominant {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if len(got.Palette) != 2 {
		t.Errorf("palette = %v", got.Palette)
	}
}

func TestMemoryStoreDuplicatePut(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := NewRecord("x", "flow")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, rec); !errors.Is(err, errors.ErrCodeStoreWrite) {
		t.Errorf("duplicate Put should fail with STORE_WRITE_ERROR, got %v", err)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, errors.ErrCodeRenderNotFound) {
		t.Errorf("expected RENDER_NOT_FOUND, got %v", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := NewRecord(fmt.Sprintf("prompt %d", i), "flow")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Put(ctx, rec); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("len = %d, want 5", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Fatal("records should be sorted newest first")
		}
	}
	if records[0].Prompt != "prompt 4" {
		t.Errorf("newest = %q, want prompt 4", records[0].Prompt)
	}
}

func TestMemoryStoreListLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 10; i++ {
		if err := s.Put(ctx, NewRecord(fmt.Sprintf("p%d", i), "flow")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	records, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len = %d, want 3", len(records))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := NewRecord("x", "flow")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeRenderNotFound) {
		t.Error("record should be gone after delete")
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrCodeRenderNotFound) {
		t.Errorf("deleting a missing record should fail, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{10, 10},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
