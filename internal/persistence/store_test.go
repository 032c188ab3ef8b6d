package persistence

import (
	"bytes"
	"context"
	"testing"

	"voxelengine/internal/voxel"
)

func TestFileStoreSaveLoadRoundTripUncompressed(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	pos := voxel.ChunkPos{X: 1, Y: -2, Z: 3}
	data := []byte{1, 2, 3, 4, 5}

	if err := store.Save(ctx, pos, data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, hit, err := store.Load(ctx, pos)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !hit {
		t.Fatalf("expected a hit after Save")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, data)
	}
}

func TestFileStoreSaveLoadRoundTripCompressed(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	pos := voxel.ChunkPos{X: 0, Y: 0, Z: 0}
	data := bytes.Repeat([]byte{7}, 4096)

	if err := store.Save(ctx, pos, data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, hit, err := store.Load(ctx, pos)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !hit {
		t.Fatalf("expected a hit after Save")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("compressed round trip mismatch")
	}
}

func TestFileStoreLoadMissIsNotAnError(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	_, hit, err := store.Load(context.Background(), voxel.ChunkPos{X: 99, Y: 99, Z: 99})
	if err != nil {
		t.Fatalf("a missing save should not be an error: %v", err)
	}
	if hit {
		t.Fatalf("expected hit=false for a chunk never saved")
	}
}

func TestFileNameIsSignPreserving(t *testing.T) {
	got := fileName(voxel.ChunkPos{X: -1, Y: 0, Z: 2})
	want := "chunk_-1_+0_+2.dat"
	if got != want {
		t.Fatalf("fileName: got %q, want %q", got, want)
	}
}
