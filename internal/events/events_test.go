package events

import (
	"testing"

	"voxelengine/internal/voxel"
)

func TestSubscribeReceivesMatchingKindOnly(t *testing.T) {
	s := NewSink()
	var loaded, unloaded int
	s.Subscribe(ChunkLoaded, func(e Event) { loaded++ })
	s.Subscribe(ChunkUnloaded, func(e Event) { unloaded++ })

	s.EmitChunkLoaded(voxel.ChunkPos{X: 1})
	s.EmitChunkLoaded(voxel.ChunkPos{X: 2})
	s.EmitChunkUnloaded(voxel.ChunkPos{X: 1})

	if loaded != 2 {
		t.Fatalf("loaded handler fired %d times, want 2", loaded)
	}
	if unloaded != 1 {
		t.Fatalf("unloaded handler fired %d times, want 1", unloaded)
	}
}

func TestSubscribersFireInOrder(t *testing.T) {
	s := NewSink()
	var order []int
	s.Subscribe(ChunkSaved, func(e Event) { order = append(order, 1) })
	s.Subscribe(ChunkSaved, func(e Event) { order = append(order, 2) })
	s.EmitChunkSaved(voxel.ChunkPos{})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected subscribers to fire in subscription order, got %v", order)
	}
}

func TestEmitBlockModifiedCarriesWorldAndBlock(t *testing.T) {
	s := NewSink()
	var got Event
	s.Subscribe(BlockModified, func(e Event) { got = e })

	wp := voxel.WorldPos{X: 3, Y: 4, Z: 5}
	s.EmitBlockModified(wp, voxel.Block(9))

	if got.World != wp || got.Block != voxel.Block(9) {
		t.Fatalf("unexpected event payload: %+v", got)
	}
}

func TestEmitWithNoSubscribersIsSafe(t *testing.T) {
	s := NewSink()
	s.EmitChunkMeshGenerated(voxel.ChunkPos{})
}
