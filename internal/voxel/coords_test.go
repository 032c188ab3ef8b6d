package voxel

import "testing"

func TestWorldToChunkToWorldRoundTrip(t *testing.T) {
	size := Size{X: 16, Y: 128, Z: 16}
	cases := []WorldPos{
		{0, 0, 0},
		{15, 127, 15},
		{16, 128, 16},
		{-1, -1, -1},
		{-16, -128, -16},
		{-17, -129, -17},
		{31, 5, -33},
	}
	for _, w := range cases {
		c := WorldToChunk(w, size)
		l := WorldToLocal(w, size)
		base := ChunkToWorld(c, size)
		got := base.Add(l.X, l.Y, l.Z)
		if got != w {
			t.Errorf("round trip for %+v: got %+v via chunk %+v local %+v", w, got, c, l)
		}
		if !l.InBounds(size) {
			t.Errorf("local %+v for %+v not in bounds", l, w)
		}
	}
}

func TestWorldToChunkNegativeFloorsDown(t *testing.T) {
	size := Size{X: 16, Y: 128, Z: 16}
	got := WorldToChunk(WorldPos{X: -1, Y: 0, Z: 0}, size)
	if got.X != -1 {
		t.Errorf("expected chunk x -1 for world x -1, got %d", got.X)
	}
	got = WorldToChunk(WorldPos{X: -16, Y: 0, Z: 0}, size)
	if got.X != -1 {
		t.Errorf("expected chunk x -1 for world x -16, got %d", got.X)
	}
	got = WorldToChunk(WorldPos{X: -17, Y: 0, Z: 0}, size)
	if got.X != -2 {
		t.Errorf("expected chunk x -2 for world x -17, got %d", got.X)
	}
}

func TestWorldToLocalAlwaysNonNegative(t *testing.T) {
	size := Size{X: 16, Y: 128, Z: 16}
	for _, x := range []int{-33, -17, -1, 0, 1, 17, 33} {
		l := WorldToLocal(WorldPos{X: x, Y: 0, Z: 0}, size)
		if l.X < 0 || l.X >= size.X {
			t.Errorf("local x for world x=%d out of [0,%d): %d", x, size.X, l.X)
		}
	}
}

func TestChunkPosNeighbor(t *testing.T) {
	c := ChunkPos{X: 1, Y: 2, Z: 3}
	n := c.Neighbor(-1, 0, 1)
	want := ChunkPos{X: 0, Y: 2, Z: 4}
	if n != want {
		t.Errorf("Neighbor(-1,0,1) = %+v, want %+v", n, want)
	}
}
