package mesh

import (
	"testing"

	"voxelengine/internal/voxel"
)

// TestTopFaceNonSquareMergeUsesCorrectUVOrientation guards against
// transposing a quad's UV extents onto the wrong physical axes, which only
// shows up on a non-square merge. Three blocks in a row merge into one
// w=1,h=3 top-face quad; the 3-unit edge must carry UV v=3 and the 1-unit
// edge must carry UV u=1, not the other way around.
func TestTopFaceNonSquareMergeUsesCorrectUVOrientation(t *testing.T) {
	blocks := voxel.NewBlockArray(testSize())
	for _, l := range []voxel.Local{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}} {
		blocks.Set(l, voxel.Block(1))
	}

	data := BuildChunkMesh(blocks, voxel.ChunkPos{}, testSize(), nil, nil)

	for i := 0; i < len(data.Positions); i += 4 {
		if data.Normals[i].Y() <= 0 {
			continue
		}
		p0, p1, p3 := data.Positions[i], data.Positions[i+1], data.Positions[i+3]
		mag1, mag3 := p1.Sub(p0).Len(), p3.Sub(p0).Len()
		if !((mag1 == 3 && mag3 == 1) || (mag1 == 1 && mag3 == 3)) {
			continue // not the merged 1x3 run's quad
		}

		uv0, uv1, uv3 := data.UVs[i], data.UVs[i+1], data.UVs[i+3]
		u, v := uv1.X()-uv0.X(), uv3.Y()-uv0.Y()
		if u != mag1 || v != mag3 {
			t.Fatalf("quad UV doesn't match its geometry: edge0-1 len=%v got u=%v; edge0-3 len=%v got v=%v", mag1, u, mag3, v)
		}
		return
	}
	t.Fatalf("expected to find the merged top-face quad spanning the 1x3 run")
}

func testSize() voxel.Size { return voxel.Size{X: 16, Y: 16, Z: 16} }

func TestSingleBlockProducesSixQuads(t *testing.T) {
	blocks := voxel.NewBlockArray(testSize())
	blocks.Set(voxel.Local{X: 5, Y: 5, Z: 5}, voxel.Block(1))

	data := BuildChunkMesh(blocks, voxel.ChunkPos{}, testSize(), nil, nil)
	if got, want := len(data.Positions), 24; got != want {
		t.Fatalf("positions: got %d, want %d (6 quads * 4 verts)", got, want)
	}
	if got, want := len(data.Indices), 36; got != want {
		t.Fatalf("indices: got %d, want %d (6 quads * 6 indices)", got, want)
	}
}

func TestSlabMergesIntoSixQuads(t *testing.T) {
	blocks := voxel.NewBlockArray(testSize())
	for _, l := range []voxel.Local{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
	} {
		blocks.Set(l, voxel.Block(1))
	}

	data := BuildChunkMesh(blocks, voxel.ChunkPos{}, testSize(), nil, nil)
	// Top and bottom each merge into one 2x2 quad; the four sides stay
	// 2x1 each (no merge partner along height 1), so 2 + 4 = 6 quads.
	if got, want := len(data.Positions), 6*4; got != want {
		t.Fatalf("positions: got %d, want %d", got, want)
	}

	var sawWideUV bool
	for _, uv := range data.UVs {
		if uv.X() == 2 && uv.Y() == 2 {
			sawWideUV = true
		}
	}
	if !sawWideUV {
		t.Fatalf("expected a merged quad with UV extent (2,2) for the top/bottom faces")
	}
}

func TestDistinctIdsDoNotMerge(t *testing.T) {
	blocks := voxel.NewBlockArray(testSize())
	blocks.Set(voxel.Local{X: 0, Y: 0, Z: 0}, voxel.Block(1))
	blocks.Set(voxel.Local{X: 1, Y: 0, Z: 0}, voxel.Block(2))

	data := BuildChunkMesh(blocks, voxel.ChunkPos{}, testSize(), nil, nil)
	// The shared face between the two cells is culled (both are solid), and
	// no face merges across the two ids, so each cell keeps its 5 remaining
	// faces as separate 1x1 quads: 10 total. Merging ids would give 6.
	if got, want := len(data.Positions), 10*4; got != want {
		t.Fatalf("positions: got %d, want %d", got, want)
	}
}

type fakeAccessor struct {
	blocks map[voxel.WorldPos]voxel.Block
}

func (f fakeAccessor) GetBlock(w voxel.WorldPos) voxel.Block {
	return f.blocks[w]
}

func TestCrossChunkFaceCulling(t *testing.T) {
	size := testSize()
	blocks := voxel.NewBlockArray(size)
	// Local x=15 is the chunk's +X boundary cell.
	blocks.Set(voxel.Local{X: size.X - 1, Y: 0, Z: 0}, voxel.Block(1))

	withoutNeighbor := BuildChunkMesh(blocks, voxel.ChunkPos{}, size, nil, nil)
	if len(withoutNeighbor.Positions) != 6*4 {
		t.Fatalf("isolated boundary block: got %d positions, want %d", len(withoutNeighbor.Positions), 6*4)
	}

	acc := fakeAccessor{blocks: map[voxel.WorldPos]voxel.Block{
		{X: size.X, Y: 0, Z: 0}: voxel.Block(1),
	}}
	withNeighbor := BuildChunkMesh(blocks, voxel.ChunkPos{}, size, acc, nil)
	if len(withNeighbor.Positions) != 5*4 {
		t.Fatalf("culled boundary block: got %d positions, want %d (one face hidden)", len(withNeighbor.Positions), 5*4)
	}
}

func TestEmptyChunkProducesEmptyMesh(t *testing.T) {
	blocks := voxel.NewBlockArray(testSize())
	data := BuildChunkMesh(blocks, voxel.ChunkPos{}, testSize(), nil, nil)
	if !data.Empty() {
		t.Fatalf("expected an empty mesh for an all-air chunk")
	}
}
