package world

import (
	"context"

	"voxelengine/internal/voxel"
	"voxelengine/internal/voxelerr"
)

// BlockEdit is one cell of a BulkSet batch.
type BlockEdit struct {
	Pos   voxel.WorldPos
	Block voxel.Block
}

// dirOffsets indexes the six face directions a local coordinate can touch;
// bit i of a boundary mask corresponds to dirOffsets[i].
var dirOffsets = [6]struct{ dx, dy, dz int }{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// fullBoundaryMask touches every face of dirOffsets, for mutations (like
// BulkReplaceChunk) that can change any cell in the array rather than just
// one.
const fullBoundaryMask uint8 = 1<<6 - 1

func boundaryMask(l voxel.Local, size voxel.Size) uint8 {
	var m uint8
	if l.X == 0 {
		m |= 1 << 0
	}
	if l.X == size.X-1 {
		m |= 1 << 1
	}
	if l.Y == 0 {
		m |= 1 << 2
	}
	if l.Y == size.Y-1 {
		m |= 1 << 3
	}
	if l.Z == 0 {
		m |= 1 << 4
	}
	if l.Z == size.Z-1 {
		m |= 1 << 5
	}
	return m
}

// invalidateNeighbors flags every resident neighbor touched by mask as
// mesh-dirty. When sync is true (the single-block mutation path) it also
// regenerates each neighbor's mesh immediately and emits its notification;
// when false (the bulk path) the mark is deferred to that neighbor's next
// natural GenerateMesh call.
func (w *World) invalidateNeighbors(pos voxel.ChunkPos, mask uint8, sync bool) {
	for i, off := range dirOffsets {
		if mask&(1<<i) == 0 {
			continue
		}
		npos := pos.Neighbor(off.dx, off.dy, off.dz)
		nc, ok := w.chunks[npos]
		if !ok {
			continue
		}
		nc.MarkDirty()
		if sync {
			if data := nc.GenerateMesh(w, w.colorOf); data != nil {
				w.sink.EmitChunkMeshGenerated(npos)
			}
		}
	}
}

// SetBlock writes one world-space cell. If the target chunk is not
// resident, it is auto-created (consulting persistence, same as the
// streaming pass) provided its position lies within the current render
// window; otherwise this returns ErrChunkNotResident. Writing the same id
// already present is a no-op — no dirty flag, no notification. A real
// change synchronously regenerates every resident neighbor whose mesh could
// have depended on this cell (the boundary-face test), then emits
// BlockModified.
func (w *World) SetBlock(ctx context.Context, wp voxel.WorldPos, id voxel.Block) (bool, error) {
	size := w.cfg.ChunkSize()
	pos := voxel.WorldToChunk(wp, size)
	local := voxel.WorldToLocal(wp, size)

	c, ok := w.chunks[pos]
	if !ok {
		if !w.inRangeOfViewer(pos) {
			return false, voxelerr.ErrChunkNotResident
		}
		c = w.loadChunk(ctx, pos)
	}

	if !c.SetBlock(local, id) {
		return false, nil
	}

	w.invalidateNeighbors(pos, boundaryMask(local, size), true)
	w.sink.EmitBlockModified(wp, id)
	return true, nil
}

// BulkSet applies a batch of edits. Unlike SetBlock, boundary-neighbor
// invalidation is coalesced: each touched source chunk accumulates the set
// of faces it touched across the whole batch, and neighbors on those faces
// are marked dirty exactly once after the batch completes — never
// synchronously regenerated. This is the documented asymmetry between the
// single-block and bulk mutation paths: bulk edits (e.g. a deserialize-sized
// region fill) would pay for redundant neighbor remeshing on every one of
// potentially thousands of edits if they regenerated eagerly.
func (w *World) BulkSet(ctx context.Context, edits []BlockEdit) {
	size := w.cfg.ChunkSize()
	touched := make(map[voxel.ChunkPos]uint8)

	for _, e := range edits {
		pos := voxel.WorldToChunk(e.Pos, size)
		local := voxel.WorldToLocal(e.Pos, size)

		c, ok := w.chunks[pos]
		if !ok {
			if !w.inRangeOfViewer(pos) {
				continue
			}
			c = w.loadChunk(ctx, pos)
		}

		if !c.SetBlock(local, e.Block) {
			continue
		}
		touched[pos] |= boundaryMask(local, size)
		w.sink.EmitBlockModified(e.Pos, e.Block)
	}

	for pos, mask := range touched {
		w.invalidateNeighbors(pos, mask, false)
	}
}

// BulkReplaceChunk overwrites pos's entire block array in one call — the
// bulk_replace operation (C1), for callers that populate a whole chunk from
// an external source (a network sync payload, a map editor paste) rather
// than editing cell by cell. A non-resident position within the render
// window is auto-created first, same as SetBlock; outside it, this returns
// ErrChunkNotResident. A length mismatch leaves the chunk untouched and
// reports false. Since any cell may have changed, every neighbor is marked
// dirty; like BulkSet, that invalidation is deferred rather than
// synchronous, since a whole-chunk replace is itself a bulk operation.
func (w *World) BulkReplaceChunk(ctx context.Context, pos voxel.ChunkPos, data []byte) (bool, error) {
	c, ok := w.chunks[pos]
	if !ok {
		if !w.inRangeOfViewer(pos) {
			return false, voxelerr.ErrChunkNotResident
		}
		c = w.loadChunk(ctx, pos)
	}

	if !c.BulkReplace(data) {
		return false, nil
	}

	w.invalidateNeighbors(pos, fullBoundaryMask, false)
	return true, nil
}
