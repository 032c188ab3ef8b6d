// Package mesh implements the greedy mesher (C2): it turns one chunk's
// dense block array, plus a read-through accessor over the rest of the
// world, into a minimal set of axis-aligned rectangular quads.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelengine/internal/voxel"
)

// Data holds the five output arrays produced by BuildChunkMesh: four
// parallel per-vertex arrays plus the triangle index list.
type Data struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Indices   []uint32
}

// Empty reports whether the mesher emitted no faces at all.
func (d *Data) Empty() bool {
	return d == nil || len(d.Positions) == 0
}

// Triangles dereferences Indices through Positions, yielding the triangle
// soup a concave collider consumes.
func (d *Data) Triangles() []mgl32.Vec3 {
	if d.Empty() {
		return nil
	}
	out := make([]mgl32.Vec3, len(d.Indices))
	for i, idx := range d.Indices {
		out[i] = d.Positions[idx]
	}
	return out
}

// Accessor lets the mesher query blocks outside the chunk being meshed. A
// nil Accessor means every cross-chunk neighbor is treated as air, so all
// boundary faces are drawn.
type Accessor interface {
	GetBlock(w voxel.WorldPos) voxel.Block
}

// ColorFunc maps a block id to a per-vertex color; pure function of id.
type ColorFunc func(id voxel.Block) mgl32.Vec4

func (a *accumulator) emitQuad(corners [4]mgl32.Vec3, normal mgl32.Vec3, w, h float32, color mgl32.Vec4) {
	base := uint32(len(a.out.Positions))
	a.out.Positions = append(a.out.Positions, corners[0], corners[1], corners[2], corners[3])
	a.out.Normals = append(a.out.Normals, normal, normal, normal, normal)
	a.out.UVs = append(a.out.UVs,
		mgl32.Vec2{0, 0}, mgl32.Vec2{w, 0}, mgl32.Vec2{w, h}, mgl32.Vec2{0, h},
	)
	a.out.Colors = append(a.out.Colors, color, color, color, color)
	a.out.Indices = append(a.out.Indices,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

type accumulator struct {
	out *Data
}

// BuildChunkMesh runs the six-direction greedy sweep over blocks and
// returns the resulting mesh, or the empty Data if the chunk has no visible
// faces. chunkPos and size locate the chunk in world space so cross-chunk
// neighbor queries can be issued against accessor. colorOf may be nil, in
// which case quads get an opaque white vertex color.
func BuildChunkMesh(blocks *voxel.BlockArray, chunkPos voxel.ChunkPos, size voxel.Size, accessor Accessor, colorOf ColorFunc) *Data {
	if colorOf == nil {
		colorOf = func(voxel.Block) mgl32.Vec4 { return mgl32.Vec4{1, 1, 1, 1} }
	}
	acc := &accumulator{out: &Data{}}
	base := voxel.ChunkToWorld(chunkPos, size)

	sweepX(acc, blocks, base, size, accessor, colorOf, +1)
	sweepX(acc, blocks, base, size, accessor, colorOf, -1)
	sweepY(acc, blocks, base, size, accessor, colorOf, +1)
	sweepY(acc, blocks, base, size, accessor, colorOf, -1)
	sweepZ(acc, blocks, base, size, accessor, colorOf, +1)
	sweepZ(acc, blocks, base, size, accessor, colorOf, -1)

	return acc.out
}

func neighborBlock(blocks *voxel.BlockArray, base voxel.WorldPos, size voxel.Size, accessor Accessor, nl voxel.Local) voxel.Block {
	if nl.InBounds(size) {
		return blocks.Get(nl)
	}
	if accessor == nil {
		return voxel.BlockAir
	}
	wp := voxel.WorldPos{X: base.X + nl.X, Y: base.Y + nl.Y, Z: base.Z + nl.Z}
	return accessor.GetBlock(wp)
}

// maskAt computes the greedy mask value for one cell: -1 means "no face",
// otherwise the value is the exposed block's id (mask cells never merge
// across distinct ids, even though both are represented as positive ints).
func maskAt(blocks *voxel.BlockArray, base voxel.WorldPos, size voxel.Size, accessor Accessor, p, n voxel.Local) int32 {
	b := blocks.Get(p)
	if b == voxel.BlockAir {
		return -1
	}
	if neighborBlock(blocks, base, size, accessor, n) != voxel.BlockAir {
		return -1
	}
	return int32(b)
}

// mergeWidth extends a run horizontally (along u) from (u0, rowStart),
// returning the run width.
func mergeWidth(mask []int32, width int, rowStart, u0 int, id int32) int {
	w := 1
	for u0+w < width && mask[rowStart+u0+w] == id {
		w++
	}
	return w
}

// mergeHeight extends a run vertically (along v) given an established
// width, returning the run height.
func mergeHeight(mask []int32, width, height, u0, v0, w int, id int32) int {
	h := 1
outer:
	for v0+h < height {
		rowStart := (v0 + h) * width
		for u := u0; u < u0+w; u++ {
			if mask[rowStart+u] != id {
				break outer
			}
		}
		h++
	}
	return h
}

func clearRegion(mask []int32, width, u0, v0, w, h int) {
	for v := v0; v < v0+h; v++ {
		rowStart := v * width
		for u := u0; u < u0+w; u++ {
			mask[rowStart+u] = -1
		}
	}
}
