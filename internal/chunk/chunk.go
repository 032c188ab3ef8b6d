// Package chunk implements the chunk controller (C3): one block array plus
// its external renderer/collider handles, and the dirty/modified
// bookkeeping that survives a round trip to disk.
package chunk

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"

	"voxelengine/internal/mesh"
	"voxelengine/internal/voxel"
	"voxelengine/internal/voxelerr"
)

// RenderHandle receives (or is cleared of) a mesh built from the mesher's
// five parallel arrays. Implementations must accept updates from the main
// thread; the core never calls Update/Clear concurrently.
type RenderHandle interface {
	Update(m *mesh.Data)
	Clear()
}

// ColliderHandle receives a triangle-soup concave collision surface. It may
// be absent (generate_collision disabled).
type ColliderHandle interface {
	Update(triangles []mgl32.Vec3)
	Clear()
}

// Chunk owns one dense block array and the renderer/collider handles built
// from it. It never outlives removal from its owning world's chunk table.
type Chunk struct {
	Pos  voxel.ChunkPos
	Size voxel.Size

	blocks *voxel.BlockArray

	modified  bool
	meshDirty bool

	renderer RenderHandle
	collider ColliderHandle

	newRenderer func() RenderHandle
	newCollider func() ColliderHandle
}

// New creates a fresh, all-air chunk at pos. newRenderer/newCollider are
// factories consulted the first time a non-empty mesh is emitted; either
// may be nil, in which case that handle is never acquired.
func New(pos voxel.ChunkPos, size voxel.Size, newRenderer func() RenderHandle, newCollider func() ColliderHandle) *Chunk {
	return &Chunk{
		Pos:         pos,
		Size:        size,
		blocks:      voxel.NewBlockArray(size),
		meshDirty:   true,
		newRenderer: newRenderer,
		newCollider: newCollider,
	}
}

// GetBlock delegates to the block array; out-of-range coordinates read air.
func (c *Chunk) GetBlock(l voxel.Local) voxel.Block {
	return c.blocks.Get(l)
}

// Blocks exposes the underlying array for the mesher and persistence.
func (c *Chunk) Blocks() *voxel.BlockArray { return c.blocks }

// SetBlock writes a cell and, if it actually changed, marks the chunk both
// modified and mesh-dirty. Returns whether it changed.
func (c *Chunk) SetBlock(l voxel.Local, id voxel.Block) bool {
	if !c.blocks.Set(l, id) {
		return false
	}
	c.modified = true
	c.meshDirty = true
	return true
}

// MarkDirty flags the mesh stale without touching block content — used for
// cross-chunk invalidation when a neighbor mutates a boundary cell on its
// own side.
func (c *Chunk) MarkDirty() { c.meshDirty = true }

// IsModified reports whether block content changed since the last
// save/load.
func (c *Chunk) IsModified() bool { return c.modified }

// MarkSaved clears IsModified after a caller has durably persisted the
// chunk's current content. It never touches the mesh-dirty flag.
func (c *Chunk) MarkSaved() { c.modified = false }

// IsMeshDirty reports whether the current mesh may not reflect current
// content.
func (c *Chunk) IsMeshDirty() bool { return c.meshDirty }

// BulkReplace overwrites the whole block array; see voxel.BlockArray.BulkReplace.
func (c *Chunk) BulkReplace(data []byte) bool {
	if !c.blocks.BulkReplace(data) {
		return false
	}
	c.modified = true
	c.meshDirty = true
	return true
}

// GenerateMesh is a no-op if the chunk is not mesh-dirty. Otherwise it
// invokes the greedy mesher, swaps the renderer handle (acquiring it lazily
// on first non-empty emission, or clearing it on an empty result), rebuilds
// the collider from the same triangle soup when a collider factory was
// supplied, and clears the dirty flag. It never clears IsModified.
func (c *Chunk) GenerateMesh(accessor mesh.Accessor, colorOf mesh.ColorFunc) *mesh.Data {
	if !c.meshDirty {
		return nil
	}
	data := mesh.BuildChunkMesh(c.blocks, c.Pos, c.Size, accessor, colorOf)

	if data.Empty() {
		if c.renderer != nil {
			c.renderer.Clear()
		}
		if c.collider != nil {
			c.collider.Clear()
		}
	} else {
		if c.renderer == nil && c.newRenderer != nil {
			c.renderer = c.newRenderer()
		}
		if c.renderer != nil {
			c.renderer.Update(data)
		}
		if c.newCollider != nil {
			if c.collider == nil {
				c.collider = c.newCollider()
			}
			c.collider.Update(data.Triangles())
		}
	}

	c.meshDirty = false
	return data
}

// Cleanup releases the renderer/collider handles and empties the block
// array. Idempotent.
func (c *Chunk) Cleanup() {
	if c.renderer != nil {
		c.renderer.Clear()
		c.renderer = nil
	}
	if c.collider != nil {
		c.collider.Clear()
		c.collider = nil
	}
	c.blocks.Reset()
}

const headerSize = 6 * 4 // two i32x3 tuples, little-endian

// Serialize wraps the block array with a header binding these bytes to a
// specific chunk position and size, followed by the RLE payload.
func (c *Chunk) Serialize() []byte {
	out := make([]byte, headerSize)
	putHeader(out, c.Pos, c.Size)
	return append(out, c.blocks.EncodeRLE()...)
}

// Deserialize validates the header against this chunk's own position and
// size. On mismatch it fails without mutating state. On success it resets
// IsModified to false and flags the mesh dirty.
func (c *Chunk) Deserialize(data []byte) error {
	if len(data) < headerSize {
		return voxelerr.ErrHeaderMismatch
	}
	pos, size := readHeader(data)
	if pos != c.Pos || size != c.Size {
		return voxelerr.ErrHeaderMismatch
	}
	if err := c.blocks.DecodeRLEInto(data[headerSize:]); err != nil {
		return err
	}
	c.modified = false
	c.meshDirty = true
	return nil
}

func putHeader(dst []byte, pos voxel.ChunkPos, size voxel.Size) {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(int32(pos.X)))
	binary.LittleEndian.PutUint32(dst[4:8], uint32(int32(pos.Y)))
	binary.LittleEndian.PutUint32(dst[8:12], uint32(int32(pos.Z)))
	binary.LittleEndian.PutUint32(dst[12:16], uint32(int32(size.X)))
	binary.LittleEndian.PutUint32(dst[16:20], uint32(int32(size.Y)))
	binary.LittleEndian.PutUint32(dst[20:24], uint32(int32(size.Z)))
}

func readHeader(src []byte) (voxel.ChunkPos, voxel.Size) {
	pos := voxel.ChunkPos{
		X: int(int32(binary.LittleEndian.Uint32(src[0:4]))),
		Y: int(int32(binary.LittleEndian.Uint32(src[4:8]))),
		Z: int(int32(binary.LittleEndian.Uint32(src[8:12]))),
	}
	size := voxel.Size{
		X: int(int32(binary.LittleEndian.Uint32(src[12:16]))),
		Y: int(int32(binary.LittleEndian.Uint32(src[16:20]))),
		Z: int(int32(binary.LittleEndian.Uint32(src[20:24]))),
	}
	return pos, size
}
