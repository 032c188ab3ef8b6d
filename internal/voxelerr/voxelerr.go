// Package voxelerr defines the non-fatal error kinds raised by the core.
// None of these ever propagate as a process abort; callers use errors.Is to
// branch on kind and the world logs the rest.
package voxelerr

import "errors"

var (
	// ErrOutOfRangeCoordinate names the kind for a local coordinate outside
	// a chunk's block box. No function returns it: reads fall back to air
	// and writes are silent no-ops.
	ErrOutOfRangeCoordinate = errors.New("voxelengine: local coordinate out of range")

	// ErrChunkNotResident means a mutation targeted a chunk position that
	// is not loaded and not in the residency window.
	ErrChunkNotResident = errors.New("voxelengine: chunk not resident")

	// ErrHeaderMismatch means a deserialize header disagreed with the
	// receiving chunk's position or size.
	ErrHeaderMismatch = errors.New("voxelengine: chunk header mismatch")

	// ErrPayloadLengthMismatch means an RLE payload decoded to a length
	// other than the chunk's block count.
	ErrPayloadLengthMismatch = errors.New("voxelengine: rle payload length mismatch")

	// ErrQueueOrphan means a position drained from the generation queue
	// was no longer resident.
	ErrQueueOrphan = errors.New("voxelengine: generation queue orphan")
)
