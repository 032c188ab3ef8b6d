package voxel

// WorldPos is a world-space block coordinate.
type WorldPos struct {
	X, Y, Z int
}

// ChunkPos is a chunk lattice coordinate. It is used as a map key, so it
// must stay a small comparable struct.
type ChunkPos struct {
	X, Y, Z int
}

// Local is a block coordinate relative to a chunk's minimum corner.
type Local struct {
	X, Y, Z int
}

// Size is a chunk's dimensions in blocks along each axis.
type Size struct {
	X, Y, Z int
}

// Volume returns Cx*Cy*Cz.
func (s Size) Volume() int { return s.X * s.Y * s.Z }

// floorDiv performs floored (toward -infinity) integer division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the non-negative (Euclidean) remainder of a/b.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// WorldToChunk maps a world coordinate to its owning chunk position using
// floored division, so negative inputs round toward -infinity.
func WorldToChunk(w WorldPos, size Size) ChunkPos {
	return ChunkPos{
		X: floorDiv(w.X, size.X),
		Y: floorDiv(w.Y, size.Y),
		Z: floorDiv(w.Z, size.Z),
	}
}

// WorldToLocal maps a world coordinate to its local coordinate within the
// owning chunk, using the Euclidean (always non-negative) remainder.
func WorldToLocal(w WorldPos, size Size) Local {
	return Local{
		X: floorMod(w.X, size.X),
		Y: floorMod(w.Y, size.Y),
		Z: floorMod(w.Z, size.Z),
	}
}

// ChunkToWorld returns the minimum-corner world coordinate of a chunk.
func ChunkToWorld(c ChunkPos, size Size) WorldPos {
	return WorldPos{X: c.X * size.X, Y: c.Y * size.Y, Z: c.Z * size.Z}
}

// Add returns w shifted by the given local offset.
func (w WorldPos) Add(dx, dy, dz int) WorldPos {
	return WorldPos{X: w.X + dx, Y: w.Y + dy, Z: w.Z + dz}
}

// InBounds reports whether a local coordinate falls inside a box of the
// given size.
func (l Local) InBounds(size Size) bool {
	return l.X >= 0 && l.X < size.X &&
		l.Y >= 0 && l.Y < size.Y &&
		l.Z >= 0 && l.Z < size.Z
}

// Neighbor returns the chunk position offset by (dx, dy, dz).
func (c ChunkPos) Neighbor(dx, dy, dz int) ChunkPos {
	return ChunkPos{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}
