package voxel

// Block is a single voxel's opaque 8-bit identifier. Zero is air: empty,
// invisible, uncollidable, and never meshed.
type Block uint8

// BlockAir is the empty block id.
const BlockAir Block = 0
