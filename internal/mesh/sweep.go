package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelengine/internal/voxel"
)

// sweepX handles the two faces perpendicular to X (+X east, -X west). The
// mask plane is Y-Z: u runs along Z (width), v runs along Y (height),
// matching the greedy scan order used by the other two sweeps.
func sweepX(acc *accumulator, blocks *voxel.BlockArray, base voxel.WorldPos, size voxel.Size, accessor Accessor, colorOf ColorFunc, dir int) {
	width, height := size.Z, size.Y
	mask := make([]int32, width*height)

	for x := 0; x < size.X; x++ {
		for v := 0; v < height; v++ {
			row := v * width
			for u := 0; u < width; u++ {
				p := voxel.Local{X: x, Y: v, Z: u}
				n := voxel.Local{X: x + dir, Y: v, Z: u}
				mask[row+u] = maskAt(blocks, base, size, accessor, p, n)
			}
		}

		for v := 0; v < height; v++ {
			for u := 0; u < width; {
				id := mask[v*width+u]
				if id < 0 {
					u++
					continue
				}
				w := mergeWidth(mask, width, v*width, u, id)
				h := mergeHeight(mask, width, height, u, v, w, id)

				planeX := float32(x)
				if dir > 0 {
					planeX = float32(x + 1)
				}
				y0, y1 := float32(v), float32(v+h)
				z0, z1 := float32(u), float32(u+w)

				var corners [4]mgl32.Vec3
				if dir > 0 {
					corners = [4]mgl32.Vec3{
						{planeX, y0, z0}, {planeX, y0, z1}, {planeX, y1, z1}, {planeX, y1, z0},
					}
				} else {
					corners = [4]mgl32.Vec3{
						{planeX, y0, z0}, {planeX, y0, z1}, {planeX, y1, z1}, {planeX, y1, z0},
					}
				}
				normal := mgl32.Vec3{float32(dir), 0, 0}
				acc.emitQuad(corners, normal, float32(w), float32(h), colorOf(voxel.Block(id)))

				clearRegion(mask, width, u, v, w, h)
				u += w
			}
		}
	}
}

// sweepY handles +Y (top) and -Y (bottom). Mask plane is X-Z: u runs along
// Z (width), v runs along X (height).
func sweepY(acc *accumulator, blocks *voxel.BlockArray, base voxel.WorldPos, size voxel.Size, accessor Accessor, colorOf ColorFunc, dir int) {
	width, height := size.Z, size.X
	mask := make([]int32, width*height)

	for y := 0; y < size.Y; y++ {
		for v := 0; v < height; v++ {
			row := v * width
			for u := 0; u < width; u++ {
				p := voxel.Local{X: v, Y: y, Z: u}
				n := voxel.Local{X: v, Y: y + dir, Z: u}
				mask[row+u] = maskAt(blocks, base, size, accessor, p, n)
			}
		}

		for v := 0; v < height; v++ {
			for u := 0; u < width; {
				id := mask[v*width+u]
				if id < 0 {
					u++
					continue
				}
				w := mergeWidth(mask, width, v*width, u, id)
				h := mergeHeight(mask, width, height, u, v, w, id)

				planeY := float32(y)
				if dir > 0 {
					planeY = float32(y + 1)
				}
				x0, x1 := float32(v), float32(v+h)
				z0, z1 := float32(u), float32(u+w)

				var corners [4]mgl32.Vec3
				if dir > 0 {
					corners = [4]mgl32.Vec3{
						{x0, planeY, z0}, {x0, planeY, z1}, {x1, planeY, z1}, {x1, planeY, z0},
					}
				} else {
					corners = [4]mgl32.Vec3{
						{x0, planeY, z0}, {x0, planeY, z1}, {x1, planeY, z1}, {x1, planeY, z0},
					}
				}
				normal := mgl32.Vec3{0, float32(dir), 0}
				acc.emitQuad(corners, normal, float32(w), float32(h), colorOf(voxel.Block(id)))

				clearRegion(mask, width, u, v, w, h)
				u += w
			}
		}
	}
}

// sweepZ handles +Z (north) and -Z (south). Mask plane is X-Y: u runs along
// Y (width), v runs along X (height).
func sweepZ(acc *accumulator, blocks *voxel.BlockArray, base voxel.WorldPos, size voxel.Size, accessor Accessor, colorOf ColorFunc, dir int) {
	width, height := size.Y, size.X
	mask := make([]int32, width*height)

	for z := 0; z < size.Z; z++ {
		for v := 0; v < height; v++ {
			row := v * width
			for u := 0; u < width; u++ {
				p := voxel.Local{X: v, Y: u, Z: z}
				n := voxel.Local{X: v, Y: u, Z: z + dir}
				mask[row+u] = maskAt(blocks, base, size, accessor, p, n)
			}
		}

		for v := 0; v < height; v++ {
			for u := 0; u < width; {
				id := mask[v*width+u]
				if id < 0 {
					u++
					continue
				}
				w := mergeWidth(mask, width, v*width, u, id)
				h := mergeHeight(mask, width, height, u, v, w, id)

				planeZ := float32(z)
				if dir > 0 {
					planeZ = float32(z + 1)
				}
				x0, x1 := float32(v), float32(v+h)
				y0, y1 := float32(u), float32(u+w)

				var corners [4]mgl32.Vec3
				if dir > 0 {
					corners = [4]mgl32.Vec3{
						{x0, y0, planeZ}, {x0, y1, planeZ}, {x1, y1, planeZ}, {x1, y0, planeZ},
					}
				} else {
					corners = [4]mgl32.Vec3{
						{x0, y0, planeZ}, {x0, y1, planeZ}, {x1, y1, planeZ}, {x1, y0, planeZ},
					}
				}
				normal := mgl32.Vec3{0, 0, float32(dir)}
				acc.emitQuad(corners, normal, float32(w), float32(h), colorOf(voxel.Block(id)))

				clearRegion(mask, width, u, v, w, h)
				u += w
			}
		}
	}
}
