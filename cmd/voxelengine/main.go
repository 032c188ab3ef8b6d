// Command voxelengine is a headless driver exercising the streaming core:
// it builds a World, walks a viewer through a few chunk boundaries, places
// a block, and logs the loaded, unloaded, block-modified and saved
// notifications the core emits. There
// is no renderer or window here — RenderHandle/ColliderHandle are the noop
// implementations below, standing in for the graphics/physics backends the
// core treats as external collaborators.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelengine/internal/chunk"
	"voxelengine/internal/config"
	"voxelengine/internal/events"
	"voxelengine/internal/mesh"
	"voxelengine/internal/persistence"
	"voxelengine/internal/voxel"
	"voxelengine/internal/world"
)

type noopRenderer struct{ pos voxel.ChunkPos }

func (n *noopRenderer) Update(m *mesh.Data) {
	log.Printf("render %v: %d quads", n.pos, len(m.Indices)/6)
}
func (n *noopRenderer) Clear() {}

type noopCollider struct{ pos voxel.ChunkPos }

func (n *noopCollider) Update(tris []mgl32.Vec3) {}
func (n *noopCollider) Clear()                   {}

func main() {
	saveDir := flag.String("save-dir", "saves", "directory for chunk persistence")
	compress := flag.Bool("compress", false, "zstd-compress saved chunks")
	flag.Parse()

	cfg := config.Default()
	cfg.SaveDirectory = *saveDir
	cfg.CompressChunks = *compress
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	store, err := persistence.NewFileStore(cfg.SaveDirectory, cfg.CompressChunks)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	sink := events.NewSink()
	sink.Subscribe(events.ChunkLoaded, func(e events.Event) {
		log.Printf("chunk loaded: %v", e.Pos)
	})
	sink.Subscribe(events.ChunkUnloaded, func(e events.Event) {
		log.Printf("chunk unloaded: %v", e.Pos)
	})
	sink.Subscribe(events.BlockModified, func(e events.Event) {
		log.Printf("block modified: %v -> %d", e.World, e.Block)
	})
	sink.Subscribe(events.ChunkSaved, func(e events.Event) {
		log.Printf("chunk saved: %v", e.Pos)
	})

	w := world.New(cfg, store, sink, log.New(os.Stdout, "", log.LstdFlags))
	w.SetColorFunc(func(id voxel.Block) mgl32.Vec4 {
		switch id {
		case 1:
			return mgl32.Vec4{0.3, 0.7, 0.3, 1}
		case 2:
			return mgl32.Vec4{0.5, 0.5, 0.5, 1}
		default:
			return mgl32.Vec4{1, 1, 1, 1}
		}
	})
	w.SetRendererFactory(func(pos voxel.ChunkPos) chunk.RenderHandle {
		return &noopRenderer{pos: pos}
	})
	w.SetColliderFactory(func(pos voxel.ChunkPos) chunk.ColliderHandle {
		return &noopCollider{pos: pos}
	})

	ctx := context.Background()

	viewer := mgl32.Vec3{0, 64, 0}
	w.SetViewerPosition(viewer)
	w.Update(ctx)

	changed, err := w.SetBlock(ctx, voxel.WorldPos{X: 0, Y: 64, Z: 0}, voxel.Block(1))
	if err != nil {
		log.Printf("set block: %v", err)
	} else {
		log.Printf("set block changed=%v", changed)
	}

	for i := 0; i < 3; i++ {
		viewer = viewer.Add(mgl32.Vec3{float32(cfg.ChunkSizeXZ), 0, 0})
		w.SetViewerPosition(viewer)
		w.Update(ctx)
		time.Sleep(10 * time.Millisecond)
	}

	w.ClearWorld(ctx, true)
	w.Close()
}
