// Package world implements the streaming controller (C4): the chunk table,
// the viewer-centric residency window, the FIFO generation queue, and the
// mutation entry points that route through chunk and mesh. It is the one
// package allowed to create, unload, or mutate a Chunk.
package world

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxelengine/internal/chunk"
	"voxelengine/internal/config"
	"voxelengine/internal/events"
	"voxelengine/internal/mesh"
	"voxelengine/internal/persistence"
	"voxelengine/internal/voxel"
	"voxelengine/internal/voxelerr"
)

// RendererFactory builds the render handle for a newly-resident chunk.
type RendererFactory func(pos voxel.ChunkPos) chunk.RenderHandle

// ColliderFactory builds the collider handle for a newly-resident chunk.
type ColliderFactory func(pos voxel.ChunkPos) chunk.ColliderHandle

// TerrainGenerator is consulted on a persistence miss when configured. Absent
// a generator, a freshly created chunk stays all-air, per spec.
type TerrainGenerator interface {
	// PopulateChunk fills blocks with this chunk's initial content.
	PopulateChunk(blocks *voxel.BlockArray, pos voxel.ChunkPos)
	// HeightAt reports a column's surface height, for collaborators that
	// want to prioritize or bound streaming by terrain shape. The core
	// itself never calls this; it exists so a generator implementation can
	// be shared with a caller's own streaming heuristics.
	HeightAt(x, z int) int
}

// World owns the chunk table and every operation that creates, unloads, or
// mutates a chunk. It is not safe for concurrent use from multiple
// goroutines; the documented concurrency model is single-threaded
// cooperative, with only persistence I/O optionally backgrounded.
type World struct {
	cfg   config.Config
	store persistence.Store
	sink  *events.Sink
	log   *log.Logger

	colorOf     mesh.ColorFunc
	newRenderer RendererFactory
	newCollider ColliderFactory
	terrain     TerrainGenerator

	chunks map[voxel.ChunkPos]*chunk.Chunk

	queue  []voxel.ChunkPos
	queued map[voxel.ChunkPos]bool

	hasViewer   bool
	viewerChunk voxel.ChunkPos

	async    bool
	saveCh   chan saveJob
	resultCh chan saveResult
	saveWG   sync.WaitGroup
}

type saveJob struct {
	pos  voxel.ChunkPos
	data []byte
	c    *chunk.Chunk
}

type saveResult struct {
	pos voxel.ChunkPos
	c   *chunk.Chunk
	err error
}

// New builds an empty World over cfg, persisting through store and
// notifying sink. logger defaults to log.Default() when nil.
func New(cfg config.Config, store persistence.Store, sink *events.Sink, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		cfg:    cfg,
		store:  store,
		sink:   sink,
		log:    logger,
		chunks: make(map[voxel.ChunkPos]*chunk.Chunk),
		queued: make(map[voxel.ChunkPos]bool),
	}
}

// SetColorFunc installs the block-id→color hook the mesher calls per vertex.
func (w *World) SetColorFunc(f mesh.ColorFunc) { w.colorOf = f }

// SetRendererFactory installs the collaborator that builds render handles.
func (w *World) SetRendererFactory(f RendererFactory) { w.newRenderer = f }

// SetColliderFactory installs the collaborator that builds collider handles.
// It is only consulted when the configuration has collision generation on.
func (w *World) SetColliderFactory(f ColliderFactory) { w.newCollider = f }

// SetTerrainGenerator installs the optional C11 hook. A nil generator (the
// default) leaves persistence-miss chunks all-air.
func (w *World) SetTerrainGenerator(g TerrainGenerator) { w.terrain = g }

// Config returns the validated options this World was built from.
func (w *World) Config() config.Config { return w.cfg }

// GetBlock implements mesh.Accessor, letting the mesher read across a chunk
// boundary into whichever neighbor (if any) is resident.
func (w *World) GetBlock(wp voxel.WorldPos) voxel.Block {
	size := w.cfg.ChunkSize()
	pos := voxel.WorldToChunk(wp, size)
	c, ok := w.chunks[pos]
	if !ok {
		return voxel.BlockAir
	}
	return c.GetBlock(voxel.WorldToLocal(wp, size))
}

// GetBlockAt is the same query, named for callers outside the mesh package.
func (w *World) GetBlockAt(wp voxel.WorldPos) voxel.Block { return w.GetBlock(wp) }

// IsResident reports whether pos currently has a loaded chunk.
func (w *World) IsResident(pos voxel.ChunkPos) bool {
	_, ok := w.chunks[pos]
	return ok
}

// ChunkAt returns the resident chunk at pos, if any.
func (w *World) ChunkAt(pos voxel.ChunkPos) (*chunk.Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// ResidentCount reports how many chunks are currently loaded.
func (w *World) ResidentCount() int { return len(w.chunks) }

func (w *World) rendererFor(pos voxel.ChunkPos) func() chunk.RenderHandle {
	if w.newRenderer == nil {
		return nil
	}
	return func() chunk.RenderHandle { return w.newRenderer(pos) }
}

func (w *World) colliderFor(pos voxel.ChunkPos) func() chunk.ColliderHandle {
	if !w.cfg.GenerateCollision || w.newCollider == nil {
		return nil
	}
	return func() chunk.ColliderHandle { return w.newCollider(pos) }
}

func (w *World) inRangeOfViewer(pos voxel.ChunkPos) bool {
	return w.hasViewer && inRange(pos, w.viewerChunk, w.cfg.RenderDistanceXZ, w.cfg.RenderDistanceY)
}

func inRange(c, v voxel.ChunkPos, rxz, ry int) bool {
	dx := float64(c.X - v.X)
	dz := float64(c.Z - v.Z)
	if math.Sqrt(dx*dx+dz*dz) > float64(rxz) {
		return false
	}
	dy := c.Y - v.Y
	if dy < 0 {
		dy = -dy
	}
	return dy <= ry
}

// SetViewerPosition recomputes the viewer's chunk coordinate from a world
// position and, if it changed (or this is the first call), runs the
// streaming pass that loads newly-in-range chunks and unloads newly-out-of-
// range ones.
func (w *World) SetViewerPosition(pos mgl32.Vec3) {
	wp := voxel.WorldPos{X: int(math.Floor(float64(pos.X()))), Y: int(math.Floor(float64(pos.Y()))), Z: int(math.Floor(float64(pos.Z())))}
	chunkPos := voxel.WorldToChunk(wp, w.cfg.ChunkSize())
	if w.hasViewer && chunkPos == w.viewerChunk {
		return
	}
	w.viewerChunk = chunkPos
	w.hasViewer = true
	w.streamingPass()
}

// Update drains up to the configured per-frame cap from the generation
// queue, generating each chunk's mesh and emitting its notifications. A cap
// of 0 means unbounded — drain the whole queue in one call.
func (w *World) Update(ctx context.Context) {
	w.drainSaveResults()

	maxPerFrame := w.cfg.MaxChunksPerFrame
	drained := 0
	for len(w.queue) > 0 {
		if ctx.Err() != nil {
			return
		}
		if maxPerFrame > 0 && drained >= maxPerFrame {
			break
		}
		pos := w.queue[0]
		w.queue = w.queue[1:]
		delete(w.queued, pos)

		c, ok := w.chunks[pos]
		if !ok {
			// voxelerr.ErrQueueOrphan's policy is silent skip; nothing to report.
			continue
		}
		if data := c.GenerateMesh(w, w.colorOf); data != nil {
			w.sink.EmitChunkLoaded(pos)
			w.sink.EmitChunkMeshGenerated(pos)
		}
		drained++
	}
}

// Close joins the background save worker, if one was started, blocking
// until every already-enqueued save has completed and its result observed.
func (w *World) Close() {
	if !w.async {
		return
	}
	close(w.saveCh)
	w.saveWG.Wait()
	w.drainSaveResults()
}

func (w *World) enqueue(pos voxel.ChunkPos) {
	if w.queued[pos] {
		return
	}
	w.queued[pos] = true
	w.queue = append(w.queue, pos)
}

// loadChunk creates a chunk entry at pos, consults persistence, and either
// deserializes+meshes it synchronously (a storage hit) or populates it via
// the terrain hook (if any) and enqueues it for meshing on a later Update
// (a storage miss). It always registers the chunk in the table before
// returning.
func (w *World) loadChunk(ctx context.Context, pos voxel.ChunkPos) *chunk.Chunk {
	c := chunk.New(pos, w.cfg.ChunkSize(), w.rendererFor(pos), w.colliderFor(pos))
	w.chunks[pos] = c

	data, hit, err := w.store.Load(ctx, pos)
	if err != nil {
		w.log.Printf("world: load %v: %v", pos, err)
	}
	if hit {
		if derr := c.Deserialize(data); derr == nil {
			c.GenerateMesh(w, w.colorOf)
			w.sink.EmitChunkLoaded(pos)
			w.sink.EmitChunkMeshGenerated(pos)
			return c
		} else if derr != voxelerr.ErrHeaderMismatch {
			w.log.Printf("world: deserialize %v: %v", pos, derr)
		} else {
			w.log.Printf("world: header mismatch at %v, treating as miss", pos)
		}
	}

	if w.terrain != nil {
		w.terrain.PopulateChunk(c.Blocks(), pos)
	}
	w.enqueue(pos)
	return c
}

func (w *World) unloadChunk(ctx context.Context, pos voxel.ChunkPos) {
	c, ok := w.chunks[pos]
	if !ok {
		return
	}
	if w.cfg.AutoSaveChunks && c.IsModified() {
		w.saveChunk(ctx, c)
	}
	c.Cleanup()
	delete(w.chunks, pos)
	delete(w.queued, pos)
	w.sink.EmitChunkUnloaded(pos)
}

// saveChunk snapshots c's current bytes and hands them to the store, either
// synchronously or via the background worker when EnableAsyncSave is on. The
// snapshot is taken here, before Cleanup ever runs, so the worker never
// reads the live array.
func (w *World) saveChunk(ctx context.Context, c *chunk.Chunk) {
	data := c.Serialize()
	if w.async {
		select {
		case w.saveCh <- saveJob{pos: c.Pos, data: data, c: c}:
		default:
			w.log.Printf("world: save queue full, saving %v synchronously", c.Pos)
			w.saveSync(ctx, c, data)
		}
		return
	}
	w.saveSync(ctx, c, data)
}

func (w *World) saveSync(ctx context.Context, c *chunk.Chunk, data []byte) {
	if err := w.store.Save(ctx, c.Pos, data); err != nil {
		w.log.Printf("world: save %v: %v", c.Pos, err)
		return
	}
	c.MarkSaved()
	w.sink.EmitChunkSaved(c.Pos)
}

// ClearWorld drains the generation queue and unloads every resident chunk,
// optionally saving modified ones first. This is the only supported way to
// cancel in-flight streaming work.
func (w *World) ClearWorld(ctx context.Context, save bool) {
	w.queue = nil
	w.queued = make(map[voxel.ChunkPos]bool)

	for pos, c := range w.chunks {
		if save && c.IsModified() {
			w.saveChunk(ctx, c)
		}
		c.Cleanup()
		delete(w.chunks, pos)
		w.sink.EmitChunkUnloaded(pos)
	}
	w.hasViewer = false
	w.drainSaveResults()
}

func (w *World) drainSaveResults() {
	if !w.async {
		return
	}
	for {
		select {
		case res := <-w.resultCh:
			if res.err != nil {
				w.log.Printf("world: background save %v: %v", res.pos, res.err)
				continue
			}
			res.c.MarkSaved()
			w.sink.EmitChunkSaved(res.pos)
		default:
			return
		}
	}
}

// streamingPass recomputes, from the current viewer chunk, the set of
// positions that should be resident, unloads every resident chunk no longer
// in range, then loads every in-range position not yet resident — sorted by
// ascending distance from the viewer so the nearest chunks load first.
func (w *World) streamingPass() {
	ctx := context.Background()
	rxz, ry := w.cfg.RenderDistanceXZ, w.cfg.RenderDistanceY

	var toUnload []voxel.ChunkPos
	for pos := range w.chunks {
		if !inRange(pos, w.viewerChunk, rxz, ry) {
			toUnload = append(toUnload, pos)
		}
	}

	wanted := make(map[voxel.ChunkPos]bool)
	var toLoad []voxel.ChunkPos
	for dx := -rxz; dx <= rxz; dx++ {
		for dz := -rxz; dz <= rxz; dz++ {
			if math.Sqrt(float64(dx*dx+dz*dz)) > float64(rxz) {
				continue
			}
			for dy := -ry; dy <= ry; dy++ {
				pos := w.viewerChunk.Neighbor(dx, dy, dz)
				wanted[pos] = true
				if _, ok := w.chunks[pos]; !ok {
					toLoad = append(toLoad, pos)
				}
			}
		}
	}

	sort.Slice(toLoad, func(i, j int) bool {
		return distSq(toLoad[i], w.viewerChunk) < distSq(toLoad[j], w.viewerChunk)
	})

	for _, pos := range toUnload {
		w.unloadChunk(ctx, pos)
	}
	for _, pos := range toLoad {
		w.loadChunk(ctx, pos)
	}
}

func distSq(a, b voxel.ChunkPos) int {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}
