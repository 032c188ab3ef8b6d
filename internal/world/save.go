package world

import "context"

// EnableAsyncSave starts a single background goroutine that performs
// persistence writes off the main thread, adapted from the teacher's
// ChunkStreamer worker shape but narrowed to the one concern the
// concurrency model allows off the main goroutine: saving already-snapshot
// bytes. capacity bounds the pending-save channel; a full channel falls
// back to a synchronous save rather than blocking the caller.
func (w *World) EnableAsyncSave(capacity int) {
	if w.async {
		return
	}
	if capacity <= 0 {
		capacity = 64
	}
	w.async = true
	w.saveCh = make(chan saveJob, capacity)
	w.resultCh = make(chan saveResult, capacity)

	w.saveWG.Add(1)
	go w.saveWorker()
}

func (w *World) saveWorker() {
	defer w.saveWG.Done()
	ctx := context.Background()
	for job := range w.saveCh {
		err := w.store.Save(ctx, job.pos, job.data)
		w.resultCh <- saveResult{pos: job.pos, c: job.c, err: err}
	}
}
