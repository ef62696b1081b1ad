package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/embed"
	"github.com/dgallion1/prochunk/internal/engine"
	"github.com/dgallion1/prochunk/internal/store"
)

// Worker processes a single document job.
type Worker struct {
	embedder *embed.Client
	store    *store.Store
	log      *slog.Logger
	chunkCfg chunker.Config

	maxConcurrentEmbed int
}

func NewWorker(embedder *embed.Client, st *store.Store, log *slog.Logger, chunkCfg chunker.Config, maxEmbed int) *Worker {
	if maxEmbed <= 0 {
		maxEmbed = 1
	}
	return &Worker{
		embedder:           embedder,
		store:              st,
		log:                log,
		chunkCfg:           chunkCfg,
		maxConcurrentEmbed: maxEmbed,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Chunk
	job.SetStatus(StatusChunking, "chunking")
	data := job.FileData()
	job.ContentHash = ContentHashHex(data)

	doc, err := engine.Open(job.Filename, data, w.chunkCfg)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	chunks, err := doc.Chunk()
	if err != nil {
		if errors.Is(err, engine.ErrMissingHeader) {
			log.Error("document has no metadata header", "error", err)
		} else {
			log.Error("chunking failed", "error", err)
		}
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	job.SetTotalChunks(len(chunks))
	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	job.SetDocument(chunks[0].DocumentNumber, chunks[0].DocumentTitle)
	log.Info("chunked document", "chunks", len(chunks), "document_number", chunks[0].DocumentNumber)

	// Phase 2: Embed chunks with bounded concurrency.
	job.SetStatus(StatusEmbedding, "embedding")
	type embedResult struct {
		vector []float32
		err    error
		idx    int
	}
	results := make(chan embedResult, len(chunks))
	sem := make(chan struct{}, w.maxConcurrentEmbed)

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, text string) {
			defer func() { <-sem }()
			var vectors [][]float32
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				vectors, lastErr = w.embedder.Embed(ctx, []string{text})
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable embedding error", "chunk", i, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- embedResult{err: ctx.Err(), idx: i}
					return
				}
			}
			if lastErr != nil {
				results <- embedResult{err: lastErr, idx: i}
				return
			}
			results <- embedResult{vector: vectors[0], idx: i}
		}(i, chunk.Text)
	}

	vectors := make([][]float32, len(chunks))
	hadErrors := false
	for range chunks {
		r := <-results
		if r.err != nil {
			log.Error("embedding failed", "chunk", r.idx, "error", r.err)
			job.AddError(fmt.Sprintf("chunk %d: %s", r.idx, r.err))
			hadErrors = true
			continue
		}
		vectors[r.idx] = r.vector
		job.IncrChunksEmbedded()
	}

	// Keep only the chunks that embedded successfully.
	var okChunks []chunker.Chunk
	var okVectors [][]float32
	for i := range chunks {
		if vectors[i] != nil {
			okChunks = append(okChunks, chunks[i])
			okVectors = append(okVectors, vectors[i])
		}
	}
	log.Info("embedding complete", "embedded", len(okChunks), "errors", hadErrors)

	if len(okChunks) == 0 {
		job.SetStatus(StatusFailed, "embedding")
		return
	}

	// Phase 3: Store.
	job.SetStatus(StatusStoring, "storing")
	if err := w.store.InsertChunks(ctx, okChunks, okVectors); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.AddChunksStored(len(okChunks))
	log.Info("storage complete", "stored", len(okChunks), "total", len(chunks))

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}
