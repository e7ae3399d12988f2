package pipeline

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
)

type Options struct {
	EmbedBatchSize int
	EmbedWorkers   int
}

// Indexer builds the embedding index from corpus records: records whose id is
// already persisted are skipped, the remaining documentation strings are
// embedded by a bounded worker pool, and entries are written one bulk
// transaction per batch.
type Indexer struct {
	e   embeddings.Embedder
	st  storage.EmbeddingStore
	opt Options
}

func New(e embeddings.Embedder, st storage.EmbeddingStore, opt Options) *Indexer {
	if opt.EmbedWorkers <= 0 {
		opt.EmbedWorkers = runtime.NumCPU()
	}
	if opt.EmbedBatchSize <= 0 {
		opt.EmbedBatchSize = 64
	}
	return &Indexer{e: e, st: st, opt: opt}
}

func (i *Indexer) BuildIndex(ctx context.Context, records []models.CorpusRecord) error {
	progCh, errCh := i.BuildIndexProgress(ctx, records)
	for progCh != nil || errCh != nil {
		select {
		case _, ok := <-progCh:
			if !ok {
				progCh = nil
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildIndexProgress runs the build and streams progress updates. The error
// channel receives at most one value; both channels are closed when done.
func (i *Indexer) BuildIndexProgress(
	ctx context.Context,
	records []models.CorpusRecord,
) (<-chan models.IndexProgress, <-chan error) {
	progCh := make(chan models.IndexProgress, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(progCh)
		defer close(errCh)
		if err := i.run(ctx, records, progCh); err != nil {
			errCh <- err
		}
	}()

	return progCh, errCh
}

type batchResult struct {
	entries []models.EmbeddingEntry
	failed  int
}

func (i *Indexer) run(
	ctx context.Context,
	records []models.CorpusRecord,
	progCh chan<- models.IndexProgress,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := len(records)
	report := func(p models.IndexProgress) {
		p.TotalRecords = total
		select {
		case progCh <- p:
		default: // drop updates rather than stall the pipeline
		}
	}

	// Stage 1: drop records already indexed so a re-run is a no-op per id
	report(models.IndexProgress{Stage: models.IndexStageLoad})
	pending := make([]models.CorpusRecord, 0, total)
	for _, rec := range records {
		ok, err := i.st.Exists(rec.ID)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		pending = append(pending, rec)
	}
	skipped := total - len(pending)

	// Stage 2: embed documentation strings concurrently, in batches
	batchCh := make(chan []models.CorpusRecord, i.opt.EmbedWorkers)
	resCh := make(chan batchResult, i.opt.EmbedWorkers)
	var wg sync.WaitGroup
	for w := 0; w < i.opt.EmbedWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batchCh {
				select {
				case resCh <- i.embedBatch(batch):
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		defer close(batchCh)
		for start := 0; start < len(pending); start += i.opt.EmbedBatchSize {
			end := start + i.opt.EmbedBatchSize
			if end > len(pending) {
				end = len(pending)
			}
			select {
			case batchCh <- pending[start:end]:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() { wg.Wait(); close(resCh) }()

	// Stage 3: serialize store writes, one transaction per embedded batch.
	// An early return must unblock the feeder and the workers, so every error
	// path cancels and drains resCh until the pool has shut down.
	abort := func() {
		cancel()
		for range resCh {
		}
	}
	embedded, failed := 0, 0
	for res := range resCh {
		if ctx.Err() != nil {
			abort()
			return ctx.Err()
		}
		failed += res.failed
		if len(res.entries) == 0 {
			continue
		}
		if err := i.st.InsertBulk(res.entries); err != nil {
			abort()
			return err
		}
		embedded += len(res.entries)
		percent := float32(skipped+embedded+failed) / float32(max(total, 1))
		report(models.IndexProgress{
			Stage:           models.IndexStageStore,
			SkippedRecords:  skipped,
			EmbeddedRecords: embedded,
			FailedRecords:   failed,
			Percent:         percent,
		})
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	report(models.IndexProgress{
		Stage:           models.IndexStageDone,
		SkippedRecords:  skipped,
		EmbeddedRecords: embedded,
		FailedRecords:   failed,
		Percent:         1,
	})
	return nil
}

// embedBatch embeds one batch of records. A batch-level failure falls back to
// per-record embedding so a single malformed record is logged and skipped
// instead of aborting the batch.
func (i *Indexer) embedBatch(batch []models.CorpusRecord) batchResult {
	texts := make([]string, len(batch))
	for idx, rec := range batch {
		texts[idx] = rec.FuncDocString
	}
	vecs, err := i.e.EmbedTexts(texts)
	if err == nil && len(vecs) == len(batch) {
		entries := make([]models.EmbeddingEntry, len(batch))
		for idx, rec := range batch {
			entries[idx] = models.EmbeddingEntry{
				ID:      rec.ID,
				Snippet: rec.WholeFuncString,
				Vector:  vecs[idx],
			}
		}
		return batchResult{entries: entries}
	}
	if err != nil {
		log.Printf("indexer: batch embed failed, retrying records one by one: %v", err)
	}

	var res batchResult
	for _, rec := range batch {
		vec, err := i.e.EmbedQuery(rec.FuncDocString)
		if err != nil {
			log.Printf("indexer: skip record %d (%s): %v", rec.ID, rec.FuncName, err)
			res.failed++
			continue
		}
		res.entries = append(res.entries, models.EmbeddingEntry{
			ID:      rec.ID,
			Snippet: rec.WholeFuncString,
			Vector:  vec,
		})
	}
	return res
}
