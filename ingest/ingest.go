package ingest

import (
	"context"
	"log"

	"github.com/dustin/go-humanize"

	"github.com/leandertoney/tastelanc/store"
)

const (
	// DefaultBatchSize is rows per insert request.
	DefaultBatchSize = 500
	// progressEvery is how many batches pass between progress lines.
	progressEvery = 20
)

// Client pushes generated events into the store in fixed-size batches. A
// failed batch never aborts the run; the damage shows up as the spread
// between generated and inserted counts.
type Client struct {
	store     store.Store
	batchSize int
}

func New(st store.Store, batchSize int) *Client {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Client{store: st, batchSize: batchSize}
}

// Result reports what one push generated versus what the store kept.
type Result struct {
	Generated int
	Inserted  int
}

// Push delivers rows to a collection batch by batch. A batch rejected over a
// row conflict degrades to row-by-row submission so one poisoned row cannot
// sink its 499 neighbors; transport failures skip the batch instead, since
// resubmitting rows one at a time would just fail 500 more times. Under
// IgnoreDuplicates the store swallows conflicts, so no fallback can trigger.
// The returned error is only ever the context's.
func Push[T any](ctx context.Context, c *Client, collection string, rows []T, policy store.DuplicatePolicy) (Result, error) {
	res := Result{Generated: len(rows)}
	if len(rows) == 0 {
		return res, nil
	}

	batches := (len(rows) + c.batchSize - 1) / c.batchSize
	for idx := 0; idx < batches; idx++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		lo := idx * c.batchSize
		hi := lo + c.batchSize
		if hi > len(rows) {
			hi = len(rows)
		}
		batch := rows[lo:hi]

		n, err := c.store.Insert(ctx, collection, batch, policy)
		switch {
		case err == nil:
			res.Inserted += n

		case policy == store.RejectDuplicates && store.IsConstraintViolation(err):
			log.Printf("⚠️  Batch %d rejected: %v", idx, err)
			log.Printf("  🔁 Retrying %d rows individually...", len(batch))
			kept := 0
			for j := range batch {
				if _, rowErr := c.store.Insert(ctx, collection, batch[j:j+1], policy); rowErr == nil {
					kept++
				}
			}
			res.Inserted += kept
			log.Printf("  💾 Recovered %d/%d rows from batch %d", kept, len(batch), idx)

		default:
			log.Printf("❌ Batch %d failed: %v", idx, err)
		}

		if idx > 0 && idx%progressEvery == 0 {
			pct := lo * 100 / len(rows)
			log.Printf("  ⏳ %d%% (%s/%s rows)", pct,
				humanize.Comma(int64(lo)), humanize.Comma(int64(len(rows))))
		}
	}
	return res, nil
}
