package backfill

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/leandertoney/tastelanc/config"
	"github.com/leandertoney/tastelanc/ingest"
	"github.com/leandertoney/tastelanc/models"
	"github.com/leandertoney/tastelanc/store"
	"github.com/leandertoney/tastelanc/synth"
	"github.com/leandertoney/tastelanc/traffic"
)

// Event kinds, in the order the pipeline runs them.
const (
	KindViews       = "views"
	KindClicks      = "clicks"
	KindFavorites   = "favorites"
	KindImpressions = "impressions"
)

// Kinds lists every phase in run order.
var Kinds = []string{KindViews, KindClicks, KindFavorites, KindImpressions}

// Options carries one run's knobs. The zero Anchor means "now"; the zero
// Seed means a fresh time-derived seed.
type Options struct {
	Days           int
	ImpressionDays int
	BatchSize      int
	Seed           int64
	Anchor         time.Time
	Only           []string
	DryRun         bool
}

// Pipeline generates and ingests every requested event kind against one
// store. It holds no mutable state between runs.
type Pipeline struct {
	store   store.Store
	profile config.Profile
	opts    Options
}

func NewPipeline(st store.Store, profile config.Profile, opts Options) (*Pipeline, error) {
	if opts.Days < 1 {
		return nil, fmt.Errorf("backfill window must cover at least 1 day, got %d", opts.Days)
	}
	if opts.ImpressionDays < 1 {
		return nil, fmt.Errorf("impression window must cover at least 1 day, got %d", opts.ImpressionDays)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	for _, kind := range opts.Only {
		if !knownKind(kind) {
			return nil, fmt.Errorf("unknown event kind %q (want one of %v)", kind, Kinds)
		}
	}
	return &Pipeline{store: st, profile: profile, opts: opts}, nil
}

func knownKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// KindResult is one phase's generated-versus-inserted outcome.
type KindResult struct {
	Kind string
	ingest.Result
}

// Summary is the whole run's outcome. The spread between generated and
// inserted counts shows how much the store's constraints tightened the
// synthetic volume; it is reported, never treated as a failure.
type Summary struct {
	Seed    int64
	DryRun  bool
	Results []KindResult
}

// Log prints the per-kind closing report.
func (s *Summary) Log() {
	if s.DryRun {
		log.Println("📊 Backfill summary (dry run, nothing inserted):")
	} else {
		log.Println("📊 Backfill summary:")
	}
	for _, r := range s.Results {
		line := fmt.Sprintf("  %s: %s generated, %s inserted",
			r.Kind, humanize.Comma(int64(r.Generated)), humanize.Comma(int64(r.Inserted)))
		if !s.DryRun && r.Inserted < r.Generated {
			line += fmt.Sprintf(" (%s dropped)", humanize.Comma(int64(r.Generated-r.Inserted)))
		}
		log.Print(line)
	}
	log.Printf("🎲 Seed %d reproduces this run", s.Seed)
}

// Run loads the snapshot, then generates and ingests each requested kind in
// order. Each phase materializes fully before its first insert. The
// returned error is a fatal input problem or the context's; per-batch
// ingestion failures only widen the summary's dropped counts.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	seed := p.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	anchor := p.opts.Anchor
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}

	log.Printf("🚀 Backfilling %d days up to %s (seed %d)",
		p.opts.Days, anchor.Format("2006-01-02 15:04:05"), seed)

	snap, err := LoadSnapshot(ctx, p.store)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	syn := synth.New(rng, p.profile, snap)
	window := traffic.Window(rng, anchor, p.opts.Days)

	summary := &Summary{Seed: seed, DryRun: p.opts.DryRun}
	client := ingest.New(p.store, p.opts.BatchSize)

	if p.wants(KindViews) {
		log.Println("📄 Generating page views...")
		views := syn.Views(window)
		log.Printf("  ✨ %s page views", humanize.Comma(int64(len(views))))

		res, err := push(ctx, p, client, models.CollectionPageViews, views, store.RejectDuplicates)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, KindResult{Kind: KindViews, Result: res})
	}

	if p.wants(KindClicks) {
		log.Println("👆 Generating clicks...")
		clicks := syn.Clicks(window)
		log.Printf("  ✨ %s clicks", humanize.Comma(int64(len(clicks))))

		res, err := push(ctx, p, client, models.CollectionClicks, clicks, store.RejectDuplicates)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, KindResult{Kind: KindClicks, Result: res})
	}

	if p.wants(KindFavorites) {
		log.Println("❤️  Generating favorites...")
		favorites := syn.Favorites(anchor)
		log.Printf("  ✨ %s favorites", humanize.Comma(int64(len(favorites))))

		res, err := push(ctx, p, client, models.CollectionFavorites, favorites, store.RejectDuplicates)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, KindResult{Kind: KindFavorites, Result: res})
	}

	if p.wants(KindImpressions) {
		log.Printf("🏠 Generating section impressions (last %d days)...", p.opts.ImpressionDays)
		impressions := syn.Impressions(anchor, p.opts.ImpressionDays)
		log.Printf("  ✨ %s impressions", humanize.Comma(int64(len(impressions))))

		res, err := push(ctx, p, client, models.CollectionImpressions, impressions, store.IgnoreDuplicates)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, KindResult{Kind: KindImpressions, Result: res})
	}

	summary.Log()
	return summary, nil
}

func (p *Pipeline) wants(kind string) bool {
	if len(p.opts.Only) == 0 {
		return true
	}
	for _, k := range p.opts.Only {
		if k == kind {
			return true
		}
	}
	return false
}

func push[T any](ctx context.Context, p *Pipeline, client *ingest.Client, collection string, rows []T, policy store.DuplicatePolicy) (ingest.Result, error) {
	if p.opts.DryRun {
		return ingest.Result{Generated: len(rows)}, nil
	}
	log.Printf("  💾 Inserting into %s...", collection)
	return ingest.Push(ctx, client, collection, rows, policy)
}
