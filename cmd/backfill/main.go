package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leandertoney/tastelanc/backfill"
	"github.com/leandertoney/tastelanc/config"
	"github.com/leandertoney/tastelanc/ingest"
	"github.com/leandertoney/tastelanc/store"
)

type options struct {
	days           int
	impressionDays int
	batchSize      int
	seed           int64
	anchor         string
	driver         string
	profilePath    string
	only           []string
	dryRun         bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tastelanc-backfill",
		Short: "Seed the TasteLanc analytics tables with synthetic engagement history",
		Long: `Generates plausible page views, clicks, favorites and home-screen section
impressions for every active restaurant and pushes them into the store.

Credentials come from the environment: SUPABASE_URL and
SUPABASE_SERVICE_KEY for the rest driver, DATABASE_URL for postgres.

Example:
  tastelanc-backfill --days 60
  tastelanc-backfill --only views,clicks --seed 42 --dry-run
  tastelanc-backfill --driver postgres --batch-size 1000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.days, "days", 60, "days of views and clicks to backfill")
	cmd.Flags().IntVar(&opts.impressionDays, "impression-days", 7, "days of section impressions to backfill")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", ingest.DefaultBatchSize, "rows per insert request")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one and logs it)")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "end date of the window as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.driver, "driver", config.DriverREST, "store driver (rest|postgres)")
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "path to a YAML traffic profile")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "restrict to these kinds (views,clicks,favorites,impressions)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "generate and count events without inserting")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(opts.driver); err != nil {
		return err
	}

	profile := config.DefaultProfile()
	if opts.profilePath != "" {
		var err error
		profile, err = config.LoadProfile(opts.profilePath)
		if err != nil {
			return err
		}
		log.Printf("📋 Loaded traffic profile from %s", opts.profilePath)
	}

	var st store.Store
	switch opts.driver {
	case config.DriverPostgres:
		ps, err := store.NewPostgresStore(cfg)
		if err != nil {
			return err
		}
		defer ps.Close()
		st = ps
	default:
		st = store.NewRESTStore(cfg)
	}

	var anchor time.Time
	if opts.anchor != "" {
		parsed, err := time.Parse("2006-01-02", opts.anchor)
		if err != nil {
			return fmt.Errorf("invalid --anchor %q: want YYYY-MM-DD", opts.anchor)
		}
		anchor = parsed
	}

	pipeline, err := backfill.NewPipeline(st, profile, backfill.Options{
		Days:           opts.days,
		ImpressionDays: opts.impressionDays,
		BatchSize:      opts.batchSize,
		Seed:           opts.seed,
		Anchor:         anchor,
		Only:           opts.only,
		DryRun:         opts.dryRun,
	})
	if err != nil {
		return err
	}

	_, err = pipeline.Run(ctx)
	return err
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("🛑 Received %s, stopping after the current batch", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
