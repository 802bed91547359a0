package commands

import (
	"context"
	"os/signal"
	"syscall"

	"ria-analytics/internal/config"
	"ria-analytics/internal/logging"
	"ria-analytics/internal/records"
	"ria-analytics/internal/snapshot"
	"ria-analytics/internal/web"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	storeClient records.Client
)

var rootCmd = &cobra.Command{
	Use:   "ria-analytics",
	Short: "Workflow analytics engine for the regulatory-submission review pipeline",
	Long: `Computes the eight analytical views (live status, overdue, stage durations,
stuck-in-stage, officer workload, bottlenecks, submission timeline, turnaround/SLA)
over a point-in-time snapshot of the review pipeline, and serves them as JSON.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		storeClient = records.NewClient(cfg.RecordStore)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ria-analytics starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cache, err := snapshot.OpenCache(cfg.CachePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("Snapshot cache unavailable, serving without replay support")
			cache = nil
		} else {
			defer cache.Close()
		}

		loader := snapshot.NewLoader(storeClient)
		server := web.NewServer(cfg, loader, cache)
		return server.ListenAndServe(ctx)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(snapshotCmd)
}
