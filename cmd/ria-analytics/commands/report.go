package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ria-analytics/internal/reports"
	"ria-analytics/internal/snapshot"
	"ria-analytics/internal/visuals"
)

var (
	reportSubmissionID string
	reportAsTable      bool
	reportFromCache    bool
)

var reportNames = []string{
	"live-status", "overdue", "stage-durations", "stuck",
	"workload", "bottlenecks", "timeline", "turnaround",
}

var reportCmd = &cobra.Command{
	Use:       "report <name>",
	Short:     "Fetch a snapshot and print one report to stdout",
	Long:      fmt.Sprintf("Available reports: %v", reportNames),
	Args:      cobra.ExactArgs(1),
	ValidArgs: reportNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		snap, err := resolveSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		engine := reports.New(snap)

		fmt.Fprintf(os.Stderr, "Snapshot of %s submissions taken %s\n",
			humanize.Comma(int64(len(snap.Submissions))), humanize.Time(snap.TakenAt))

		var payload interface{}
		var table reports.Table

		switch name {
		case "live-status":
			entries := engine.LiveStatus()
			payload, table = entries, reports.LiveStatusTable(entries)
		case "overdue":
			entries := engine.Overdue()
			payload, table = entries, reports.OverdueTable(entries)
		case "stage-durations":
			stats := engine.StageDurations()
			payload, table = stats, reports.StageDurationsTable(stats)
		case "stuck":
			entries := engine.StuckSubmissions()
			payload, table = entries, reports.StuckTable(entries)
		case "workload":
			entries := engine.OfficerWorkloads()
			payload, table = entries, reports.WorkloadTable(entries)
		case "bottlenecks":
			entries := engine.Bottlenecks()
			payload, table = entries, reports.BottlenecksTable(entries)
			if cfg.EnableMermaidCharts {
				defer fmt.Println(visuals.GenerateBottleneckChart(entries))
			}
		case "turnaround":
			report := engine.Turnaround()
			payload, table = report, reports.TurnaroundTable(report)
		case "timeline":
			if reportSubmissionID == "" {
				return fmt.Errorf("the timeline report requires --submission")
			}
			events, err := engine.Timeline(reportSubmissionID)
			if err != nil {
				return err
			}
			payload, table = events, reports.TimelineTable(events)
		default:
			return fmt.Errorf("unknown report %q, expected one of %v", name, reportNames)
		}

		if reportAsTable {
			return json.NewEncoder(os.Stdout).Encode(table)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

// resolveSnapshot fetches a fresh snapshot, or replays the latest cached one
// when --cached is set.
func resolveSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	if reportFromCache {
		cache, err := snapshot.OpenCache(cfg.CachePath)
		if err != nil {
			return nil, err
		}
		defer cache.Close()

		snap, ok, err := cache.LoadLatest()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("snapshot cache at %s is empty", cfg.CachePath)
		}
		return snap, nil
	}

	loader := snapshot.NewLoader(storeClient)
	snap, err := loader.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Snapshot fetch failed")
		return nil, err
	}
	return snap, nil
}

func init() {
	reportCmd.Flags().StringVar(&reportSubmissionID, "submission", "", "submission ID for the timeline report")
	reportCmd.Flags().BoolVar(&reportAsTable, "table", false, "emit export rows instead of the report object")
	reportCmd.Flags().BoolVar(&reportFromCache, "cached", false, "replay the latest cached snapshot instead of fetching")
}
