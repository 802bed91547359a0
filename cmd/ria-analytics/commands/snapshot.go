package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ria-analytics/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the local snapshot cache",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fetch a fresh snapshot and store it in the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := snapshot.NewLoader(storeClient)
		snap, err := loader.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		cache, err := snapshot.OpenCache(cfg.CachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		id, err := cache.Save(snap)
		if err != nil {
			return err
		}
		fmt.Printf("Saved snapshot %s (%s submissions)\n", id, humanize.Comma(int64(len(snap.Submissions))))
		return nil
	},
}

var snapshotInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "List cached snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := snapshot.OpenCache(cfg.CachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		infos, err := cache.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("Snapshot cache is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAKEN\tSAVED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, humanize.Time(info.TakenAt), humanize.Time(info.SavedAt))
		}
		return w.Flush()
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotInfoCmd)
}
