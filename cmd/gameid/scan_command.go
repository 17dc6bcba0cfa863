package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gameid/internal/identify"
	"gameid/internal/platform"
	"gameid/internal/reconcile"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var consoleFlag string
	var jsonFlag bool
	var workersFlag int

	cmd := &cobra.Command{
		Use:   "scan --console <name> <directory>",
		Short: "Identify every image of one console in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := platform.Parse(consoleFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ix, err := ctx.openIndex(cmd.Context())
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			paths, err := identify.ListImages(args[0], tag)
			if err != nil {
				return fmt.Errorf("list images in %s: %w", args[0], err)
			}
			if len(paths) == 0 {
				return fmt.Errorf("no %s images found in %s", tag, args[0])
			}

			workers := workersFlag
			if workers <= 0 {
				workers = cfg.Identify.ScanWorkers
			}
			report := identify.ScanFiles(cmd.Context(), paths, tag, ix,
				identify.Options{PreferDatabase: cfg.Identify.PreferGameDB}, workers, logger)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return printJSON(out, report)
			}

			rows := make([][]string, 0, len(report.Results))
			matched := 0
			for _, r := range report.Results {
				switch {
				case r.Err != nil:
					rows = append(rows, []string{r.Path, "", "error", r.Error})
				case r.Outcome.Result.Metadata != nil:
					matched++
					rows = append(rows, []string{r.Path, r.Outcome.Identifier.Serial,
						string(r.Outcome.Result.Status), r.Outcome.Result.Metadata.Title})
				default:
					title := r.Outcome.Identifier.Title
					if r.Outcome.Result.Status == reconcile.StatusAmbiguous {
						title = fmt.Sprintf("%d candidates", len(r.Outcome.Result.Candidates))
					}
					rows = append(rows, []string{r.Path, r.Outcome.Identifier.Serial,
						string(r.Outcome.Result.Status), title})
				}
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Serial", "Status", "Title"}, rows, nil))
			fmt.Fprintf(out, "%d of %d matched (run %s, %s)\n",
				matched, len(report.Results), report.RunID, report.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&consoleFlag, "console", "C", "", "Console the images belong to")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the full report as JSON")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Parallel workers (defaults to identify.scan_workers)")
	_ = cmd.MarkFlagRequired("console")

	return cmd
}
