package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gameid/internal/gamedb"
	"gameid/internal/platform"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Metadata database utilities",
	}

	dbCmd.AddCommand(newDBUpdateCommand(ctx))
	dbCmd.AddCommand(newDBImportCommand(ctx))
	dbCmd.AddCommand(newDBStatsCommand(ctx))

	return dbCmd
}

func newDBUpdateCommand(ctx *commandContext) *cobra.Command {
	var consoleFlag string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download metadata snapshots into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			fetcher := gamedb.NewFetcher(cache, cfg.Database.BaseURL,
				time.Duration(cfg.Database.FetchTimeout)*time.Second, logger)

			out := cmd.OutOrStdout()
			if consoleFlag != "" {
				tag, err := platform.Parse(consoleFlag)
				if err != nil {
					return err
				}
				n, err := fetcher.FetchPlatform(cmd.Context(), tag)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %d %s records\n", n, tag)
				return nil
			}

			total, err := fetcher.FetchAll(cmd.Context())
			if total > 0 {
				fmt.Fprintf(out, "Imported %d records\n", total)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&consoleFlag, "console", "C", "", "Update a single console instead of all")
	return cmd
}

func newDBImportCommand(ctx *commandContext) *cobra.Command {
	var consoleFlag string

	cmd := &cobra.Command{
		Use:   "import --console <name> <snapshot.tsv[.gz]>",
		Short: "Import a local metadata snapshot",
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
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			n, err := cache.ImportFile(cmd.Context(), tag, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s records from %s\n", n, tag, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&consoleFlag, "console", "C", "", "Console the snapshot belongs to")
	_ = cmd.MarkFlagRequired("console")
	return cmd
}

func newDBStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached record counts per console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			stats, err := cache.Stats(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(platform.All))
			total := 0
			for _, tag := range platform.All {
				n := stats[tag]
				total += n
				rows = append(rows, []string{string(tag), strconv.Itoa(n)})
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})

			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Console", "Records"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
