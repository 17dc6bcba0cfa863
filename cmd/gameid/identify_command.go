package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gameid/internal/extract"
	"gameid/internal/identify"
	"gameid/internal/platform"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var consoleFlag string
	var jsonFlag bool
	var plainFlag bool
	var preferHeader bool
	var preferGameDB bool
	var discLabel string
	var discStamp string

	cmd := &cobra.Command{
		Use:   "identify --console <name> <path>...",
		Short: "Identify one or more game images",
		Long: "Identify extracts the release serial from each image using the " +
			"selected console's header format, looks it up in the local metadata " +
			"database, and prints the reconciled result. The console is never " +
			"guessed from the file contents.",
		Args: cobra.MinimumNArgs(1),
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

			preferDatabase := cfg.Identify.PreferGameDB
			if preferGameDB {
				preferDatabase = true
			}
			if preferHeader {
				preferDatabase = false
			}
			opts := identify.Options{
				PreferDatabase: preferDatabase,
				Mounted: extract.MountedOptions{
					Label: discLabel,
					Stamp: discStamp,
				},
			}
			out := cmd.OutOrStdout()

			var outcomes []*identify.Outcome
			for _, path := range args {
				outcome, err := identify.IdentifyPath(cmd.Context(), path, tag, ix, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				identify.LogOutcome(logger, path, outcome)
				outcomes = append(outcomes, outcome)

				switch {
				case jsonFlag:
					// Emitted as one document after the loop.
				case plainFlag || !stdoutIsTTY():
					printOutcomePlain(out, path, outcome, cfg.Identify.Delimiter)
				default:
					printOutcomeTable(out, path, outcome)
				}
			}

			if jsonFlag {
				if len(outcomes) == 1 {
					return printJSON(out, outcomes[0])
				}
				return printJSON(out, outcomes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&consoleFlag, "console", "C", "", "Console the images belong to ("+strings.Join(platform.Names(), ", ")+")")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Emit one delimited line per image")
	cmd.Flags().BoolVar(&preferHeader, "prefer-header", false, "Prefer header fields over database fields")
	cmd.Flags().BoolVar(&preferGameDB, "prefer-gamedb", false, "Prefer database fields over header fields")
	cmd.MarkFlagsMutuallyExclusive("prefer-header", "prefer-gamedb")
	cmd.Flags().StringVar(&discLabel, "disc-label", "", "Volume label of a mounted disc directory")
	cmd.Flags().StringVar(&discStamp, "disc-uuid", "", "Volume creation stamp of a mounted disc directory")
	_ = cmd.MarkFlagRequired("console")

	return cmd
}
