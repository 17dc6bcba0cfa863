package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"gameid/internal/descriptor"
	"gameid/internal/platform"
)

func newConsolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "consoles",
		Short: "List supported consoles",
		RunE: func(cmd *cobra.Command, args []string) error {
			aliases := make(map[platform.Tag][]string)
			for alias, tag := range platform.Aliases() {
				if !strings.EqualFold(alias, string(tag)) {
					aliases[tag] = append(aliases[tag], strings.ToLower(alias))
				}
			}

			rows := make([][]string, 0, len(platform.All))
			for _, tag := range platform.All {
				media := "cartridge"
				if tag.DiscBased() {
					media = "disc"
				}
				layouts := ""
				if d, ok := descriptor.For(tag); ok {
					names := make([]string, 0, len(d.Layouts))
					for _, l := range d.Layouts {
						names = append(names, l.Name)
					}
					layouts = strings.Join(names, ", ")
				}
				sort.Strings(aliases[tag])
				rows = append(rows, []string{
					string(tag), media, strings.Join(aliases[tag], ", "), layouts,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Console", "Media", "Aliases", "Layouts"}, rows, nil))
			return nil
		},
	}
}
