package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/httphelper"
	"github.com/leighmacdonald/capwatch/internal/stats"
	"github.com/maruel/natural"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var baseURL string

	command := &cobra.Command{
		Use:   "stats",
		Short: "Prints the player hit stats of a running instance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, errFetch := stats.Fetch(cmd.Context(), httphelper.NewHTTPClient(), baseURL)
			if errFetch != nil {
				return errFetch
			}

			return printStats(cmd.OutOrStdout(), snapshot)
		},
	}

	command.Flags().StringVar(&baseURL, "url", "http://localhost:3000", "base url of the capwatch instance")

	return command
}

// printStats writes one table per gang, known gangs first.
func printStats(writer io.Writer, snapshot stats.Snapshot) error {
	for _, current := range gangOrder(snapshot) {
		players := snapshot[current]

		if _, errWrite := fmt.Fprintf(writer, "%s (%d players)\n", current.Display(), len(players)); errWrite != nil {
			return errWrite
		}

		if len(players) == 0 {
			continue
		}

		nicks := slices.Collect(maps.Keys(players))
		sort.Sort(natural.StringSlice(nicks))

		tbl := tablewriter.NewTable(writer)
		tbl.Header("Nick", "Hits", "Headshots", "HS %", "Damage")

		for _, nick := range nicks {
			counters := players[nick]
			if errAppend := tbl.Append([]string{
				nick,
				humanize.Comma(counters.Hits),
				humanize.Comma(counters.Headshots),
				fmt.Sprintf("%.1f", counters.HeadshotPercent()),
				humanize.Comma(counters.Damage),
			}); errAppend != nil {
				return errAppend
			}
		}

		if errRender := tbl.Render(); errRender != nil {
			return errRender
		}
	}

	return nil
}

func gangOrder(snapshot stats.Snapshot) []gang.Gang {
	order := gang.Known()

	var extra []gang.Gang

	for name := range snapshot {
		if !slices.Contains(order, name) {
			extra = append(extra, name)
		}
	}

	slices.Sort(extra)

	return append(order, extra...)
}
