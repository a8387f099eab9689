package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hltv-parser/internal/converter"
	"hltv-parser/internal/dom"
)

func newConvertCmd(opts *options) *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a saved HTML page without fetching anything.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := dom.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			switch layout {
			case "match":
				page, err := converter.MatchPage(doc)
				if err != nil {
					return err
				}
				return render(out, opts.output, page)
			case "team":
				page, err := converter.TeamPage(doc)
				if err != nil {
					return err
				}
				return render(out, opts.output, page)
			case "results":
				listing, err := converter.Results(doc)
				if err != nil {
					return err
				}
				reportSkipped(cmd, listing.Skipped)
				return render(out, opts.output, listing.Items)
			case "upcoming":
				listing, err := converter.Upcoming(doc)
				if err != nil {
					return err
				}
				reportSkipped(cmd, listing.Skipped)
				return render(out, opts.output, listing.Items)
			case "players":
				players, err := converter.Players(doc)
				if err != nil {
					return err
				}
				return render(out, opts.output, players)
			}
			return fmt.Errorf("unknown layout %q: use match, team, results, upcoming or players", layout)
		},
	}
	cmd.Flags().StringVarP(&layout, "layout", "l", "match", "page layout: match, team, results, upcoming or players")
	return cmd
}

func reportSkipped(cmd *cobra.Command, skipped []error) {
	for _, err := range skipped {
		fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", err)
	}
}
