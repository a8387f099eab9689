package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hltv-parser/internal/hltv"
	"hltv-parser/internal/request"
)

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint32(id), nil
}

func newMatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "match ID",
		Short: "Fetch and convert a match page.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			page, err := s.client.Match(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, page)
		},
	}
}

func newTeamCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "team ID",
		Short: "Fetch and convert a team page.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			page, err := s.client.Team(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, page)
		},
	}
}

func newUpcomingCmd(opts *options) *cobra.Command {
	var (
		topTier   bool
		events    []uint
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming matches.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := request.ParseEventFilter(eventType)
			if err != nil {
				return err
			}
			b := request.Upcoming().Events(toIDs(events)...).EventType(filter)
			if topTier {
				b.TopTier()
			}

			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			matches, err := s.client.Upcoming(cmd.Context(), b)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, matches)
		},
	}
	cmd.Flags().BoolVar(&topTier, "top-tier", false, "only top tier matches; other filters are ignored")
	cmd.Flags().UintSliceVar(&events, "event", nil, "event IDs")
	cmd.Flags().StringVar(&eventType, "event-type", "all", "all, lan or online")
	return cmd
}

func newResultsCmd(opts *options) *cobra.Command {
	var (
		stars     uint
		year      int
		from, to  string
		events    []uint
		players   []uint
		teams     []uint
		maps      []string
		eventType string
		page      uint
	)

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List match results.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := request.ParseEventFilter(eventType)
			if err != nil {
				return err
			}
			b := request.Results().
				Stars(uint32(stars)).
				Events(toIDs(events)...).
				Players(toIDs(players)...).
				Teams(toIDs(teams)...).
				EventType(filter).
				Offset(uint32(page) * request.ResultsPageSize)
			if year > 0 {
				b.Year(year)
			}
			if from != "" || to != "" {
				if err := dateRange(b, from, to); err != nil {
					return err
				}
			}
			var selected []hltv.Map
			for _, name := range maps {
				m := hltv.ParseMap(name)
				if m == hltv.Unknown {
					return fmt.Errorf("unknown map %q", name)
				}
				selected = append(selected, m)
			}
			b.Maps(selected...)

			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.client.Results(cmd.Context(), b)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, results)
		},
	}
	cmd.Flags().UintVar(&stars, "stars", 0, "minimum star rating, 0-5")
	cmd.Flags().IntVar(&year, "year", 0, "results of one calendar year")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD, needs --to")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD, needs --from")
	cmd.Flags().UintSliceVar(&events, "event", nil, "event IDs")
	cmd.Flags().UintSliceVar(&players, "player", nil, "player IDs")
	cmd.Flags().UintSliceVar(&teams, "team", nil, "team IDs")
	cmd.Flags().StringSliceVar(&maps, "map", nil, "map names, e.g. mirage or de_mirage")
	cmd.Flags().StringVar(&eventType, "event-type", "all", "all, lan or online")
	cmd.Flags().UintVar(&page, "page", 0, "0-based results page")
	return cmd
}

func dateRange(b *request.ResultsBuilder, from, to string) error {
	if from == "" || to == "" {
		return fmt.Errorf("--from and --to must be used together")
	}
	var y, m, d int
	if _, err := fmt.Sscanf(from, "%d-%d-%d", &y, &m, &d); err != nil {
		return fmt.Errorf("invalid --from %q: %w", from, err)
	}
	b.From(y, m, d)
	if _, err := fmt.Sscanf(to, "%d-%d-%d", &y, &m, &d); err != nil {
		return fmt.Errorf("invalid --to %q: %w", to, err)
	}
	b.To(y, m, d)
	return nil
}

func toIDs(ids []uint) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint32(id))
	}
	return out
}
