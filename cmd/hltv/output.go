package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"hltv-parser/internal/hltv"
)

func render(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	switch v := v.(type) {
	case *hltv.MatchPage:
		matchTables(w, v)
	case *hltv.TeamPage:
		teamTable(w, v)
	case []hltv.MatchResult:
		resultsTable(w, v)
	case []hltv.UpcomingMatch:
		upcomingTable(w, v)
	case []hltv.Player:
		playersTable(w, "Players", v)
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	return nil
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func teamName(t *hltv.Team) string {
	if t == nil {
		return "TBD"
	}
	return t.Name
}

func matchTables(w io.Writer, p *hltv.MatchPage) {
	t := newTable(w, fmt.Sprintf("Match %d", p.ID))
	score := "-"
	if p.Score != nil {
		score = fmt.Sprintf("%d - %d", p.Score.Team1, p.Score.Team2)
	}
	t.AppendRows([]table.Row{
		{"Teams", fmt.Sprintf("%s vs %s", teamName(p.Team1), teamName(p.Team2))},
		{"Event", p.Event.Name},
		{"Date", p.Date.Format("2006-01-02 15:04 MST")},
		{"Format", p.Format},
		{"Status", p.Status},
		{"Score", score},
	})
	t.Render()

	if len(p.Maps) > 0 {
		mt := newTable(w, "Maps")
		mt.AppendHeader(table.Row{"Map", teamName(p.Team1), teamName(p.Team2)})
		for _, m := range p.Maps {
			mt.AppendRow(table.Row{m.Map.Name(), m.Team1, m.Team2})
		}
		mt.Render()
	}

	if len(p.Stats) > 0 {
		st := newTable(w, "Stats")
		st.AppendHeader(table.Row{"Player", "K-D", "ADR", "KAST", "Rating"})
		for _, s := range p.Stats {
			st.AppendRow(table.Row{
				s.Player.Nickname,
				fmt.Sprintf("%d-%d", s.Stats.Kills, s.Stats.Deaths),
				fmt.Sprintf("%.1f", s.Stats.ADR),
				fmt.Sprintf("%.1f%%", s.Stats.KAST),
				fmt.Sprintf("%.2f", s.Stats.Rating),
			})
		}
		st.Render()
	}
}

func teamTable(w io.Writer, p *hltv.TeamPage) {
	ranking := "unranked"
	if p.Ranking > 0 {
		ranking = fmt.Sprintf("#%d", p.Ranking)
	}
	t := newTable(w, fmt.Sprintf("%s (%d)", p.Name, p.ID))
	t.AppendRow(table.Row{"World ranking", ranking})
	t.Render()
	playersTable(w, "Players", p.Players)
}

func playersTable(w io.Writer, title string, players []hltv.Player) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"ID", "Nickname"})
	for _, p := range players {
		t.AppendRow(table.Row{p.ID, p.Nickname})
	}
	t.Render()
}

func resultsTable(w io.Writer, results []hltv.MatchResult) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"ID", "Team 1", "Score", "Team 2", "Format", "Event"})
	for _, r := range results {
		team1, team2 := r.Team1, r.Team2
		switch r.Winner {
		case hltv.First:
			team1 = "*" + team1
		case hltv.Second:
			team2 = "*" + team2
		}
		t.AppendRow(table.Row{r.ID, team1, fmt.Sprintf("%d - %d", r.Score.Team1, r.Score.Team2), team2, r.Format, r.Event})
	}
	t.Render()
}

func upcomingTable(w io.Writer, matches []hltv.UpcomingMatch) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"ID", "Date", "Match", "Format", "Stars", "Event"})
	for _, m := range matches {
		t.AppendRow(table.Row{
			m.ID,
			m.Date.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s vs %s", teamName(m.Team1), teamName(m.Team2)),
			m.Format,
			strings.Repeat("*", int(m.Stars)),
			m.Event,
		})
	}
	t.Render()
}
