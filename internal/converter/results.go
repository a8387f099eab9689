package converter

import (
	"fmt"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/hltv"
)

// Results converts the results list. The featured block at the top of the
// first page repeats entries from the list below; repeats are dropped.
func Results(doc *dom.Document) (Listing[hltv.MatchResult], error) {
	var listing Listing[hltv.MatchResult]

	holder := doc.Root().Find("results-holder")
	if !holder.Exists() {
		return listing, notFound("results-holder")
	}

	seen := make(map[uint32]bool)
	for i, con := range holder.FindAll("result-con") {
		r, err := result(con)
		if err != nil {
			listing.skip(i, err)
			continue
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		listing.Items = append(listing.Items, r)
	}
	return listing, nil
}

func result(con dom.Rich) (hltv.MatchResult, error) {
	id, err := linkID(con.Find("a-reset"), "matches", "result")
	if err != nil {
		return hltv.MatchResult{}, err
	}

	team1, ok := con.Find("team1").Find("team").Text()
	if !ok || team1 == "" {
		return hltv.MatchResult{}, notFound("team1 name")
	}
	team2, ok := con.Find("team2").Find("team").Text()
	if !ok || team2 == "" {
		return hltv.MatchResult{}, notFound("team2 name")
	}

	score, err := resultScore(con)
	if err != nil {
		return hltv.MatchResult{}, err
	}

	event, ok := con.Find("event-name").Text()
	if !ok || event == "" {
		return hltv.MatchResult{}, notFound("event-name")
	}

	code, _ := con.Find("map-text").Text()

	return hltv.MatchResult{
		ID:     id,
		Winner: resultWinner(con),
		Team1:  team1,
		Team2:  team2,
		Score:  score,
		Event:  event,
		Format: FormatFromCode(code),
	}, nil
}

// resultWinner reads the team-won marker; a draw marks neither side.
func resultWinner(con dom.Rich) hltv.WhichTeam {
	if won, _ := con.Find("team1").Find("team").HasClass("team-won"); won {
		return hltv.First
	}
	if won, _ := con.Find("team2").Find("team").HasClass("team-won"); won {
		return hltv.Second
	}
	return hltv.NoTeam
}

func resultScore(con dom.Rich) (hltv.MatchScore, error) {
	spans := con.Find("result-score").FindAllWhere(dom.TagIs("span"))
	if len(spans) != 2 {
		return hltv.MatchScore{}, notFound(fmt.Sprintf("result-score with 2 values, got %d", len(spans)))
	}

	team1, _, err := dom.TextAs(spans[0], dom.Uint32)
	if err != nil {
		return hltv.MatchScore{}, badValue("team1 score", err)
	}
	team2, _, err := dom.TextAs(spans[1], dom.Uint32)
	if err != nil {
		return hltv.MatchScore{}, badValue("team2 score", err)
	}
	return hltv.MatchScore{Team1: team1, Team2: team2}, nil
}
