package converter

import (
	"fmt"
	"strings"

	"hltv-parser/internal/hltv"
)

// Layout rules. They describe how the site renders things today and change
// when the site does; keep them free of tree traversal.

// roundScoreThreshold: no bo3+ counter goes above 4 maps, so a counter above
// this is a bo1 round score shown in the map-score slot.
const roundScoreThreshold = 8

// FormatFromMapCount maps the number of map holders to the match format.
func FormatFromMapCount(n int) (hltv.MatchFormat, error) {
	switch n {
	case 1:
		return hltv.Bo1, nil
	case 3:
		return hltv.Bo3, nil
	case 5:
		return hltv.Bo5, nil
	case 7:
		return hltv.Bo7, nil
	}
	return 0, fmt.Errorf("%w: %d map holders", ErrUnrecognizedVariant, n)
}

// FormatFromCode reads short codes such as "bo3". Anything else, including the
// map code a bo1 shows in its place, is a bo1.
func FormatFromCode(code string) hltv.MatchFormat {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "bo3":
		return hltv.Bo3
	case "bo5":
		return hltv.Bo5
	case "bo7":
		return hltv.Bo7
	}
	return hltv.Bo1
}

// StatusFromText classifies the countdown text of a match page.
func StatusFromText(text string) hltv.MatchStatus {
	switch text {
	case "Match over":
		return hltv.Finished
	case "LIVE":
		return hltv.Live
	}
	return hltv.Upcoming
}

// ResolveScore turns the two map-win counters into a match score. A bo1 shows
// its round score in the same place, so a leading counter above
// roundScoreThreshold collapses to 1-0 or 0-1.
//
// TODO: a lopsided map result (16-2) in the summary slot of a bo3 would be
// collapsed the same way; needs the format passed in once a page showing it is captured.
func ResolveScore(team1, team2 uint32) hltv.MatchScore {
	switch {
	case team1 > roundScoreThreshold && team1 > team2:
		return hltv.MatchScore{Team1: 1, Team2: 0}
	case team2 > roundScoreThreshold && team2 > team1:
		return hltv.MatchScore{Team1: 0, Team2: 1}
	}
	return hltv.MatchScore{Team1: team1, Team2: team2}
}

// isPlaceholder reports the tokens an unplayed map shows instead of a name or score.
func isPlaceholder(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "TBA", "-":
		return true
	}
	return false
}
