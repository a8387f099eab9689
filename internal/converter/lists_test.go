package converter

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltv-parser/internal/hltv"
)

func TestResults(t *testing.T) {
	got, err := Results(fixture(t, "results.html"))
	require.NoError(t, err)

	want := []hltv.MatchResult{
		{
			ID:     2346065,
			Winner: hltv.First,
			Team1:  "Astralis",
			Team2:  "Vitality",
			Score:  hltv.MatchScore{Team1: 2, Team2: 1},
			Event:  "BLAST Premier Global Final 2020",
			Format: hltv.Bo3,
		},
		{
			ID:     2346064,
			Winner: hltv.Second,
			Team1:  "Natus Vincere",
			Team2:  "G2",
			Score:  hltv.MatchScore{Team1: 1, Team2: 2},
			Event:  "BLAST Premier Global Final 2020",
			Format: hltv.Bo3,
		},
		{
			ID:     2346070,
			Winner: hltv.First,
			Team1:  "Sprout",
			Team2:  "ENCE",
			Score:  hltv.MatchScore{Team1: 16, Team2: 12},
			Event:  "Nine to Five 3",
			Format: hltv.Bo1,
		},
	}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, got.Skipped, 1)
	assert.True(t, errors.Is(got.Skipped[0], ErrValueParse), got.Skipped[0])
}

func TestResultsWithoutHolder(t *testing.T) {
	_, err := Results(parse(t, `<html><body><div class="results"></div></body></html>`))
	assert.True(t, errors.Is(err, ErrStructureNotFound), err)
}

func TestResultsEmptyHolder(t *testing.T) {
	got, err := Results(parse(t, `<html><body><div class="results-holder"></div></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Skipped)
}

func TestResultDraw(t *testing.T) {
	html := `<div class="results-holder"><div class="result-con"><a class="a-reset" href="/matches/5/x">
<div class="team1"><div class="team">A</div></div>
<div class="result-score"><span>15</span> - <span>15</span></div>
<div class="team2"><div class="team">B</div></div>
<span class="event-name">Showmatch</span></a></div></div>`

	got, err := Results(parse(t, html))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, hltv.NoTeam, got.Items[0].Winner)
	assert.Equal(t, hltv.Bo1, got.Items[0].Format)
}

func TestUpcoming(t *testing.T) {
	got, err := Upcoming(fixture(t, "upcoming.html"))
	require.NoError(t, err)

	want := []hltv.UpcomingMatch{
		{
			ID:     2346590,
			Stars:  2,
			Team1:  &hltv.Team{ID: 4608, Name: "Natus Vincere", LogoURL: "https://img-cdn.hltv.org/teamlogo/navi.svg"},
			Team2:  &hltv.Team{ID: 5995, Name: "G2", LogoURL: "https://img-cdn.hltv.org/teamlogo/g2.svg"},
			Event:  "IEM Katowice 2021",
			Format: hltv.Bo3,
			Date:   time.UnixMilli(1613487600000).UTC(),
		},
		{
			ID:     2346601,
			Event:  "IEM Katowice 2021 Play-In - Upper bracket quarter-final",
			Format: hltv.Bo1,
			Date:   time.UnixMilli(1613570400000).UTC(),
		},
		{
			ID:     2346610,
			Team1:  &hltv.Team{ID: 6665, Name: "Astralis", LogoURL: "https://img-cdn.hltv.org/teamlogo/astralis.svg"},
			Event:  "Pinnacle Fall Series 2",
			Format: hltv.Bo1,
			Date:   time.UnixMilli(1613656800000).UTC(),
		},
	}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("Upcoming mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, got.Skipped, 1)
	assert.True(t, errors.Is(got.Skipped[0], ErrAttributeMissing), got.Skipped[0])
}

func TestUpcomingBadTeamID(t *testing.T) {
	html := `<div class="upcomingMatchesWrapper"><div class="upcomingMatch" team1="navi" data-zonedgrouping-entry-unix="1">
<a class="match" href="/matches/7/x"><div class="team1"><div class="matchTeamName">NaVi</div></div>
<div class="matchEventName">E</div></a></div></div>`

	got, err := Upcoming(parse(t, html))
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	require.Len(t, got.Skipped, 1)
	assert.True(t, errors.Is(got.Skipped[0], ErrValueParse), got.Skipped[0])
}

func TestUpcomingWithoutHolder(t *testing.T) {
	_, err := Upcoming(parse(t, `<html><body></body></html>`))
	assert.True(t, errors.Is(err, ErrStructureNotFound), err)
}
