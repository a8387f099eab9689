package converter

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltv-parser/internal/hltv"
)

var astralisRoster = []hltv.Player{
	{ID: 7398, Nickname: "dupreeh"},
	{ID: 7592, Nickname: "device"},
	{ID: 4954, Nickname: "Xyp9x"},
	{ID: 9032, Nickname: "Magisk"},
	{ID: 7412, Nickname: "gla1ve"},
}

func TestTeamPage(t *testing.T) {
	got, err := TeamPage(fixture(t, "team_page.html"))
	require.NoError(t, err)

	want := &hltv.TeamPage{
		ID:      6665,
		Name:    "Astralis",
		Ranking: 4,
		Players: astralisRoster,
		LogoURL: "https://img-cdn.hltv.org/teamlogo/astralis.svg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TeamPage mismatch (-want +got):\n%s", diff)
	}
}

func TestTeamPageRanking(t *testing.T) {
	page := func(stat string) string {
		return `<html><head><link rel="canonical" href="/team/1/x"></head><body><div class="teamProfile">
<h1 class="profile-team-name">T</h1>` + stat + `</div></body></html>`
	}

	tests := map[string]uint32{
		`<div class="profile-team-stat"><b>World ranking</b><span class="right">#17</span></div>`: 17,
		`<div class="profile-team-stat"><b>World ranking</b><span class="right">-</span></div>`:   0,
		`<div class="profile-team-stat"><b>Average player age</b><span class="right">24</span></div>`: 0,
		``: 0,
	}
	for stat, want := range tests {
		got, err := TeamPage(parse(t, page(stat)))
		require.NoError(t, err)
		assert.Equal(t, want, got.Ranking, stat)
		assert.Empty(t, got.Players)
	}
}

func TestTeamPageFailures(t *testing.T) {
	base := `<html><head><link rel="canonical" href="/team/1/x"></head><body><div class="teamProfile">
<h1 class="profile-team-name">T</h1>
<div class="bodyshot-team-bg"><a class="col-custom" href="/player/1/a" title="a"></a></div>
</div></body></html>`

	tests := []struct {
		name string
		html string
		want error
	}{
		{"not a team page", `<html><body><div class="match-page"></div></body></html>`, ErrStructureNotFound},
		{"no name", strings.Replace(base, `<h1 class="profile-team-name">T</h1>`, "", 1), ErrStructureNotFound},
		{"no canonical", strings.Replace(base, `<link rel="canonical" href="/team/1/x">`, "", 1), ErrStructureNotFound},
		{"player without title", strings.Replace(base, ` title="a"`, "", 1), ErrAttributeMissing},
		{"player with bad id", strings.Replace(base, `/player/1/a`, "/player/a/1", 1), ErrValueParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TeamPage(parse(t, tt.html))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPlayers(t *testing.T) {
	t.Run("team page roster", func(t *testing.T) {
		got, err := Players(fixture(t, "team_page.html"))
		require.NoError(t, err)
		assert.Equal(t, astralisRoster, got)
	})

	t.Run("match page lineups", func(t *testing.T) {
		got, err := Players(fixture(t, "match_finished_bo3.html"))
		require.NoError(t, err)

		want := append([]hltv.Player{}, astralisRoster...)
		want = append(want,
			hltv.Player{ID: 11893, Nickname: "ZywOo"},
			hltv.Player{ID: 1225, Nickname: "shox"},
			hltv.Player{ID: 7169, Nickname: "RpK"},
			hltv.Player{ID: 7322, Nickname: "apEX"},
			hltv.Player{ID: 14176, Nickname: "misutaaa"},
		)
		assert.Equal(t, want, got)
	})

	t.Run("nothing listed", func(t *testing.T) {
		got, err := Players(parse(t, `<html><body></body></html>`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
