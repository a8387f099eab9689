package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltv-parser/internal/hltv"
)

func query(t *testing.T, ref string) url.Values {
	t.Helper()
	u, err := url.Parse(ref)
	require.NoError(t, err)
	return u.Query()
}

func TestPageURLs(t *testing.T) {
	assert.Equal(t, "matches/2346065/-", MatchURL(2346065))
	assert.Equal(t, "team/6665/-", TeamURL(6665))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://www.hltv.org", "matches/1/-", "https://www.hltv.org/matches/1/-"},
		{"https://www.hltv.org/", "results?stars=1", "https://www.hltv.org/results?stars=1"},
		{"http://127.0.0.1:8080/mirror", "team/2/-", "http://127.0.0.1:8080/mirror/team/2/-"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestUpcomingBuilder(t *testing.T) {
	assert.Equal(t, "matches?eventType=All", Upcoming().Build())

	q := query(t, Upcoming().Events(5206, 5553).EventType(LANEvents).Build())
	assert.Equal(t, []string{"5206", "5553"}, q["event"])
	assert.Equal(t, "LAN", q.Get("eventType"))
}

func TestUpcomingTopTierWins(t *testing.T) {
	got := Upcoming().Events(1).EventType(OnlineEvents).TopTier().Build()
	assert.Equal(t, "matches?predefinedFilter=top_tier", got)
}

func TestResultsBuilder(t *testing.T) {
	q := query(t, Results().Build())
	assert.Equal(t, "0", q.Get("stars"))
	assert.Equal(t, "All", q.Get("matchType"))
	assert.False(t, q.Has("startDate"))
	assert.False(t, q.Has("offset"))

	q = query(t, Results().
		Stars(2).
		Year(2020).
		Events(5206).
		Players(7398, 11893).
		Teams(6665, 9565).
		Maps(hltv.Dust2, hltv.Unknown, hltv.Inferno).
		EventType(OnlineEvents).
		Offset(200).
		Build())

	assert.Equal(t, "2", q.Get("stars"))
	assert.Equal(t, "Online", q.Get("matchType"))
	assert.Equal(t, "2020-01-01", q.Get("startDate"))
	assert.Equal(t, "2020-12-31", q.Get("endDate"))
	assert.Equal(t, []string{"5206"}, q["event"])
	assert.Equal(t, []string{"7398", "11893"}, q["player"])
	assert.Equal(t, []string{"6665", "9565"}, q["team"])
	assert.Equal(t, []string{"de_dust2", "de_inferno"}, q["map"])
	assert.Equal(t, "200", q.Get("offset"))
}

func TestResultsDateRangeNeedsBothEnds(t *testing.T) {
	q := query(t, Results().From(2021, 1, 5).Build())
	assert.False(t, q.Has("startDate"))

	q = query(t, Results().From(2021, 1, 5).To(2021, 2, 1).Build())
	assert.Equal(t, "2021-01-05", q.Get("startDate"))
	assert.Equal(t, "2021-02-01", q.Get("endDate"))
}

func TestResultsSingleTeamAndMap(t *testing.T) {
	q := query(t, Results().Teams(1, 2).Team(3).Maps(hltv.Nuke, hltv.Train).Map(hltv.Mirage).Build())
	assert.Equal(t, []string{"3"}, q["team"])
	assert.Equal(t, []string{"de_mirage"}, q["map"])
}

func TestParseEventFilter(t *testing.T) {
	for in, want := range map[string]EventFilter{"": AllEvents, "ALL": AllEvents, "lan": LANEvents, "Online": OnlineEvents} {
		got, err := ParseEventFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseEventFilter("offline")
	assert.Error(t, err)
}
