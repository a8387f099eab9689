package hltv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMap(t *testing.T) {
	tests := []struct {
		input    string
		expected Map
	}{
		{"Dust2", Dust2},
		{"dust2", Dust2},
		{"de_inferno", Inferno},
		{"ovp", Overpass},
		{"d2", Dust2},
		{"Anubis", Anubis},
		{"TBA", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseMap(tt.input), "ParseMap(%q)", tt.input)
	}
}

func TestMapString(t *testing.T) {
	assert.Equal(t, "de_dust2", Dust2.String())
	assert.Equal(t, "de_overpass", Overpass.String())
	assert.Equal(t, "n/a", Unknown.String())
	assert.Equal(t, "Inferno", Inferno.Name())
}

func TestMatchFormat(t *testing.T) {
	assert.Equal(t, "bo3", Bo3.String())
	assert.Equal(t, "unknown", MatchFormat(2).String())
}

func TestMatchScoreWinner(t *testing.T) {
	assert.Equal(t, First, MatchScore{Team1: 2, Team2: 1}.Winner())
	assert.Equal(t, Second, MatchScore{Team1: 0, Team2: 1}.Winner())
	assert.Equal(t, NoTeam, MatchScore{Team1: 1, Team2: 1}.Winner())
}
