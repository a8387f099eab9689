// Package hltv holds the records produced by the page converters.
// They are plain values: built once from one document, never changed after.
package hltv

import "time"

// Team is a team as it appears on a match or listing page.
type Team struct {
	ID      uint32 `yaml:"id"`
	Name    string `yaml:"name"`
	LogoURL string `yaml:"logo_url,omitempty"`
	// AltLogoURL is the night-mode logo; empty when the team has none.
	AltLogoURL string `yaml:"alt_logo_url,omitempty"`
}

func NewTeam(id uint32, name, logo, altLogo string) Team {
	return Team{ID: id, Name: name, LogoURL: logo, AltLogoURL: altLogo}
}

type Event struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

type Player struct {
	ID       uint32 `yaml:"id"`
	Nickname string `yaml:"nickname"`
}

// Stats is a player's performance over all maps of a match.
type Stats struct {
	Kills  uint32  `yaml:"kills"`
	Deaths uint32  `yaml:"deaths"`
	ADR    float32 `yaml:"adr"`
	KAST   float32 `yaml:"kast"`
	Rating float32 `yaml:"rating"`
}

type Performance struct {
	Player Player `yaml:"player"`
	Stats  Stats  `yaml:"stats"`
}

// MapScore is the round score of one played map, e.g. 16-14.
type MapScore struct {
	Map   Map    `yaml:"map"`
	Team1 uint32 `yaml:"team1_rounds"`
	Team2 uint32 `yaml:"team2_rounds"`
}

func NewMapScore(m Map, team1, team2 uint32) MapScore {
	return MapScore{Map: m, Team1: team1, Team2: team2}
}

// MatchScore counts maps won, e.g. 2-1. For a bo1 it is 1-0 or 0-1.
type MatchScore struct {
	Team1 uint32 `yaml:"team1_maps"`
	Team2 uint32 `yaml:"team2_maps"`
}

// Winner returns the side with more maps, NoTeam on a tie.
func (s MatchScore) Winner() WhichTeam {
	switch {
	case s.Team1 > s.Team2:
		return First
	case s.Team2 > s.Team1:
		return Second
	}
	return NoTeam
}

// MatchPage is everything the match detail page exposes.
type MatchPage struct {
	ID     uint32      `yaml:"id"`
	Status MatchStatus `yaml:"status"`
	// Team1 and Team2 are nil while the fixture is undecided.
	Team1  *Team       `yaml:"team1,omitempty"`
	Team2  *Team       `yaml:"team2,omitempty"`
	Event  Event       `yaml:"event"`
	Date   time.Time   `yaml:"date"`
	Format MatchFormat `yaml:"format"`
	// Score is nil until the page shows map counters.
	Score *MatchScore `yaml:"score,omitempty"`
	// Maps holds played maps only; partial for an unfinished bo3+.
	Maps  []MapScore    `yaml:"maps"`
	Stats []Performance `yaml:"stats"`
}

// MatchResult is one entry of the results list.
type MatchResult struct {
	ID     uint32    `yaml:"id"`
	Winner WhichTeam `yaml:"winner"`
	// The results list carries team names only.
	Team1 string `yaml:"team1"`
	Team2 string `yaml:"team2"`
	// Score is a map score for bo3+, the round score for a bo1.
	Score  MatchScore  `yaml:"score"`
	Event  string      `yaml:"event"`
	Format MatchFormat `yaml:"format"`
}

// UpcomingMatch is one entry of the upcoming matches list.
type UpcomingMatch struct {
	ID uint32 `yaml:"id"`
	// Stars is the prestige rating, 0 to 5.
	Stars  uint32      `yaml:"stars"`
	Team1  *Team       `yaml:"team1,omitempty"`
	Team2  *Team       `yaml:"team2,omitempty"`
	Event  string      `yaml:"event"`
	Format MatchFormat `yaml:"format"`
	Date   time.Time   `yaml:"date"`
}

// TeamPage is the team profile.
type TeamPage struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
	// Ranking is the world ranking position, 0 when unranked.
	Ranking uint32 `yaml:"ranking"`
	// Players may hold fewer or more than five entries.
	Players []Player `yaml:"players"`
	LogoURL string   `yaml:"logo_url"`
}
