package hltv

import (
	"fmt"
	"strings"
)

// MatchFormat is best-of-N. The value equals the number of maps.
type MatchFormat uint8

const (
	Bo1 MatchFormat = 1
	Bo3 MatchFormat = 3
	Bo5 MatchFormat = 5
	Bo7 MatchFormat = 7
)

func (f MatchFormat) String() string {
	switch f {
	case Bo1, Bo3, Bo5, Bo7:
		return fmt.Sprintf("bo%d", uint8(f))
	}
	return "unknown"
}

func (f MatchFormat) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// MatchStatus is the state of a match page.
type MatchStatus uint8

const (
	Upcoming MatchStatus = iota
	Live
	Finished
)

func (s MatchStatus) String() string {
	switch s {
	case Live:
		return "live"
	case Finished:
		return "finished"
	}
	return "upcoming"
}

func (s MatchStatus) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// WhichTeam refers to a side in display order.
type WhichTeam uint8

const (
	NoTeam WhichTeam = iota
	First
	Second
)

func (w WhichTeam) String() string {
	switch w {
	case First:
		return "team1"
	case Second:
		return "team2"
	}
	return "none"
}

func (w WhichTeam) MarshalYAML() (interface{}, error) {
	return w.String(), nil
}

// Map is a competitive map. Names outside the known pool are Unknown.
type Map uint8

const (
	Unknown Map = iota
	Cache
	Season
	Dust2
	Mirage
	Inferno
	Nuke
	Train
	Cobblestone
	Overpass
	Tuscan
	Vertigo
	Ancient
	Anubis
)

var mapNames = map[Map]string{
	Cache:       "Cache",
	Season:      "Season",
	Dust2:       "Dust2",
	Mirage:      "Mirage",
	Inferno:     "Inferno",
	Nuke:        "Nuke",
	Train:       "Train",
	Cobblestone: "Cobblestone",
	Overpass:    "Overpass",
	Tuscan:      "Tuscan",
	Vertigo:     "Vertigo",
	Ancient:     "Ancient",
	Anubis:      "Anubis",
}

// short codes used in result lists
var mapCodes = map[string]Map{
	"cch":    Cache,
	"cache":  Cache,
	"season": Season,
	"d2":     Dust2,
	"mrg":    Mirage,
	"inf":    Inferno,
	"nuke":   Nuke,
	"trn":    Train,
	"cbl":    Cobblestone,
	"ovp":    Overpass,
	"tuscan": Tuscan,
	"vtg":    Vertigo,
	"anc":    Ancient,
	"anb":    Anubis,
}

// ParseMap maps a display name ("Dust2") or short code ("d2") to a Map.
func ParseMap(s string) Map {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "de_")
	for m, name := range mapNames {
		if strings.ToLower(name) == s {
			return m
		}
	}
	if m, ok := mapCodes[s]; ok {
		return m
	}
	return Unknown
}

// Name is the display name, "" for Unknown.
func (m Map) Name() string {
	return mapNames[m]
}

// String renders the de_ identifier, "n/a" for Unknown.
func (m Map) String() string {
	name, ok := mapNames[m]
	if !ok {
		return "n/a"
	}
	return "de_" + strings.ToLower(name)
}

func (m Map) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
