package converter

import (
	"fmt"
	"strings"
	"time"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/hltv"
)

// MatchPage converts a match detail page. Identity, event, date and format are
// required; teams, score, maps and stats may be missing on unplayed matches.
func MatchPage(doc *dom.Document) (*hltv.MatchPage, error) {
	root := doc.Root().Find("match-page")
	if !root.Exists() {
		return nil, notFound("match-page container")
	}

	id, err := canonicalID(doc, "matches")
	if err != nil {
		return nil, fmt.Errorf("match id: %w", err)
	}

	team1, err := matchTeam(root, "team1-gradient")
	if err != nil {
		return nil, fmt.Errorf("team1: %w", err)
	}
	team2, err := matchTeam(root, "team2-gradient")
	if err != nil {
		return nil, fmt.Errorf("team2: %w", err)
	}

	event, err := matchEvent(root)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}

	date, err := matchDate(root)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	format, err := matchFormat(root)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	maps, err := mapScores(root)
	if err != nil {
		return nil, fmt.Errorf("maps: %w", err)
	}

	status, _ := root.Find("timeAndEvent").Find("countdown").Text()

	return &hltv.MatchPage{
		ID:     id,
		Status: StatusFromText(status),
		Team1:  team1,
		Team2:  team2,
		Event:  event,
		Date:   date,
		Format: format,
		Score:  matchScore(root),
		Maps:   maps,
		Stats:  performances(root),
	}, nil
}

// matchTeam returns nil without error when the side is not decided yet.
func matchTeam(root dom.Rich, box string) (*hltv.Team, error) {
	b := root.Find("teamsBox").Find(box)
	name, ok := b.Find("teamName").Text()
	if !ok || name == "" {
		return nil, nil
	}

	id, err := linkID(b, "team", box)
	if err != nil {
		return nil, err
	}

	logo, alt := teamLogos(b)
	team := hltv.NewTeam(id, name, logo, alt)
	return &team, nil
}

// teamLogos picks the day logo and the optional night-only variant.
func teamLogos(b dom.Rich) (logo, alt string) {
	for _, img := range b.FindAll("logo") {
		src, ok := img.Attr("src")
		if !ok {
			continue
		}
		if night, _ := img.HasClass("night-only"); night {
			if alt == "" {
				alt = src
			}
			continue
		}
		if logo == "" {
			logo = src
		}
	}
	return logo, alt
}

func matchEvent(root dom.Rich) (hltv.Event, error) {
	a := root.Find("timeAndEvent").Find("event").FindWhere(dom.TagIs("a"))
	if !a.Exists() {
		return hltv.Event{}, notFound("event link")
	}

	id, err := linkID(a, "events", "event")
	if err != nil {
		return hltv.Event{}, err
	}

	name, ok := a.Attr("title")
	if !ok || strings.TrimSpace(name) == "" {
		return hltv.Event{}, missingAttr("title", "event link")
	}

	return hltv.Event{ID: id, Name: strings.TrimSpace(name)}, nil
}

func matchDate(root dom.Rich) (time.Time, error) {
	d := root.Find("timeAndEvent").Find("date")
	if !d.Exists() {
		return time.Time{}, notFound("date")
	}
	return unixMilliAttr(d, "data-unix", "date")
}

func unixMilliAttr(r dom.Rich, attr, what string) (time.Time, error) {
	ms, found, err := dom.AttrAs(r, attr, dom.Int64)
	if err != nil {
		return time.Time{}, badValue(what, err)
	}
	if !found {
		return time.Time{}, missingAttr(attr, what)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func matchFormat(root dom.Rich) (hltv.MatchFormat, error) {
	maps := root.Find("maps")
	if !maps.Exists() {
		return 0, notFound("maps section")
	}
	return FormatFromMapCount(len(maps.FindAll("mapholder")))
}

func isCounter(n dom.Node) bool {
	return dom.ClassMember(n, "won") || dom.ClassMember(n, "lost") || dom.ClassMember(n, "tie")
}

// matchScore is nil while either counter is missing (upcoming or live) or
// shows something other than a number.
func matchScore(root dom.Rich) *hltv.MatchScore {
	box := root.Find("teamsBox")

	text1, found1 := box.Find("team1-gradient").FindWhere(isCounter).Text()
	text2, found2 := box.Find("team2-gradient").FindWhere(isCounter).Text()
	if !found1 || !found2 || isPlaceholder(text1) || isPlaceholder(text2) {
		return nil
	}

	team1, err1 := dom.Uint32(text1)
	team2, err2 := dom.Uint32(text2)
	if err1 != nil || err2 != nil {
		return nil
	}

	score := ResolveScore(team1, team2)
	return &score
}

// mapScores skips map holders that have not been played.
func mapScores(root dom.Rich) ([]hltv.MapScore, error) {
	var result []hltv.MapScore
	for _, holder := range root.Find("maps").FindAll("mapholder") {
		name, _ := holder.Find("mapname").Text()
		if isPlaceholder(name) {
			continue
		}

		left, _ := holder.Find("results-left").Find("results-team-score").Text()
		right, _ := holder.Find("results-right").Find("results-team-score").Text()
		if isPlaceholder(left) || isPlaceholder(right) {
			continue
		}

		team1, err := dom.Uint32(left)
		if err != nil {
			return nil, badValue(fmt.Sprintf("%s team1 rounds %q", name, left), err)
		}
		team2, err := dom.Uint32(right)
		if err != nil {
			return nil, badValue(fmt.Sprintf("%s team2 rounds %q", name, right), err)
		}

		result = append(result, hltv.NewMapScore(hltv.ParseMap(name), team1, team2))
	}
	return result, nil
}

// performances reads the two all-maps stat tables. Anything other than two
// tables yields no stats; rows that do not convert are dropped.
func performances(root dom.Rich) []hltv.Performance {
	tables := root.Find("stats-content").FindAll("totalstats")
	if len(tables) != 2 {
		return nil
	}

	var result []hltv.Performance
	for _, table := range tables {
		for _, row := range table.FindAllWhere(dom.TagIs("tr")) {
			if header, _ := row.HasClass("header-row"); header {
				continue
			}
			p, err := performance(row)
			if err != nil {
				continue
			}
			result = append(result, p)
		}
	}
	return result
}

func performance(row dom.Rich) (hltv.Performance, error) {
	cell := row.Find("players")

	id, err := linkID(cell, "player", "player")
	if err != nil {
		return hltv.Performance{}, err
	}
	nick, ok := cell.Find("player-nick").Text()
	if !ok || nick == "" {
		return hltv.Performance{}, notFound("player-nick")
	}

	kd, ok := row.Find("kd").Text()
	if !ok {
		return hltv.Performance{}, notFound("kd")
	}
	kills, deaths, err := splitKD(kd)
	if err != nil {
		return hltv.Performance{}, err
	}

	adr, err := requiredFloat(row, "adr")
	if err != nil {
		return hltv.Performance{}, err
	}
	kast, err := requiredFloat(row, "kast")
	if err != nil {
		return hltv.Performance{}, err
	}
	rating, err := requiredFloat(row, "rating")
	if err != nil {
		return hltv.Performance{}, err
	}

	return hltv.Performance{
		Player: hltv.Player{ID: id, Nickname: nick},
		Stats: hltv.Stats{
			Kills:  kills,
			Deaths: deaths,
			ADR:    adr,
			KAST:   kast,
			Rating: rating,
		},
	}, nil
}

// splitKD reads the combined "67-53" kills-deaths cell.
func splitKD(s string) (kills, deaths uint32, err error) {
	k, d, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: kd %q has no delimiter", ErrValueParse, s)
	}
	if kills, err = dom.Uint32(k); err != nil {
		return 0, 0, badValue("kills", err)
	}
	if deaths, err = dom.Uint32(d); err != nil {
		return 0, 0, badValue("deaths", err)
	}
	return kills, deaths, nil
}

func requiredFloat(r dom.Rich, class string) (float32, error) {
	v, found, err := dom.TextAs(r.Find(class), dom.Float32)
	if err != nil {
		return 0, badValue(class, err)
	}
	if !found {
		return 0, notFound(class)
	}
	return v, nil
}
