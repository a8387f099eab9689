package converter

import (
	"fmt"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/hltv"
)

const upcomingDateAttr = "data-zonedgrouping-entry-unix"

// Upcoming converts the upcoming matches list.
func Upcoming(doc *dom.Document) (Listing[hltv.UpcomingMatch], error) {
	var listing Listing[hltv.UpcomingMatch]

	holder := doc.Root().Find("upcomingMatchesWrapper")
	if !holder.Exists() {
		return listing, notFound("upcomingMatchesWrapper")
	}

	for i, c := range holder.FindAll("upcomingMatch") {
		m, err := upcoming(c)
		if err != nil {
			listing.skip(i, err)
			continue
		}
		listing.Items = append(listing.Items, m)
	}
	return listing, nil
}

func upcoming(c dom.Rich) (hltv.UpcomingMatch, error) {
	id, err := linkID(c.Find("match"), "matches", "match")
	if err != nil {
		return hltv.UpcomingMatch{}, err
	}

	team1, err := upcomingTeam(c, "team1")
	if err != nil {
		return hltv.UpcomingMatch{}, err
	}
	team2, err := upcomingTeam(c, "team2")
	if err != nil {
		return hltv.UpcomingMatch{}, err
	}

	event, err := upcomingEvent(c)
	if err != nil {
		return hltv.UpcomingMatch{}, err
	}

	date, err := unixMilliAttr(c, upcomingDateAttr, "upcomingMatch")
	if err != nil {
		return hltv.UpcomingMatch{}, err
	}

	// stars are cosmetic: missing or garbled means none
	stars, _, err := dom.AttrAs(c, "stars", dom.Uint32)
	if err != nil {
		stars = 0
	}

	code, _ := c.Find("matchMeta").Text()

	return hltv.UpcomingMatch{
		ID:     id,
		Stars:  stars,
		Team1:  team1,
		Team2:  team2,
		Event:  event,
		Format: FormatFromCode(code),
		Date:   date,
	}, nil
}

// upcomingTeam reads the team ID from the container attribute named after the
// side and the name from the side's block. Nil when either is absent.
func upcomingTeam(c dom.Rich, side string) (*hltv.Team, error) {
	id, found, err := dom.AttrAs(c, side, dom.Uint32)
	if err != nil {
		return nil, badValue(fmt.Sprintf("%s id", side), err)
	}
	if !found {
		return nil, nil
	}

	block := c.Find(side)
	name, ok := block.Find("matchTeamName").Text()
	if !ok || name == "" {
		return nil, nil
	}

	logo, _ := block.Find("matchTeamLogo").Attr("src")
	team := hltv.NewTeam(id, name, logo, "")
	return &team, nil
}

// upcomingEvent falls back to the info line shown when both teams are unknown.
func upcomingEvent(c dom.Rich) (string, error) {
	if name, ok := c.Find("matchEventName").Text(); ok && name != "" {
		return name, nil
	}

	empty := c.Find("matchInfoEmpty")
	if name, ok := empty.Find("line-clamp-3").Text(); ok && name != "" {
		return name, nil
	}
	if name, ok := empty.Text(); ok && name != "" {
		return name, nil
	}
	return "", notFound("event name")
}
