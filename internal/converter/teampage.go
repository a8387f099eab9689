package converter

import (
	"fmt"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/hltv"
	"hltv-parser/internal/normalize"
)

// TeamPage converts a team profile page.
func TeamPage(doc *dom.Document) (*hltv.TeamPage, error) {
	root := doc.Root().Find("teamProfile")
	if !root.Exists() {
		return nil, notFound("teamProfile container")
	}

	id, err := canonicalID(doc, "team")
	if err != nil {
		return nil, fmt.Errorf("team id: %w", err)
	}

	name, ok := root.Find("profile-team-name").Text()
	if !ok || name == "" {
		return nil, notFound("profile-team-name")
	}

	players, err := teamRoster(root.Find("bodyshot-team-bg"))
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}

	logo, _ := root.Find("teamlogo").Attr("src")

	return &hltv.TeamPage{
		ID:      id,
		Name:    name,
		Ranking: worldRanking(root),
		Players: players,
		LogoURL: logo,
	}, nil
}

// worldRanking returns 0 when the team is unranked.
func worldRanking(root dom.Rich) uint32 {
	for _, stat := range root.FindAll("profile-team-stat") {
		label, _ := stat.FindWhere(dom.TagIs("b")).Text()
		if label != "World ranking" {
			continue
		}
		value, _ := stat.Find("right").Text()
		rank, err := dom.Uint32(normalize.Number(value))
		if err != nil {
			return 0
		}
		return rank
	}
	return 0
}
