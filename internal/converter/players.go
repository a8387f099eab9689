package converter

import (
	"fmt"

	"hltv-parser/internal/dom"
	"hltv-parser/internal/hltv"
)

// Players collects player identities from either page type that lists them:
// the roster of a team page and the lineups of a match page.
func Players(doc *dom.Document) ([]hltv.Player, error) {
	root := doc.Root()

	result, err := teamRoster(root.Find("bodyshot-team-bg"))
	if err != nil {
		return nil, err
	}

	lineup, err := lineupPlayers(root)
	if err != nil {
		return nil, err
	}
	return append(result, lineup...), nil
}

// teamRoster reads the bodyshot links of a team page. An absent block is an
// empty roster.
func teamRoster(body dom.Rich) ([]hltv.Player, error) {
	var result []hltv.Player
	for i, link := range body.FindAll("col-custom") {
		name, ok := link.Attr("title")
		if !ok || name == "" {
			return nil, missingAttr("title", fmt.Sprintf("roster entry %d", i))
		}
		href, ok := link.Attr("href")
		if !ok {
			return nil, missingAttr("href", fmt.Sprintf("roster entry %d", i))
		}
		id, err := pathID(href, "player")
		if err != nil {
			return nil, err
		}
		result = append(result, hltv.Player{ID: id, Nickname: name})
	}
	return result, nil
}

// lineupPlayers reads td.player cells of the match page lineups.
func lineupPlayers(root dom.Rich) ([]hltv.Player, error) {
	var result []hltv.Player
	for i, cell := range root.FindAllWhere(dom.All(dom.TagIs("td"), dom.HasClass("player"))) {
		id, found, err := dom.AttrAs(cell.Find("flagAlign"), "data-player-id", dom.Uint32)
		if err != nil {
			return nil, badValue(fmt.Sprintf("lineup player %d id", i), err)
		}
		if !found {
			return nil, missingAttr("data-player-id", fmt.Sprintf("lineup player %d", i))
		}
		nick, ok := cell.Find("text-ellipsis").Text()
		if !ok || nick == "" {
			return nil, notFound(fmt.Sprintf("lineup player %d nickname", i))
		}
		result = append(result, hltv.Player{ID: id, Nickname: nick})
	}
	return result, nil
}
