// Package request builds site-relative page URLs, including the filtered
// list pages. Resolve them against the configured base URL before fetching.
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hltv-parser/internal/hltv"
)

// ResultsPageSize is the number of entries one results page holds; Offset
// advances in steps of it.
const ResultsPageSize = 100

// EventFilter narrows list pages by where the event is played.
type EventFilter uint8

const (
	AllEvents EventFilter = iota
	LANEvents
	OnlineEvents
)

func (f EventFilter) String() string {
	switch f {
	case LANEvents:
		return "LAN"
	case OnlineEvents:
		return "Online"
	}
	return "All"
}

// ParseEventFilter accepts "all", "lan" and "online" in any case.
func ParseEventFilter(s string) (EventFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllEvents, nil
	case "lan":
		return LANEvents, nil
	case "online":
		return OnlineEvents, nil
	}
	return AllEvents, fmt.Errorf("unknown event filter %q", s)
}

func MatchURL(id uint32) string {
	return fmt.Sprintf("matches/%d/-", id)
}

func TeamURL(id uint32) string {
	return fmt.Sprintf("team/%d/-", id)
}

// Resolve joins a site-relative reference onto base.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

// UpcomingBuilder builds the upcoming matches URL.
type UpcomingBuilder struct {
	topTier   bool
	events    []uint32
	eventType EventFilter
}

func Upcoming() *UpcomingBuilder {
	return &UpcomingBuilder{}
}

// TopTier selects the site's own top tier filter. Other filters are ignored
// when it is set.
func (b *UpcomingBuilder) TopTier() *UpcomingBuilder {
	b.topTier = true
	return b
}

func (b *UpcomingBuilder) Events(ids ...uint32) *UpcomingBuilder {
	b.events = ids
	return b
}

func (b *UpcomingBuilder) EventType(f EventFilter) *UpcomingBuilder {
	b.eventType = f
	return b
}

func (b *UpcomingBuilder) Build() string {
	if b.topTier {
		return "matches?predefinedFilter=top_tier"
	}
	q := url.Values{}
	q.Set("eventType", b.eventType.String())
	addIDs(q, "event", b.events)
	return "matches?" + q.Encode()
}

// ResultsBuilder builds the results URL.
type ResultsBuilder struct {
	stars     uint32
	from, to  string
	events    []uint32
	players   []uint32
	teams     []uint32
	maps      []hltv.Map
	matchType EventFilter
	offset    uint32
}

func Results() *ResultsBuilder {
	return &ResultsBuilder{}
}

// Stars keeps results of matches rated at least n stars.
func (b *ResultsBuilder) Stars(n uint32) *ResultsBuilder {
	b.stars = n
	return b
}

// Year limits results to one calendar year.
func (b *ResultsBuilder) Year(year int) *ResultsBuilder {
	b.from = isoDate(year, 1, 1)
	b.to = isoDate(year, 12, 31)
	return b
}

// From sets the start of the date range. Without To it has no effect.
func (b *ResultsBuilder) From(year, month, day int) *ResultsBuilder {
	b.from = isoDate(year, month, day)
	return b
}

// To sets the end of the date range. Without From it has no effect.
func (b *ResultsBuilder) To(year, month, day int) *ResultsBuilder {
	b.to = isoDate(year, month, day)
	return b
}

func (b *ResultsBuilder) Events(ids ...uint32) *ResultsBuilder {
	b.events = ids
	return b
}

func (b *ResultsBuilder) Players(ids ...uint32) *ResultsBuilder {
	b.players = ids
	return b
}

func (b *ResultsBuilder) Team(id uint32) *ResultsBuilder {
	b.teams = []uint32{id}
	return b
}

func (b *ResultsBuilder) Teams(ids ...uint32) *ResultsBuilder {
	b.teams = ids
	return b
}

func (b *ResultsBuilder) Map(m hltv.Map) *ResultsBuilder {
	b.maps = []hltv.Map{m}
	return b
}

func (b *ResultsBuilder) Maps(maps ...hltv.Map) *ResultsBuilder {
	b.maps = maps
	return b
}

func (b *ResultsBuilder) EventType(f EventFilter) *ResultsBuilder {
	b.matchType = f
	return b
}

// Offset skips the first n results; pages advance by ResultsPageSize.
func (b *ResultsBuilder) Offset(n uint32) *ResultsBuilder {
	b.offset = n
	return b
}

func (b *ResultsBuilder) Build() string {
	q := url.Values{}
	q.Set("stars", strconv.FormatUint(uint64(b.stars), 10))
	q.Set("matchType", b.matchType.String())
	if b.from != "" && b.to != "" {
		q.Set("startDate", b.from)
		q.Set("endDate", b.to)
	}
	addIDs(q, "event", b.events)
	addIDs(q, "player", b.players)
	addIDs(q, "team", b.teams)
	for _, m := range b.maps {
		if m == hltv.Unknown {
			continue
		}
		q.Add("map", m.String())
	}
	if b.offset > 0 {
		q.Set("offset", strconv.FormatUint(uint64(b.offset), 10))
	}
	return "results?" + q.Encode()
}

func addIDs(q url.Values, key string, ids []uint32) {
	for _, id := range ids {
		q.Add(key, strconv.FormatUint(uint64(id), 10))
	}
}

func isoDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
