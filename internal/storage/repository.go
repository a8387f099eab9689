package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hltv-parser/internal/checksum"
	"hltv-parser/internal/hltv"
)

// Record kinds.
const (
	KindResult   = "result"
	KindUpcoming = "upcoming"
)

// MatchRecord is the flattened, storable form of any converted match record.
// Team and event IDs are 0 where the source page does not carry them.
type MatchRecord struct {
	MatchID    uint32
	Kind       string
	Team1ID    uint32
	Team1      string
	Team2ID    uint32
	Team2      string
	Team1Score uint32
	Team2Score uint32
	Winner     string
	EventID    uint32
	Event      string
	Format     string
	Stars      uint32
	Date       time.Time
	CheckSum   string
}

// Outcome of an upsert.
type Outcome int

const (
	Unchanged Outcome = iota
	Inserted
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	}
	return "unchanged"
}

// Repository stores match records keyed by match ID.
type Repository interface {
	// UpsertMatch writes rec unless the stored checksum already equals rec.CheckSum.
	// A record that fails Verify is rejected.
	UpsertMatch(ctx context.Context, rec *MatchRecord) (Outcome, error)

	// KnownChecksum returns the stored checksum of a match.
	KnownChecksum(ctx context.Context, matchID uint32) (sum string, found bool, err error)

	CountMatches(ctx context.Context) (int, error)

	Close() error
}

var gen = checksum.NewGenerator()

// ErrStaleChecksum is returned for a record changed after Seal.
var ErrStaleChecksum = errors.New("checksum does not match record")

// Seal computes CheckSum over the fields the list pages show. Match page
// details added by Enrich are left out, so re-reading a list entry matches
// a stored row that was enriched earlier.
func (r *MatchRecord) Seal() {
	r.CheckSum = gen.GenerateRecordHash(r.sealFields()...)
}

// Verify fails with ErrStaleChecksum when CheckSum no longer matches the fields.
func (r *MatchRecord) Verify() error {
	if !gen.VerifyRecordHash(r.CheckSum, r.sealFields()...) {
		return fmt.Errorf("%w: match %d", ErrStaleChecksum, r.MatchID)
	}
	return nil
}

func (r *MatchRecord) sealFields() []string {
	date := ""
	if r.Kind != KindResult && !r.Date.IsZero() {
		date = r.Date.UTC().Format(time.RFC3339)
	}
	return []string{
		u32(r.MatchID), r.Kind, r.Team1, r.Team2,
		u32(r.Team1Score), u32(r.Team2Score), r.Winner,
		r.Event, r.Format, u32(r.Stars), date,
	}
}

// Enrich fills the IDs and date that only the match page carries.
func (r *MatchRecord) Enrich(p *hltv.MatchPage) {
	if p.Team1 != nil {
		r.Team1ID = p.Team1.ID
	}
	if p.Team2 != nil {
		r.Team2ID = p.Team2.ID
	}
	r.EventID = p.Event.ID
	if r.Date.IsZero() {
		r.Date = p.Date
	}
}

func FromResult(res hltv.MatchResult) *MatchRecord {
	rec := &MatchRecord{
		MatchID:    res.ID,
		Kind:       KindResult,
		Team1:      res.Team1,
		Team2:      res.Team2,
		Team1Score: res.Score.Team1,
		Team2Score: res.Score.Team2,
		Winner:     res.Winner.String(),
		Event:      res.Event,
		Format:     res.Format.String(),
	}
	rec.Seal()
	return rec
}

func FromUpcoming(m hltv.UpcomingMatch) *MatchRecord {
	rec := &MatchRecord{
		MatchID: m.ID,
		Kind:    KindUpcoming,
		Winner:  hltv.NoTeam.String(),
		Event:   m.Event,
		Format:  m.Format.String(),
		Stars:   m.Stars,
		Date:    m.Date,
	}
	rec.Team1ID, rec.Team1 = teamFields(m.Team1)
	rec.Team2ID, rec.Team2 = teamFields(m.Team2)
	rec.Seal()
	return rec
}

func teamFields(t *hltv.Team) (uint32, string) {
	if t == nil {
		return 0, ""
	}
	return t.ID, t.Name
}

func u32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
