package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltv-parser/internal/hltv"
)

func sampleResult() hltv.MatchResult {
	return hltv.MatchResult{
		ID:     2346065,
		Winner: hltv.First,
		Team1:  "Astralis",
		Team2:  "Vitality",
		Score:  hltv.MatchScore{Team1: 2, Team2: 1},
		Event:  "BLAST Premier Global Final 2020",
		Format: hltv.Bo3,
	}
}

func TestFromResult(t *testing.T) {
	rec := FromResult(sampleResult())

	assert.Equal(t, uint32(2346065), rec.MatchID)
	assert.Equal(t, KindResult, rec.Kind)
	assert.Equal(t, "team1", rec.Winner)
	assert.Equal(t, "bo3", rec.Format)
	assert.Len(t, rec.CheckSum, 64)
}

func TestChecksumFollowsContent(t *testing.T) {
	a := FromResult(sampleResult())
	b := FromResult(sampleResult())
	assert.Equal(t, a.CheckSum, b.CheckSum)

	changed := sampleResult()
	changed.Score.Team2 = 2
	assert.NotEqual(t, a.CheckSum, FromResult(changed).CheckSum)
}

func TestFromUpcomingWithUnknownTeams(t *testing.T) {
	rec := FromUpcoming(hltv.UpcomingMatch{
		ID:     2346601,
		Event:  "IEM Katowice 2021 Play-In",
		Format: hltv.Bo1,
		Date:   time.UnixMilli(1613570400000),
	})

	assert.Zero(t, rec.Team1ID)
	assert.Empty(t, rec.Team1)
	assert.Equal(t, "none", rec.Winner)
	assert.Equal(t, KindUpcoming, rec.Kind)
}

func TestEnrichKeepsChecksum(t *testing.T) {
	rec := FromResult(sampleResult())
	sum := rec.CheckSum

	rec.Enrich(&hltv.MatchPage{
		ID:    2346065,
		Team1: &hltv.Team{ID: 6665, Name: "Astralis"},
		Team2: &hltv.Team{ID: 9565, Name: "Vitality"},
		Event: hltv.Event{ID: 5206, Name: "BLAST Premier Global Final 2020"},
		Date:  time.UnixMilli(1611415800000).UTC(),
	})
	assert.Equal(t, uint32(6665), rec.Team1ID)
	assert.Equal(t, uint32(9565), rec.Team2ID)
	assert.Equal(t, uint32(5206), rec.EventID)
	assert.False(t, rec.Date.IsZero())

	rec.Seal()
	assert.Equal(t, sum, rec.CheckSum)
}

func TestUpcomingChecksumFollowsSchedule(t *testing.T) {
	m := hltv.UpcomingMatch{ID: 1, Event: "E", Date: time.UnixMilli(1613570400000)}
	before := FromUpcoming(m).CheckSum

	m.Date = m.Date.Add(time.Hour)
	assert.NotEqual(t, before, FromUpcoming(m).CheckSum)
}

func TestMemoryRepositoryOutcomes(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	rec := FromResult(sampleResult())
	outcome, err := repo.UpsertMatch(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)

	outcome, err = repo.UpsertMatch(ctx, FromResult(sampleResult()))
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)

	changed := sampleResult()
	changed.Event = "Renamed"
	outcome, err = repo.UpsertMatch(ctx, FromResult(changed))
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	sum, found, err := repo.KnownChecksum(ctx, changed.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, FromResult(changed).CheckSum, sum)

	count, err := repo.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryRepositoryLeavesUnchangedRowAlone(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.UpsertMatch(ctx, FromResult(sampleResult()))
	require.NoError(t, err)

	enriched := FromResult(sampleResult())
	enriched.Enrich(&hltv.MatchPage{Team1: &hltv.Team{ID: 6665}, Event: hltv.Event{ID: 5206}})
	outcome, err := repo.UpsertMatch(ctx, enriched)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome)

	stored, ok := repo.Get(sampleResult().ID)
	require.True(t, ok)
	assert.Zero(t, stored.Team1ID)
	assert.Zero(t, stored.EventID)
}

func TestUpsertRejectsStaleChecksum(t *testing.T) {
	rec := FromResult(sampleResult())
	require.NoError(t, rec.Verify())

	rec.Team2Score = 2
	assert.ErrorIs(t, rec.Verify(), ErrStaleChecksum)

	repo := NewMemoryRepository()
	_, err := repo.UpsertMatch(context.Background(), rec)
	assert.ErrorIs(t, err, ErrStaleChecksum)

	count, err := repo.CountMatches(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	rec.Seal()
	outcome, err := repo.UpsertMatch(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, Inserted, outcome)
}
