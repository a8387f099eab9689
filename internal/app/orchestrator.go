package app

import (
	"context"
	"fmt"

	"hltv-parser/internal/config"
	"hltv-parser/internal/hltv"
	"hltv-parser/internal/observability"
	"hltv-parser/internal/request"
	"hltv-parser/internal/storage"
)

// MatchSource is the part of client.Client the sync needs.
type MatchSource interface {
	Results(ctx context.Context, b *request.ResultsBuilder) ([]hltv.MatchResult, error)
	Upcoming(ctx context.Context, b *request.UpcomingBuilder) ([]hltv.UpcomingMatch, error)
	Match(ctx context.Context, id uint32) (*hltv.MatchPage, error)
}

type Orchestrator struct {
	cfg    *config.Config
	logger *observability.Logger
	source MatchSource
	repo   storage.Repository
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	source MatchSource,
	repo storage.Repository,
) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		logger: logger.With("component", "sync"),
		source: source,
		repo:   repo,
	}
}

type SyncStats struct {
	ResultPages     int
	Results         int
	Upcoming        int
	Inserted        int
	Updated         int
	Unchanged       int
	DetailsFetched  int
	KnownChainPages int
	StoppedReason   string
}

func (s *SyncStats) count(o storage.Outcome) {
	switch o {
	case storage.Inserted:
		s.Inserted++
	case storage.Updated:
		s.Updated++
	default:
		s.Unchanged++
	}
}

// Run walks the results pages and then refreshes the upcoming list.
func (o *Orchestrator) Run(ctx context.Context) (*SyncStats, error) {
	stats := &SyncStats{}

	if err := o.syncResults(ctx, stats); err != nil {
		return stats, err
	}

	if o.cfg.Sync.Upcoming {
		if err := o.syncUpcoming(ctx, stats); err != nil {
			return stats, err
		}
	}

	o.logger.Info("Sync completed",
		"result_pages", stats.ResultPages,
		"results", stats.Results,
		"upcoming", stats.Upcoming,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"details_fetched", stats.DetailsFetched,
		"reason", stats.StoppedReason,
	)
	return stats, nil
}

// syncResults pages through results by offset. It stops on an empty page,
// at the page limit, or after StopOnKnownChainPages pages in a row that
// bring nothing new.
func (o *Orchestrator) syncResults(ctx context.Context, stats *SyncStats) error {
	maxPages := o.cfg.Sync.MaxResultPages
	chainLimit := o.cfg.Sync.StopOnKnownChainPages

	o.logger.Info("Starting results sync",
		"max_pages", maxPages,
		"stars", o.cfg.Sync.Stars,
		"stop_on_chain_pages", chainLimit,
	)

	consecutiveKnownPages := 0
	for pageNum := 0; pageNum < maxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			stats.StoppedReason = "cancelled"
			return err
		}

		offset := uint32(pageNum * request.ResultsPageSize)
		results, err := o.source.Results(ctx, request.Results().Stars(o.cfg.Sync.Stars).Offset(offset))
		if err != nil {
			o.logger.Error("Results page failed", "page", pageNum+1, "offset", offset, "error", err)
			stats.StoppedReason = fmt.Sprintf("fetch error at page %d: %v", pageNum+1, err)
			return err
		}

		if len(results) == 0 {
			stats.StoppedReason = fmt.Sprintf("no results on page %d", pageNum+1)
			break
		}

		stats.ResultPages++
		stats.Results += len(results)

		changedOnPage := 0
		for _, res := range results {
			outcome, err := o.storeResult(ctx, res, stats)
			if err != nil {
				stats.StoppedReason = fmt.Sprintf("storage error at page %d: %v", pageNum+1, err)
				return err
			}
			stats.count(outcome)
			if outcome != storage.Unchanged {
				changedOnPage++
			}
		}

		o.logger.Info("Results page stored",
			"page", pageNum+1,
			"results", len(results),
			"changed", changedOnPage,
		)

		if changedOnPage > 0 {
			consecutiveKnownPages = 0
			continue
		}
		consecutiveKnownPages++
		stats.KnownChainPages = consecutiveKnownPages
		if chainLimit > 0 && consecutiveKnownPages >= chainLimit {
			stats.StoppedReason = fmt.Sprintf("reached %d consecutive known pages at page %d", chainLimit, pageNum+1)
			break
		}
	}

	if stats.StoppedReason == "" {
		stats.StoppedReason = fmt.Sprintf("reached max pages (%d)", maxPages)
	}
	return nil
}

// storeResult writes one result, adding match page details first when the
// row is new or changed and details are enabled.
func (o *Orchestrator) storeResult(ctx context.Context, res hltv.MatchResult, stats *SyncStats) (storage.Outcome, error) {
	rec := storage.FromResult(res)

	known, found, err := o.repo.KnownChecksum(ctx, rec.MatchID)
	if err != nil {
		return storage.Unchanged, err
	}
	if found && known == rec.CheckSum {
		return storage.Unchanged, nil
	}

	if o.cfg.Sync.FetchMatchDetails {
		page, err := o.source.Match(ctx, rec.MatchID)
		if err != nil {
			o.logger.Warn("Match details unavailable", "match_id", rec.MatchID, "error", err)
		} else {
			rec.Enrich(page)
			stats.DetailsFetched++
		}
	}

	return o.repo.UpsertMatch(ctx, rec)
}

func (o *Orchestrator) syncUpcoming(ctx context.Context, stats *SyncStats) error {
	matches, err := o.source.Upcoming(ctx, request.Upcoming())
	if err != nil {
		o.logger.Error("Upcoming page failed", "error", err)
		return err
	}

	for _, m := range matches {
		outcome, err := o.repo.UpsertMatch(ctx, storage.FromUpcoming(m))
		if err != nil {
			return err
		}
		stats.count(outcome)
	}
	stats.Upcoming = len(matches)

	o.logger.Info("Upcoming matches stored", "matches", len(matches))
	return nil
}
