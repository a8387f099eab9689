package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"hltv-parser/internal/observability"
	"hltv-parser/internal/storage"
)

const schema = `
IF OBJECT_ID(N'TblMatches', N'U') IS NULL
CREATE TABLE TblMatches (
	[MatchID]    BIGINT        NOT NULL PRIMARY KEY,
	[Kind]       NVARCHAR(16)  NOT NULL,
	[Team1ID]    BIGINT        NOT NULL,
	[Team1]      NVARCHAR(128) NOT NULL,
	[Team2ID]    BIGINT        NOT NULL,
	[Team2]      NVARCHAR(128) NOT NULL,
	[Team1Score] INT           NOT NULL,
	[Team2Score] INT           NOT NULL,
	[Winner]     NVARCHAR(8)   NOT NULL,
	[EventID]    BIGINT        NOT NULL,
	[Event]      NVARCHAR(256) NOT NULL,
	[Format]     NVARCHAR(8)   NOT NULL,
	[Stars]      INT           NOT NULL,
	[DT]         DATETIME2     NULL,
	[CheckSum]   CHAR(64)      NOT NULL,
	[UpdatedAt]  DATETIME2     NOT NULL DEFAULT SYSUTCDATETIME()
);`

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger == nil {
		logger = observability.Nop()
	}
	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

// Migrate creates the matches table when it is missing.
func (r *Repository) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// UpsertMatch merges the record by MatchID. Rows whose checksum is unchanged
// are left alone; OUTPUT $action tells inserts from updates.
func (r *Repository) UpsertMatch(ctx context.Context, rec *storage.MatchRecord) (storage.Outcome, error) {
	if err := rec.Verify(); err != nil {
		return storage.Unchanged, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `
		MERGE INTO TblMatches WITH (HOLDLOCK) AS target
		USING (SELECT @MatchID AS MatchID) AS source
		ON target.[MatchID] = source.MatchID
		WHEN MATCHED AND target.[CheckSum] <> @CheckSum THEN
			UPDATE SET
				[Kind] = @Kind,
				[Team1ID] = @Team1ID,
				[Team1] = @Team1,
				[Team2ID] = @Team2ID,
				[Team2] = @Team2,
				[Team1Score] = @Team1Score,
				[Team2Score] = @Team2Score,
				[Winner] = @Winner,
				[EventID] = @EventID,
				[Event] = @Event,
				[Format] = @Format,
				[Stars] = @Stars,
				[DT] = @DT,
				[CheckSum] = @CheckSum,
				[UpdatedAt] = SYSUTCDATETIME()
		WHEN NOT MATCHED THEN
			INSERT ([MatchID], [Kind], [Team1ID], [Team1], [Team2ID], [Team2], [Team1Score], [Team2Score],
				[Winner], [EventID], [Event], [Format], [Stars], [DT], [CheckSum])
			VALUES (@MatchID, @Kind, @Team1ID, @Team1, @Team2ID, @Team2, @Team1Score, @Team2Score,
				@Winner, @EventID, @Event, @Format, @Stars, @DT, @CheckSum)
		OUTPUT $action;
	`

	var date sql.NullTime
	if !rec.Date.IsZero() {
		date = sql.NullTime{Time: rec.Date.UTC(), Valid: true}
	}

	var action string
	err := r.db.QueryRowContext(ctx, query,
		sql.Named("MatchID", int64(rec.MatchID)),
		sql.Named("Kind", rec.Kind),
		sql.Named("Team1ID", int64(rec.Team1ID)),
		sql.Named("Team1", rec.Team1),
		sql.Named("Team2ID", int64(rec.Team2ID)),
		sql.Named("Team2", rec.Team2),
		sql.Named("Team1Score", int64(rec.Team1Score)),
		sql.Named("Team2Score", int64(rec.Team2Score)),
		sql.Named("Winner", rec.Winner),
		sql.Named("EventID", int64(rec.EventID)),
		sql.Named("Event", rec.Event),
		sql.Named("Format", rec.Format),
		sql.Named("Stars", int64(rec.Stars)),
		sql.Named("DT", date),
		sql.Named("CheckSum", rec.CheckSum),
	).Scan(&action)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.Unchanged, nil
	case err != nil:
		return storage.Unchanged, fmt.Errorf("failed to execute upsert: %w", err)
	case action == "INSERT":
		return storage.Inserted, nil
	case action == "UPDATE":
		return storage.Updated, nil
	}
	r.logger.Warn("unexpected merge action", "action", action, "match_id", rec.MatchID)
	return storage.Unchanged, nil
}

func (r *Repository) KnownChecksum(ctx context.Context, matchID uint32) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	var sum string
	err := r.db.QueryRowContext(ctx,
		`SELECT [CheckSum] FROM TblMatches WHERE [MatchID] = @MatchID`,
		sql.Named("MatchID", int64(matchID)),
	).Scan(&sum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query database: %w", err)
	}
	return sum, true, nil
}

func (r *Repository) CountMatches(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM TblMatches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}
	return count, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
