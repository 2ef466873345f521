package interfaces

import (
	"context"
	"database/sql"
	"time"

	"LottoSync/internal/model"
)

// DrawStore persistence gateway used by the ingestion orchestrator
type DrawStore interface {
	Begin(ctx context.Context, level sql.IsolationLevel) (DrawTx, error)               // one transaction per run
	HardDeleteAllDraws(ctx context.Context, types ...model.LottoType) (int64, error)   // empty types = every row
	HardDeleteAllResults(ctx context.Context, types ...model.LottoType) (int64, error) // empty types = every row
}

// DrawTx operations executed inside one ingestion transaction
type DrawTx interface {
	UpsertDraws(rows []*model.Draw) ([]model.Draw, error)                     // newly inserted rows only
	FindDraws(keys []model.DrawKey) ([]model.Draw, error)                     // by (draw_label, game_type_name)
	UpsertResults(rows []*model.DrawResultRow) ([]model.DrawResultRow, error) // newly inserted rows only
	Commit() error
	Rollback() error
}

// DrawReader read side of the draw tables
type DrawReader interface {
	ListDraws(ctx context.Context, filter model.DrawFilter, page, pageSize int) ([]model.DrawView, int64, error)
}

// RunRecorder audit trail of orchestrator runs
type RunRecorder interface {
	RecordRun(ctx context.Context, run *model.IngestRun) error
	ListRuns(ctx context.Context, lottoType model.LottoType, limit int) ([]model.IngestRun, error)
}

// FetchMetrics counts adapter failures
type FetchMetrics interface {
	FetchFailed(source string, t model.LottoType)
}

// RunMetrics counts orchestrator outcomes
type RunMetrics interface {
	RecordRun(t model.LottoType, status string, fetched, draws, results int, took time.Duration)
}
