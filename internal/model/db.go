package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Draw persisted draw row
type Draw struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey;comment:draw id"`
	DrawDate       time.Time `gorm:"column:draw_date;not null;index:idx_draw_date_game_type_name,priority:1;comment:draw date"`
	DrawLabel      string    `gorm:"column:draw_label;type:varchar(255);not null;uniqueIndex:unique_draw_label_game,priority:1;comment:source label or draw number"`
	ExternalDrawID *string   `gorm:"column:external_draw_id;type:varchar(255);comment:source native draw id"`
	GameTypeName   LottoType `gorm:"column:game_type_name;type:varchar(64);not null;uniqueIndex:unique_draw_label_game,priority:2;index:idx_draw_date_game_type_name,priority:2;comment:lottery type"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;comment:created at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime;comment:updated at"`
}

// DrawResultRow persisted result row
type DrawResultRow struct {
	ID               string    `gorm:"column:id;type:uuid;primaryKey;comment:result id"`
	DrawID           string    `gorm:"column:draw_id;type:uuid;not null;index;comment:owning draw"`
	WinClass         *int      `gorm:"column:win_class;type:int;comment:payout tier"`
	WinningNumber    string    `gorm:"column:winning_number;type:varchar(255);not null;comment:comma joined main numbers"`
	SecWinningNumber *string   `gorm:"column:sec_winning_number;type:varchar(255);comment:comma joined bonus numbers"`
	ResultKey        string    `gorm:"column:result_key;type:varchar(600);not null;uniqueIndex:unique_draw_result;comment:dedup key"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime;comment:created at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime;comment:updated at"`

	Draw *Draw `gorm:"foreignKey:DrawID;references:ID;constraint:OnDelete:CASCADE"`
}

// IngestRun audit row, one per orchestrator run
type IngestRun struct {
	ID              string         `gorm:"column:id;type:uuid;primaryKey"`
	LottoType       LottoType      `gorm:"column:lotto_type;type:varchar(64);not null;index"`
	Region          Region         `gorm:"column:region;type:varchar(32);not null"`
	Kind            string         `gorm:"column:kind;type:varchar(16);not null;comment:latest/reset/manual"`
	DateFrom        time.Time      `gorm:"column:date_from;not null"`
	DateTo          time.Time      `gorm:"column:date_to;not null"`
	Status          string         `gorm:"column:status;type:varchar(16);not null;comment:ok/empty/failed"`
	DrawsFetched    int            `gorm:"column:draws_fetched;type:int;default:0"`
	DrawsInserted   int            `gorm:"column:draws_inserted;type:int;default:0"`
	ResultsInserted int            `gorm:"column:results_inserted;type:int;default:0"`
	Error           *string        `gorm:"column:error;type:text"`
	Stats           datatypes.JSON `gorm:"column:stats;type:jsonb"`
	StartedAt       time.Time      `gorm:"column:started_at;not null"`
	FinishedAt      time.Time      `gorm:"column:finished_at;not null"`
}

func (Draw) TableName() string          { return "lotto_draw" }
func (DrawResultRow) TableName() string { return "lotto_draw_result" }
func (IngestRun) TableName() string     { return "ingest_run" }

func (d *Draw) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (r *DrawResultRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ResultKey == "" {
		r.ResultKey = BuildResultKey(r.DrawID, r.WinClass, r.WinningNumber, r.SecWinningNumber)
	}
	return nil
}

func (r *IngestRun) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Key lookup fields of a persisted draw
func (d Draw) Key() DrawKey {
	return DrawKey{DrawLabel: d.DrawLabel, GameTypeName: d.GameTypeName, ExternalDrawID: d.ExternalDrawID}
}

// BuildResultKey unique key of a result; NULL parts are spelled "-" so they compare equal
func BuildResultKey(drawID string, winClass *int, winning string, sec *string) string {
	wc, s := "-", "-"
	if winClass != nil {
		wc = strconv.Itoa(*winClass)
	}
	if sec != nil {
		s = *sec
	}
	return fmt.Sprintf("%s|%s|%s|%s", drawID, wc, winning, s)
}

// NewDrawRow draw insert row for a normalized draw
func NewDrawRow(d NormalizedDraw) *Draw {
	return &Draw{
		ID:             uuid.NewString(),
		DrawDate:       d.DrawDate,
		DrawLabel:      d.DrawLabel,
		ExternalDrawID: d.ExternalDrawID,
		GameTypeName:   d.GameTypeName,
	}
}

// NewResultRow result insert row bound to a persisted draw
func NewResultRow(drawID string, r DrawResult) *DrawResultRow {
	return &DrawResultRow{
		ID:               uuid.NewString(),
		DrawID:           drawID,
		WinClass:         r.WinClass,
		WinningNumber:    r.WinningNumber,
		SecWinningNumber: r.SecWinningNumber,
		ResultKey:        BuildResultKey(drawID, r.WinClass, r.WinningNumber, r.SecWinningNumber),
	}
}
