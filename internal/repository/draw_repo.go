package repository

import (
	"context"
	"database/sql"
	"fmt"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyQueryChunk 每条FindDraws语句的键数量
const keyQueryChunk = 500

// DrawRepository lotto_draw / lotto_draw_result 仓储（gorm）
type DrawRepository struct {
	db *gorm.DB
}

func NewDrawRepository(db *gorm.DB) *DrawRepository {
	return &DrawRepository{db: db}
}

var (
	_ interfaces.DrawStore  = (*DrawRepository)(nil)
	_ interfaces.DrawReader = (*DrawRepository)(nil)
	_ interfaces.DrawTx     = (*drawTx)(nil)
)

// Begin 开启一次入库的事务
func (r *DrawRepository) Begin(ctx context.Context, level sql.IsolationLevel) (interfaces.DrawTx, error) {
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: level})
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &drawTx{tx: tx}, nil
}

// HardDeleteAllDraws 删除指定彩种的开奖记录，未指定则全部删除
func (r *DrawRepository) HardDeleteAllDraws(ctx context.Context, types ...model.LottoType) (int64, error) {
	db := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if len(types) > 0 {
		db = db.Where("game_type_name IN ?", types)
	}
	res := db.Delete(&model.Draw{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete draws: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// HardDeleteAllResults 删除指定彩种的开奖结果，未指定则全部删除
func (r *DrawRepository) HardDeleteAllResults(ctx context.Context, types ...model.LottoType) (int64, error) {
	db := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if len(types) > 0 {
		db = db.Where("draw_id IN (?)", r.db.Model(&model.Draw{}).Select("id").Where("game_type_name IN ?", types))
	}
	res := db.Delete(&model.DrawResultRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete results: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListDraws 分页查询开奖记录（含结果，最新在前）
func (r *DrawRepository) ListDraws(ctx context.Context, filter model.DrawFilter, page, pageSize int) ([]model.DrawView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Draw{})
	if filter.GameTypeName != "" {
		db = db.Where("game_type_name = ?", filter.GameTypeName)
	}
	if filter.From != nil {
		db = db.Where("draw_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("draw_date <= ?", *filter.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var draws []model.Draw
	if err := db.
		Order("draw_date DESC").
		Order("draw_label DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&draws).Error; err != nil {
		return nil, 0, err
	}
	if len(draws) == 0 {
		return []model.DrawView{}, total, nil
	}

	ids := make([]string, 0, len(draws))
	for _, d := range draws {
		ids = append(ids, d.ID)
	}
	var rows []model.DrawResultRow
	if err := r.db.WithContext(ctx).
		Where("draw_id IN ?", ids).
		Order("win_class ASC").
		Order("winning_number ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	byDraw := make(map[string][]model.DrawResult, len(draws))
	for _, row := range rows {
		byDraw[row.DrawID] = append(byDraw[row.DrawID], model.DrawResult{
			WinClass:         row.WinClass,
			WinningNumber:    row.WinningNumber,
			SecWinningNumber: row.SecWinningNumber,
		})
	}

	views := make([]model.DrawView, 0, len(draws))
	for _, d := range draws {
		results := byDraw[d.ID]
		if results == nil {
			results = []model.DrawResult{}
		}
		views = append(views, model.DrawView{
			ID:             d.ID,
			DrawDate:       d.DrawDate,
			DrawLabel:      d.DrawLabel,
			GameTypeName:   d.GameTypeName,
			ExternalDrawID: d.ExternalDrawID,
			Results:        results,
		})
	}
	return views, total, nil
}

type drawTx struct {
	tx *gorm.DB
}

// UpsertDraws ON CONFLICT DO NOTHING 插入；预先分配id，以便回查实际写入的行
func (t *drawTx) UpsertDraws(rows []*model.Draw) ([]model.Draw, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		ids = append(ids, row.ID)
	}
	if err := t.tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
		return nil, fmt.Errorf("insert draws: %w", err)
	}
	var inserted []model.Draw
	if err := t.tx.Where("id IN ?", ids).Find(&inserted).Error; err != nil {
		return nil, fmt.Errorf("read inserted draws: %w", err)
	}
	return inserted, nil
}

// FindDraws 按 (draw_label, game_type_name) 查询
func (t *drawTx) FindDraws(keys []model.DrawKey) ([]model.Draw, error) {
	var out []model.Draw
	for start := 0; start < len(keys); start += keyQueryChunk {
		end := min(start+keyQueryChunk, len(keys))
		pairs := make([][]interface{}, 0, end-start)
		for _, k := range keys[start:end] {
			pairs = append(pairs, []interface{}{k.DrawLabel, string(k.GameTypeName)})
		}
		var draws []model.Draw
		if err := t.tx.Where("(draw_label, game_type_name) IN ?", pairs).Find(&draws).Error; err != nil {
			return nil, fmt.Errorf("find draws: %w", err)
		}
		out = append(out, draws...)
	}
	return out, nil
}

// UpsertResults 按 result_key 去重插入（ON CONFLICT DO NOTHING）
func (t *drawTx) UpsertResults(rows []*model.DrawResultRow) ([]model.DrawResultRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.ResultKey == "" {
			row.ResultKey = model.BuildResultKey(row.DrawID, row.WinClass, row.WinningNumber, row.SecWinningNumber)
		}
		ids = append(ids, row.ID)
	}
	if err := t.tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
		return nil, fmt.Errorf("insert results: %w", err)
	}
	var inserted []model.DrawResultRow
	if err := t.tx.Where("id IN ?", ids).Find(&inserted).Error; err != nil {
		return nil, fmt.Errorf("read inserted results: %w", err)
	}
	return inserted, nil
}

func (t *drawTx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (t *drawTx) Rollback() error {
	if err := t.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
