package repository

import (
	"context"
	"fmt"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"gorm.io/gorm"
)

// RunRepository 入库记录（ingest_run）仓储
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) interfaces.RunRecorder {
	return &RunRepository{db: db}
}

func (r *RunRepository) RecordRun(ctx context.Context, run *model.IngestRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("record ingest run: %w", err)
	}
	return nil
}

// ListRuns 最近的入库记录，彩种为空时返回全部
func (r *RunRepository) ListRuns(ctx context.Context, lottoType model.LottoType, limit int) ([]model.IngestRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	db := r.db.WithContext(ctx).Model(&model.IngestRun{})
	if lottoType != "" {
		db = db.Where("lotto_type = ?", lottoType)
	}
	var runs []model.IngestRun
	if err := db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
