package api

import (
	"context"
	"net/http"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ingester 单彩种或全部启用彩种的入库
type Ingester interface {
	Ingest(ctx context.Context, t model.LottoType, rng *model.DateRange) (service.Summary, error)
	IngestAll(ctx context.Context) ([]service.Summary, error)
}

// Resetter 全量历史重新入库
type Resetter interface {
	ResetDraws(ctx context.Context, types ...model.LottoType) ([]service.Summary, error)
}

type SyncHandler struct {
	ingester Ingester
	resetter Resetter
	logger   *logrus.Logger
	now      func() time.Time
}

func NewSyncHandler(ingester Ingester, resetter Resetter, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		ingester: ingester,
		resetter: resetter,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncLotteryHandler 同步单个彩种
// POST /sync/lottery/:type?from=2025-01-01&to=2025-01-31
func (h *SyncHandler) SyncLotteryHandler(c *gin.Context) {
	t, err := model.ParseLottoType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rng, err := parseRange(c, h.now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.ingester.Ingest(c.Request.Context(), t, rng)
	if err != nil {
		h.logger.WithError(err).WithField("lotto_type", t).Error("Sync failed")
		c.JSON(errorStatus(err), gin.H{"error": err.Error(), "summary": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SyncAllHandler 按默认窗口同步全部启用彩种
// POST /sync/all
func (h *SyncHandler) SyncAllHandler(c *gin.Context) {
	summaries, err := h.ingester.IngestAll(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Sync all finished with errors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "summaries": summaries})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

// ResetHandler 删除后重新入库全部历史
// POST /sync/reset?types=UK_LOTTO,EST_KENO
func (h *SyncHandler) ResetHandler(c *gin.Context) {
	types, err := parseTypes(c.Query("types"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summaries, err := h.resetter.ResetDraws(c.Request.Context(), types...)
	if err != nil {
		h.logger.WithError(err).Error("Reset failed")
		c.JSON(errorStatus(err), gin.H{"error": err.Error(), "summaries": summaries})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
