package api

import (
	"net/http"
	"strconv"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"
	"LottoSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TypeCatalog 彩种路由信息
type TypeCatalog interface {
	EnabledTypes() []model.LottoType
	Lookup(t model.LottoType) (service.RegionConfig, bool)
}

// SourceLister 能抓取某彩种的数据源
type SourceLister interface {
	SourcesFor(t model.LottoType) []string
}

// DrawHandler 查询接口：开奖记录、入库记录、彩种列表
type DrawHandler struct {
	reader  interfaces.DrawReader
	runs    interfaces.RunRecorder
	catalog TypeCatalog
	sources SourceLister
	logger  *logrus.Logger
}

func NewDrawHandler(reader interfaces.DrawReader, runs interfaces.RunRecorder, catalog TypeCatalog, sources SourceLister, logger *logrus.Logger) *DrawHandler {
	return &DrawHandler{
		reader:  reader,
		runs:    runs,
		catalog: catalog,
		sources: sources,
		logger:  logger,
	}
}

// ListDraws 开奖记录列表（最新在前）
// GET /api/draws?type=UK_LOTTO&from=2025-01-01&to=2025-01-31&page=1&page_size=20
func (h *DrawHandler) ListDraws(c *gin.Context) {
	var filter model.DrawFilter
	if v := c.Query("type"); v != "" {
		t, err := model.ParseLottoType(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.GameTypeName = t
	}
	from, err := parseTimeParam(c.Query("from"), false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseTimeParam(c.Query("to"), true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.From, filter.To = from, to

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	draws, total, err := h.reader.ListDraws(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListDraws failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"list":      draws,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListRuns 最近的入库记录
// GET /api/runs?type=EST_KENO&limit=50
func (h *DrawHandler) ListRuns(c *gin.Context) {
	var t model.LottoType
	if v := c.Query("type"); v != "" {
		parsed, err := model.ParseLottoType(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t = parsed
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.runs.ListRuns(c.Request.Context(), t, limit)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": runs})
}

type lotteryTypeView struct {
	Type model.LottoType `json:"type"`
	service.RegionConfig
	Sources []string `json:"sources"`
}

// ListLotteryTypes 启用彩种及其区域、历史起始日期和数据源
// GET /api/lottery-types
func (h *DrawHandler) ListLotteryTypes(c *gin.Context) {
	types := h.catalog.EnabledTypes()
	out := make([]lotteryTypeView, 0, len(types))
	for _, t := range types {
		rc, _ := h.catalog.Lookup(t)
		out = append(out, lotteryTypeView{Type: t, RegionConfig: rc, Sources: h.sources.SourcesFor(t)})
	}
	c.JSON(http.StatusOK, gin.H{"list": out})
}
