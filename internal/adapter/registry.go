package adapter

import (
	"sort"

	"LottoSync/internal/adapter/estonia"
	"LottoSync/internal/adapter/france"
	"LottoSync/internal/adapter/germany"
	"LottoSync/internal/adapter/ireland"
	"LottoSync/internal/adapter/lottonumbers"
	"LottoSync/internal/adapter/nygov"
	"LottoSync/internal/adapter/spain"
	"LottoSync/internal/adapter/uk"
	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Registry 数据源适配器注册表（每个适配器一个实例，各自持有缓存）
type Registry struct {
	USNumbers   *lottonumbers.DrawClient
	UKNumbers   *lottonumbers.DrawClient
	AUNumbers   *lottonumbers.DrawClient
	Canada      *lottonumbers.CanadianClient
	SouthAfrica *lottonumbers.SouthAfricanClient
	UKCSV       *uk.Client
	Estonia     *estonia.Client
	Spain       *spain.Client
	Ireland     *ireland.Client
	France      *france.Client
	Germany     *germany.Client
	NYGov       *nygov.Client

	logger  *logrus.Logger
	sources map[string]Source
}

func NewRegistry(cfg *config.Config, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Registry {
	r := &Registry{
		logger:  logger,
		sources: make(map[string]Source),
	}

	r.USNumbers = register(r, config.SourceLottoNumbersUS, lottonumbers.NewUSClient(cfg.Source(config.SourceLottoNumbersUS), logger, metrics))
	r.UKNumbers = register(r, config.SourceLottoNumbersUK, lottonumbers.NewUKClient(cfg.Source(config.SourceLottoNumbersUK), logger, metrics))
	r.AUNumbers = register(r, config.SourceLottoNumbersAU, lottonumbers.NewAUClient(cfg.Source(config.SourceLottoNumbersAU), logger, metrics))
	r.Canada = register(r, config.SourceLottoNumbersCA, lottonumbers.NewCanadianClient(cfg.Source(config.SourceLottoNumbersCA), logger, metrics))
	r.SouthAfrica = register(r, config.SourceLottoNumbersZA, lottonumbers.NewSouthAfricanClient(cfg.Source(config.SourceLottoNumbersZA), logger, metrics))
	r.UKCSV = register(r, config.SourceUKCSV, uk.NewClient(cfg.Source(config.SourceUKCSV), logger, metrics))
	r.Estonia = register(r, config.SourceEestiLoto, estonia.NewClient(cfg.Source(config.SourceEestiLoto), logger, metrics))
	r.Spain = register(r, config.SourceLoterias, spain.NewClient(cfg.Source(config.SourceLoterias), logger, metrics))
	r.Ireland = register(r, config.SourceLotteryIE, ireland.NewClient(cfg.Source(config.SourceLotteryIE), logger, metrics))
	r.France = register(r, config.SourceTirageGagnant, france.NewClient(cfg.Source(config.SourceTirageGagnant), logger, metrics))
	r.Germany = register(r, config.SourceLottoHessen, germany.NewClient(cfg.Source(config.SourceLottoHessen), logger, metrics))
	r.NYGov = register(r, config.SourceNYGov, nygov.NewClient(cfg.Source(config.SourceNYGov), logger, metrics))

	logger.WithField("sources", len(r.sources)).Info("Source adapters initialized")
	return r
}

func register[S Source](r *Registry, name string, src S) S {
	if _, exists := r.sources[name]; exists {
		r.logger.Warnf("Source %s registered twice, replacing", name)
	}
	r.sources[name] = src
	r.logger.WithField("source", name).Debug("Source adapter registered")
	return src
}

// ListSources 已注册的数据源名称（排序）
func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourcesFor 能抓取该彩种的数据源
func (r *Registry) SourcesFor(t model.LottoType) []string {
	var names []string
	for _, name := range r.ListSources() {
		if r.sources[name].Supports(t) {
			names = append(names, name)
		}
	}
	return names
}

// GetSourceCount 已注册数据源数量
func (r *Registry) GetSourceCount() int {
	return len(r.sources)
}
