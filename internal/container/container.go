package container

import (
	"fmt"
	"net/http"

	"go-mineral-analyzer/internal/analyzer"
	"go-mineral-analyzer/internal/catalog"
	"go-mineral-analyzer/internal/config"
	"go-mineral-analyzer/internal/factory"
	"go-mineral-analyzer/internal/logger"
	"go-mineral-analyzer/internal/observer"
	"go-mineral-analyzer/internal/repository"
	"go-mineral-analyzer/internal/service"
	"go-mineral-analyzer/internal/strategy"
	"go-mineral-analyzer/internal/transport"
)

// Container holds all application dependencies.
type Container struct {
	config   *config.Config
	catalog  *catalog.Catalog
	analyzer analyzer.SampleAnalyzer
	service  service.SampleAnalysisService
	handler  http.Handler
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	fuser, err := factory.NewScoreFuser(factory.PassthroughFuser)
	if err != nil {
		return nil, err
	}

	sampleAnalyzer, err := analyzer.NewSampleAnalyzer(cat, fuser, cfg.MaxWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer: %w", err)
	}

	fetcher, err := factory.NewImageFetcher(factory.StorageType(cfg.StorageBackend), cfg)
	if err != nil {
		return nil, err
	}
	repo := repository.NewSampleRepository(fetcher)

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))

	defaultOpts := analyzer.DefaultOptions().
		WithTargetMaterial(cfg.TargetMaterial).
		WithWorkers(cfg.MaxWorkers)

	svc := service.NewSampleAnalysisService(
		repo,
		strategy.NewSinglePassStrategy(sampleAnalyzer),
		strategy.NewVerifiedStrategy(analyzer.NewReanalyzer(sampleAnalyzer)),
		cat,
		publisher,
		defaultOpts,
	)

	return &Container{
		config:   cfg,
		catalog:  cat,
		analyzer: sampleAnalyzer,
		service:  svc,
		handler:  transport.NewHandler(svc, cfg),
	}, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("catalog %q has no valid entries", cfg.CatalogPath)
	}
	return cat, nil
}

// Handler returns the HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases analyzer resources.
func (c *Container) Close() error {
	return c.analyzer.Close()
}
