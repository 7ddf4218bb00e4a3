package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// Factory creates DataSource implementations from configuration
type Factory struct {
	grid   models.Grid
	logger *logrus.Logger
}

// NewFactory creates a new data source factory
func NewFactory(grid models.Grid, logger *logrus.Logger) *Factory {
	return &Factory{grid: grid, logger: logger}
}

// NewDataSource creates a DataSource from its configuration entry
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	switch cfg.Name {
	case ergastSourceName:
		if httpClient == nil {
			return nil, fmt.Errorf("HTTP client is required for the %s source", cfg.Name)
		}
		return NewErgastClient(httpClient, cfg.BaseURL, cfg.Enabled, f.logger), nil

	case syntheticSourceName:
		return NewSyntheticSource(f.grid, nil), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// EnabledSources builds every enabled source from the ingestion configuration
func (f *Factory) EnabledSources(cfg config.DataIngestionConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	sources := make([]DataSource, 0, len(cfg.Sources))
	for _, sourceCfg := range cfg.Sources {
		if !sourceCfg.Enabled {
			f.logger.WithField("source", sourceCfg.Name).Debug("Skipping disabled data source")
			continue
		}
		source, err := f.NewDataSource(sourceCfg, httpClient)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}
