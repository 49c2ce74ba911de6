package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/match-ingest/internal/config"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
	"github.com/riskibarqy/match-ingest/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
	"github.com/riskibarqy/match-ingest/internal/platform/logging"
	"github.com/riskibarqy/match-ingest/internal/usecase"
)

// IngestionConfig maps runtime configuration onto the pipeline knobs.
func IngestionConfig(cfg config.Config) usecase.IngestionConfig {
	out := usecase.DefaultIngestionConfig()
	out.EventBatchSize = cfg.IngestEventBatchSize
	out.SimilarityThreshold = cfg.TeamNameSimilarityThreshold
	out.FormLength = cfg.SeasonFormLength
	out.Timeout = cfg.IngestTimeout
	out.RebuildWorkers = cfg.IngestWorkers
	return out
}

func NewIngestionService(cfg config.Config, uow storage.UnitOfWork, logger *logging.Logger) *usecase.IngestionService {
	return usecase.NewIngestionService(
		uow,
		id.NewRandomGenerator(),
		id.NewJoinCodeGenerator(),
		IngestionConfig(cfg),
		logger.Named("ingest"),
	)
}

func NewHTTPServer(cfg config.Config, ingester httpapi.MatchIngester, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if cfg.AdminUploadToken == "" {
		logger.Warn("admin upload token is empty, upload routes reject every request")
	}

	handler := httpapi.NewHandler(ingester, cfg.UploadMaxBytes, logger.Named("http"))
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, cfg.AdminUploadToken, logger.Named("http")),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
