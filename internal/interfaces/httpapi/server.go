package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-ingest/internal/platform/logging"
)

func NewRouter(handler *Handler, adminToken string, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("POST /v1/admin/clubs/{clubID}/matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.UploadMatch)))
	mux.Handle("POST /v1/admin/clubs/{clubID}/season/recompute", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecomputeSeason)))

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
