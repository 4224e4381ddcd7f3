// internal/handlers/health_handler.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/webutil"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: defaultLogger(logger)}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Service  string `json:"service"`
	Version  string `json:"version"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "Health")

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		logger.Error("Database ping failed", slog.String("error", err.Error()))
		appErr := model.NewAppError("DATABASE_UNAVAILABLE", "Database unavailable: "+err.Error(), "", model.ErrInternalServer)
		webutil.HandleError(w, logger, appErr)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Database: "connected",
		Service:  config.AppName,
		Version:  config.AppVersion,
	}, logger)
}
