// internal/handlers/common.go
package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxOffset bounds offset and unbounded limits.
const maxOffset = math.MaxInt32

// handlerLogger prefers the request-scoped logger set by LoggingMiddleware so
// that handler logs carry the request id.
func handlerLogger(r *http.Request, base *slog.Logger, name string) *slog.Logger {
	if logger, ok := middleware.LoggerFromContext(r.Context()); ok {
		return logger.With(slog.String("handler", name))
	}
	return base.With(slog.String("handler", name))
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// the error response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(w, r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

// uuidParam parses a UUID path parameter. On failure the error response has
// already been written.
func uuidParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid ID format in URL", slog.String(name, raw), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", name+" is not a valid UUID.", name, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit and offset. limit must lie in 1..maxLimit.
func pagination(r *http.Request, defaultLimit, maxLimit int) (int, int, error) {
	limit, err := webutil.QueryIntInRange(r, "limit", 1, maxLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := webutil.QueryIntInRange(r, "offset", 0, maxOffset)
	if err != nil {
		return 0, 0, err
	}
	l, o := defaultLimit, 0
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	return l, o, nil
}
