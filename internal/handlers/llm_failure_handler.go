// internal/handlers/llm_failure_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/service"
	"drumgen_testbench/internal/webutil"
)

type LLMFailureHandler struct {
	service service.LLMFailureService
	logger  *slog.Logger
}

func NewLLMFailureHandler(s service.LLMFailureService, logger *slog.Logger) *LLMFailureHandler {
	return &LLMFailureHandler{
		service: s,
		logger:  defaultLogger(logger),
	}
}

func (h *LLMFailureHandler) PostFailure(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "PostFailure")

	var req model.PostLLMFailureRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	failure, err := h.service.CreateFailure(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("LLM failure recorded", slog.String("failure_id", failure.FailureID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, failure, logger)
}

func (h *LLMFailureHandler) ListFailures(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "ListFailures")

	filter := model.LLMFailureFilter{
		DrumType:     webutil.QueryString(r, "drum_type"),
		ModelVersion: webutil.QueryString(r, "model_version"),
	}
	var err error
	if filter.Viewed, err = webutil.QueryBool(r, "viewed"); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if filter.Limit, filter.Offset, err = pagination(r, config.Cfg.App.DefaultResultLimit, maxOffset); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	failures, err := h.service.ListFailures(r.Context(), filter)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if failures == nil {
		failures = []*model.LLMFailure{}
	}
	logger.Info("LLM failures listed", slog.Int("count", len(failures)))
	webutil.RespondWithJSON(w, http.StatusOK, failures, logger)
}

func (h *LLMFailureHandler) GetFailure(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "GetFailure")

	failureID, ok := uuidParam(w, r, logger, "failure_id")
	if !ok {
		return
	}

	failure, err := h.service.GetFailure(r.Context(), failureID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, failure, logger)
}

// PutFailure only toggles the viewed flag.
func (h *LLMFailureHandler) PutFailure(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "PutFailure")

	failureID, ok := uuidParam(w, r, logger, "failure_id")
	if !ok {
		return
	}

	var req model.PatchLLMFailureRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	failure, err := h.service.MarkViewed(r.Context(), failureID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, failure, logger)
}

func (h *LLMFailureHandler) DeleteFailure(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "DeleteFailure")

	failureID, ok := uuidParam(w, r, logger, "failure_id")
	if !ok {
		return
	}

	if err := h.service.DeleteFailure(r.Context(), failureID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("LLM failure deleted", slog.String("failure_id", failureID.String()))
	w.WriteHeader(http.StatusNoContent)
}
