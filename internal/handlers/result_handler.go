// internal/handlers/result_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/service"
	"drumgen_testbench/internal/webutil"
)

type ResultHandler struct {
	results   service.ResultService
	analytics service.AnalyticsService
	logger    *slog.Logger
}

func NewResultHandler(results service.ResultService, analytics service.AnalyticsService, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{
		results:   results,
		analytics: analytics,
		logger:    defaultLogger(logger),
	}
}

// SubmitScore records a tester's scores for a prompt, creating a
// user-generated prompt first when the submission is free text.
func (h *ResultHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "SubmitScore")

	var req model.SubmitScoreRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	result, err := h.results.SubmitScore(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Score submitted",
		slog.String("result_id", result.ResultID.String()),
		slog.String("prompt_id", result.PromptID.String()),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, model.NewTestResultResponse(result), logger)
}

func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "ListResults")

	filter, err := resultFilterFromQuery(r)
	if err != nil {
		logger.Warn("Invalid result list query", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	results, err := h.results.ListResults(r.Context(), filter)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := make([]*model.TestResultResponse, 0, len(results))
	for _, res := range results {
		resp = append(resp, model.NewTestResultResponse(res))
	}
	logger.Info("Results listed successfully", slog.Int("count", len(resp)))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func resultFilterFromQuery(r *http.Request) (model.ResultFilter, error) {
	filter := model.ResultFilter{
		DrumType:     webutil.QueryString(r, "drum_type"),
		DrumTypeKey:  webutil.QueryString(r, "drum_type_key"),
		ModelVersion: webutil.QueryString(r, "model_version"),
	}
	var err error
	if filter.Difficulty, err = webutil.QueryIntInRange(r, "difficulty", model.MinDifficulty, model.MaxDifficulty); err != nil {
		return filter, err
	}
	if filter.AudioQualityScore, err = webutil.QueryIntInRange(r, "audio_quality_score", model.MinScore, model.MaxScore); err != nil {
		return filter, err
	}
	if filter.HasNotes, err = webutil.QueryBool(r, "has_notes"); err != nil {
		return filter, err
	}
	filter.Limit, filter.Offset, err = pagination(r, config.Cfg.App.DefaultResultLimit, maxOffset)
	return filter, err
}

func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "GetResult")

	resultID, ok := uuidParam(w, r, logger, "result_id")
	if !ok {
		return
	}

	result, err := h.results.GetResult(r.Context(), resultID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewTestResultResponse(result), logger)
}

// PutResult updates scores and notes. The generation score captured at
// submission time is left as is.
func (h *ResultHandler) PutResult(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "PutResult")

	resultID, ok := uuidParam(w, r, logger, "result_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("result_id", resultID.String()))

	var req model.PatchResultRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	result, err := h.results.UpdateResult(r.Context(), resultID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Result updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, model.NewTestResultResponse(result), logger)
}

func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "DeleteResult")

	resultID, ok := uuidParam(w, r, logger, "result_id")
	if !ok {
		return
	}

	if err := h.results.DeleteResult(r.Context(), resultID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Result deleted successfully", slog.String("result_id", resultID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResultHandler) SetAsLLMFailure(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "SetAsLLMFailure")

	resultID, ok := uuidParam(w, r, logger, "result_id")
	if !ok {
		return
	}

	resp, err := h.results.ConvertToFailure(r.Context(), resultID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Result converted to LLM failure",
		slog.String("result_id", resultID.String()),
		slog.String("llm_failure_id", resp.LLMFailureID.String()),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

func (h *ResultHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "Dashboard")

	summary, err := h.analytics.Dashboard(r.Context(), webutil.QueryString(r, "drum_type"), webutil.QueryString(r, "model_version"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

func (h *ResultHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "ExportData")

	doc, err := h.analytics.Export(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Export generated", slog.Int("total_tests", doc.TotalTests))
	webutil.RespondWithJSON(w, http.StatusOK, doc, logger)
}
