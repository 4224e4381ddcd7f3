// internal/handlers/prompt_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/service"
	"drumgen_testbench/internal/webutil"
)

type PromptHandler struct {
	prompts  service.PromptService
	rotation service.RotationService
	logger   *slog.Logger
}

func NewPromptHandler(prompts service.PromptService, rotation service.RotationService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{
		prompts:  prompts,
		rotation: rotation,
		logger:   defaultLogger(logger),
	}
}

// NextInRotation returns the next curated prompt along the drum type x
// difficulty grid, together with the position to send back on the next call.
func (h *PromptHandler) NextInRotation(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "NextInRotation")

	req, err := rotationRequestFromQuery(r)
	if err != nil {
		logger.Warn("Invalid rotation query", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.rotation.NextInRotation(r.Context(), req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Rotation prompt selected",
		slog.String("prompt_id", result.Prompt.PromptID.String()),
		slog.String("drum_type", result.Position.DrumType),
		slog.Int("difficulty", result.Position.Difficulty),
	)
	webutil.RespondWithJSON(w, http.StatusOK, &model.RotationPromptResponse{
		PromptResponse: *model.NewPromptResponse(result.Prompt),
		Position:       result.Position,
	}, logger)
}

func rotationRequestFromQuery(r *http.Request) (model.RotationRequest, error) {
	var req model.RotationRequest
	if drumType := webutil.QueryString(r, "current_drum_type"); drumType != "" {
		req.CurrentDrumType = &drumType
	}
	difficulty, err := webutil.QueryIntInRange(r, "current_difficulty", model.MinDifficulty, model.MaxDifficulty)
	if err != nil {
		return req, err
	}
	req.CurrentDifficulty = difficulty
	if req.ExcludeID, err = webutil.QueryUUID(r, "exclude_id"); err != nil {
		return req, err
	}
	fromStart, err := webutil.QueryBool(r, "start_from_beginning")
	if err != nil {
		return req, err
	}
	req.StartFromBeginning = fromStart != nil && *fromStart
	return req, nil
}

func (h *PromptHandler) RandomPrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "RandomPrompt")

	excludeID, err := webutil.QueryUUID(r, "exclude_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	prompt, err := h.rotation.RandomPrompt(r.Context(), excludeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewPromptResponse(prompt), logger)
}

func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "ListPrompts")

	filter, err := promptFilterFromQuery(r)
	if err != nil {
		logger.Warn("Invalid prompt list query", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	prompts, err := h.prompts.ListPrompts(r.Context(), filter)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := make([]*model.PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		resp = append(resp, model.NewPromptResponse(p))
	}
	logger.Info("Prompts listed successfully", slog.Int("count", len(resp)))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func promptFilterFromQuery(r *http.Request) (model.PromptFilter, error) {
	filter := model.PromptFilter{
		DifficultyMin: model.MinDifficulty,
		DifficultyMax: model.MaxDifficulty,
		DrumType:      webutil.QueryString(r, "drum_type"),
		Category:      webutil.QueryString(r, "category"),
		Search:        webutil.QueryString(r, "search"),
	}
	minD, err := webutil.QueryIntInRange(r, "difficulty_min", model.MinDifficulty, model.MaxDifficulty)
	if err != nil {
		return filter, err
	}
	if minD != nil {
		filter.DifficultyMin = *minD
	}
	maxD, err := webutil.QueryIntInRange(r, "difficulty_max", model.MinDifficulty, model.MaxDifficulty)
	if err != nil {
		return filter, err
	}
	if maxD != nil {
		filter.DifficultyMax = *maxD
	}
	filter.Limit, filter.Offset, err = pagination(r, config.Cfg.App.DefaultPromptLimit, config.MaxPromptLimit)
	return filter, err
}

func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "GetPrompt")

	promptID, ok := uuidParam(w, r, logger, "prompt_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("prompt_id", promptID.String()))

	prompt, err := h.prompts.GetPrompt(r.Context(), promptID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Prompt not found")
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewPromptResponse(prompt), logger)
}

func (h *PromptHandler) PostPrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "PostPrompt")

	var req model.PostPromptRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	prompt, err := h.prompts.CreatePrompt(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Prompt created successfully", slog.String("prompt_id", prompt.PromptID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, model.NewPromptResponse(prompt), logger)
}

func (h *PromptHandler) PutPrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "PutPrompt")

	promptID, ok := uuidParam(w, r, logger, "prompt_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("prompt_id", promptID.String()))

	var req model.PutPromptRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	prompt, err := h.prompts.UpdatePrompt(r.Context(), promptID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Prompt updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, model.NewPromptResponse(prompt), logger)
}

// DeletePrompt removes a prompt and every result recorded against it.
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "DeletePrompt")

	promptID, ok := uuidParam(w, r, logger, "prompt_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("prompt_id", promptID.String()))

	if err := h.prompts.DeletePrompt(r.Context(), promptID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Prompt deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// DispatchPrompt bumps the usage counter of a prompt that was sent to the
// generator outside the rotation.
func (h *PromptHandler) DispatchPrompt(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "DispatchPrompt")

	promptID, ok := uuidParam(w, r, logger, "prompt_id")
	if !ok {
		return
	}

	prompt, err := h.prompts.DispatchPrompt(r.Context(), promptID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewPromptResponse(prompt), logger)
}

func (h *PromptHandler) ImportPrompts(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, h.logger, "ImportPrompts")

	var req model.ImportPromptsRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	summary, err := h.prompts.ImportPrompts(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Prompts imported", slog.Int("added", summary.Added), slog.Int("skipped", summary.Skipped))
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
