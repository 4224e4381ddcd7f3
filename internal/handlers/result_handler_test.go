// internal/handlers/result_handler_test.go
package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
)

func sampleResult(prompt *model.Prompt) *model.TestResult {
	gen := 78
	return &model.TestResult{
		ResultID:          uuid.New(),
		PromptID:          prompt.PromptID,
		AudioQualityScore: 6,
		LLMAccuracyScore:  7,
		GenerationScore:   &gen,
		ModelVersion:      strPtr("v3"),
		TestedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Prompt:            prompt,
	}
}

func TestResultHandler_SubmitScore(t *testing.T) {
	promptID := uuid.New()
	valid := model.SubmitScoreRequest{PromptID: &promptID, AudioQualityScore: 6, LLMAccuracyScore: 7}

	tests := []struct {
		name        string
		body        interface{}
		setupMock   func(ta *testAPI)
		wantStatus  int
		wantErrCode string
	}{
		{
			name: "Success",
			body: valid,
			setupMock: func(ta *testAPI) {
				ta.results.On("SubmitScore", mock.Anything, &valid).
					Return(sampleResult(&model.Prompt{PromptID: promptID, Text: "p", Difficulty: 5}), nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "Fail - audio score above range",
			body:        model.SubmitScoreRequest{PromptID: &promptID, AudioQualityScore: 11, LLMAccuracyScore: 7},
			setupMock:   func(ta *testAPI) {},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "Fail - scores missing",
			body:        `{"prompt_id":"` + promptID.String() + `"}`,
			setupMock:   func(ta *testAPI) {},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "Fail - empty body",
			body:        "",
			setupMock:   func(ta *testAPI) {},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "INVALID_REQUEST_BODY",
		},
		{
			name: "Fail - unknown prompt",
			body: valid,
			setupMock: func(ta *testAPI) {
				ta.results.On("SubmitScore", mock.Anything, &valid).
					Return(nil, model.NewAppError("PROMPT_NOT_FOUND", "Prompt not found.", "prompt_id", model.ErrNotFound)).Once()
			},
			wantStatus:  http.StatusNotFound,
			wantErrCode: "PROMPT_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ta := newTestAPI(t)
			tc.setupMock(ta)

			rr := ta.do(newRequest(t, http.MethodPost, "/api/results/score", tc.body))

			if tc.wantErrCode != "" {
				assertErrorCode(t, rr, tc.wantStatus, tc.wantErrCode)
				return
			}
			assert.Equal(t, tc.wantStatus, rr.Code)
			resp := decodeBody[model.TestResultResponse](t, rr)
			assert.Equal(t, 78, *resp.GenerationScore)
			assert.NotNil(t, resp.Prompt)
		})
	}
}

func TestResultHandler_ListResults(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter *model.ResultFilter
		wantStatus int
	}{
		{
			name:       "Defaults",
			wantFilter: &model.ResultFilter{Limit: config.DefaultResultLimit},
			wantStatus: http.StatusOK,
		},
		{
			name:  "All filters",
			query: "?drum_type=Hi-Hat&drum_type_key=hihat&difficulty=4&model_version=v2&audio_quality_score=9&has_notes=true&limit=5&offset=5",
			wantFilter: &model.ResultFilter{
				DrumType:          "Hi-Hat",
				DrumTypeKey:       "hihat",
				Difficulty:        intPtr(4),
				ModelVersion:      "v2",
				AudioQualityScore: intPtr(9),
				HasNotes:          boolPtr(true),
				Limit:             5,
				Offset:            5,
			},
			wantStatus: http.StatusOK,
		},
		{name: "Bad has_notes", query: "?has_notes=maybe", wantStatus: http.StatusBadRequest},
		{name: "Score out of range", query: "?audio_quality_score=0", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ta := newTestAPI(t)
			if tc.wantFilter != nil {
				ta.results.On("ListResults", mock.Anything, *tc.wantFilter).
					Return([]*model.TestResult{sampleResult(samplePrompt())}, nil).Once()
			}

			rr := ta.do(newRequest(t, http.MethodGet, "/api/results"+tc.query, nil))

			assert.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantStatus == http.StatusOK {
				resp := decodeBody[[]model.TestResultResponse](t, rr)
				assert.Len(t, resp, 1)
				assert.Equal(t, "tight punchy kick", resp[0].Prompt.Text)
			}
		})
	}
}

func TestResultHandler_ResultLifecycle(t *testing.T) {
	prompt := samplePrompt()
	result := sampleResult(prompt)
	id := result.ResultID

	t.Run("Get", func(t *testing.T) {
		ta := newTestAPI(t)
		ta.results.On("GetResult", mock.Anything, id).Return(result, nil).Once()

		rr := ta.do(newRequest(t, http.MethodGet, "/api/results/"+id.String(), nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id, decodeBody[model.TestResultResponse](t, rr).ID)
	})

	t.Run("Put", func(t *testing.T) {
		ta := newTestAPI(t)
		req := model.PatchResultRequest{AudioQualityScore: intPtr(9), NotesAudioPath: strPtr("")}
		ta.results.On("UpdateResult", mock.Anything, id, &req).Return(result, nil).Once()

		rr := ta.do(newRequest(t, http.MethodPut, "/api/results/"+id.String(), req))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Put rejects score out of range", func(t *testing.T) {
		ta := newTestAPI(t)
		rr := ta.do(newRequest(t, http.MethodPut, "/api/results/"+id.String(), model.PatchResultRequest{LLMAccuracyScore: intPtr(0)}))
		assertErrorCode(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("Delete", func(t *testing.T) {
		ta := newTestAPI(t)
		ta.results.On("DeleteResult", mock.Anything, id).Return(nil).Once()

		rr := ta.do(newRequest(t, http.MethodDelete, "/api/results/"+id.String(), nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Delete unknown", func(t *testing.T) {
		ta := newTestAPI(t)
		ta.results.On("DeleteResult", mock.Anything, id).
			Return(model.NewAppError("RESULT_NOT_FOUND", "Result not found.", "result_id", model.ErrNotFound)).Once()

		rr := ta.do(newRequest(t, http.MethodDelete, "/api/results/"+id.String(), nil))
		assertErrorCode(t, rr, http.StatusNotFound, "RESULT_NOT_FOUND")
	})

	t.Run("Set as LLM failure", func(t *testing.T) {
		ta := newTestAPI(t)
		failureID := uuid.New()
		ta.results.On("ConvertToFailure", mock.Anything, id).
			Return(&model.ConvertToFailureResponse{LLMFailureID: failureID, Message: "Result converted to LLM failure."}, nil).Once()

		rr := ta.do(newRequest(t, http.MethodPost, "/api/results/"+id.String()+"/set-as-llm-failure", nil))
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, failureID, decodeBody[model.ConvertToFailureResponse](t, rr).LLMFailureID)
	})
}

func TestResultHandler_Analytics(t *testing.T) {
	t.Run("Dashboard passes filters", func(t *testing.T) {
		ta := newTestAPI(t)
		summary := &model.DashboardSummary{
			OverallGenerationScore: 81,
			TotalTests:             3,
			ByVersion:              []model.VersionSummary{},
			DifficultyDistribution: []model.DifficultyBucket{},
			DrumTypeDistribution:   []model.DrumTypeBucket{},
		}
		ta.analytics.On("Dashboard", mock.Anything, "Snare", "v1").Return(summary, nil).Once()

		rr := ta.do(newRequest(t, http.MethodGet, "/api/results/dashboard?drum_type=Snare&model_version=v1", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 81, decodeBody[model.DashboardSummary](t, rr).OverallGenerationScore)
	})

	t.Run("Export", func(t *testing.T) {
		ta := newTestAPI(t)
		ta.analytics.On("Export", mock.Anything).
			Return(&model.ExportDocument{ExportTimestamp: "2026-03-01T00:00:00Z", TotalTests: 0}, nil).Once()

		rr := ta.do(newRequest(t, http.MethodGet, "/api/results/export-data", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2026-03-01T00:00:00Z", decodeBody[model.ExportDocument](t, rr).ExportTimestamp)
	})

	t.Run("Export store failure surfaces the cause", func(t *testing.T) {
		ta := newTestAPI(t)
		cause := errors.New("connection reset")
		ta.analytics.On("Export", mock.Anything).
			Return(nil, model.NewAppError("EXPORT_FAILED", "Export failed: "+cause.Error(), "", model.ErrInternalServer)).Once()

		rr := ta.do(newRequest(t, http.MethodGet, "/api/results/export-data", nil))
		assertErrorCode(t, rr, http.StatusInternalServerError, "EXPORT_FAILED")
		assert.Contains(t, rr.Body.String(), "connection reset")
	})
}
