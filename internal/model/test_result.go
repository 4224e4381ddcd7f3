// internal/model/test_result.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MinScore = 1
	MaxScore = 10
)

// TestResult is one tester submission for a prompt.
type TestResult struct {
	ResultID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"prompt_id"`
	AudioQualityScore int            `gorm:"not null" json:"audio_quality_score"`
	LLMAccuracyScore  int            `gorm:"column:llm_accuracy_score;not null" json:"llm_accuracy_score"`
	GenerationScore   *int           `json:"generation_score"` // nil = N/A, distinct from zero
	GeneratedJSON     datatypes.JSON `gorm:"column:generated_json" json:"generated_json"`
	LLMResponse       *string        `gorm:"column:llm_response;type:text" json:"llm_response"`
	AudioID           *string        `json:"audio_id"`
	ModelVersion      *string        `gorm:"index" json:"model_version"`
	Notes             *string        `gorm:"type:text" json:"notes"`
	NotesAudioPath    *string        `json:"notes_audio_path"`
	TestedAt          time.Time      `gorm:"not null;index" json:"tested_at"`

	Prompt *Prompt `gorm:"foreignKey:PromptID;references:PromptID" json:"prompt,omitempty"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// ResultFilter narrows a result listing.
type ResultFilter struct {
	DrumType          string
	DrumTypeKey       string
	Difficulty        *int
	ModelVersion      string
	AudioQualityScore *int
	HasNotes          *bool
	Limit             int
	Offset            int
}

// ResultRow is a test result joined with its prompt, scanned loosely for
// aggregation. Score columns are read as nullable floats so that legacy rows
// (missing or non-integer values) degrade instead of failing the scan.
type ResultRow struct {
	ResultID          uuid.UUID
	PromptID          uuid.UUID
	AudioQualityScore *float64
	LLMAccuracyScore  *float64
	GenerationScore   *float64
	GeneratedJSON     []byte
	LLMResponse       *string
	ModelVersion      *string
	Notes             *string
	NotesAudioPath    *string
	TestedAt          time.Time
	PromptText        string
	PromptCategory    *string
	Difficulty        int
	DrumType          *string
}

// SubmitScoreRequest is the body of a score submission. Either PromptID or
// FreeTextPrompt must be set.
type SubmitScoreRequest struct {
	PromptID          *uuid.UUID     `json:"prompt_id,omitempty"`
	AudioQualityScore int            `json:"audio_quality_score" validate:"required,min=1,max=10"`
	LLMAccuracyScore  int            `json:"llm_accuracy_score" validate:"required,min=1,max=10"`
	GeneratedJSON     datatypes.JSON `json:"generated_json,omitempty"`
	LLMResponse       *string        `json:"llm_response,omitempty"`
	AudioID           *string        `json:"audio_id,omitempty"`
	ModelVersion      *string        `json:"model_version,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
	NotesAudioPath    *string        `json:"notes_audio_path,omitempty"`

	FreeTextPrompt     *string `json:"free_text_prompt,omitempty"`
	FreeTextDrumType   *string `json:"free_text_drum_type,omitempty"`
	FreeTextDifficulty *int    `json:"free_text_difficulty,omitempty" validate:"omitempty,min=1,max=10"`
	FreeTextCategory   *string `json:"free_text_category,omitempty"`
}

// PatchResultRequest updates scores or notes of a result. The captured
// generation score is never touched.
type PatchResultRequest struct {
	AudioQualityScore *int    `json:"audio_quality_score,omitempty" validate:"omitempty,min=1,max=10"`
	LLMAccuracyScore  *int    `json:"llm_accuracy_score,omitempty" validate:"omitempty,min=1,max=10"`
	Notes             *string `json:"notes,omitempty"`
	NotesAudioPath    *string `json:"notes_audio_path,omitempty"` // "" clears the attachment
}

// TestResultResponse is the wire shape of a result with its prompt.
type TestResultResponse struct {
	ID                uuid.UUID       `json:"id"`
	PromptID          uuid.UUID       `json:"prompt_id"`
	AudioQualityScore int             `json:"audio_quality_score"`
	LLMAccuracyScore  int             `json:"llm_accuracy_score"`
	GenerationScore   *int            `json:"generation_score"`
	GeneratedJSON     datatypes.JSON  `json:"generated_json"`
	LLMResponse       *string         `json:"llm_response"`
	AudioID           *string         `json:"audio_id"`
	ModelVersion      *string         `json:"model_version"`
	Notes             *string         `json:"notes"`
	NotesAudioPath    *string         `json:"notes_audio_path"`
	TestedAt          time.Time       `json:"tested_at"`
	Prompt            *PromptResponse `json:"prompt"`
}

func NewTestResultResponse(r *TestResult) *TestResultResponse {
	resp := &TestResultResponse{
		ID:                r.ResultID,
		PromptID:          r.PromptID,
		AudioQualityScore: r.AudioQualityScore,
		LLMAccuracyScore:  r.LLMAccuracyScore,
		GenerationScore:   r.GenerationScore,
		GeneratedJSON:     r.GeneratedJSON,
		LLMResponse:       r.LLMResponse,
		AudioID:           r.AudioID,
		ModelVersion:      r.ModelVersion,
		Notes:             r.Notes,
		NotesAudioPath:    r.NotesAudioPath,
		TestedAt:          r.TestedAt,
	}
	if r.Prompt != nil {
		resp.Prompt = NewPromptResponse(r.Prompt)
	}
	return resp
}
