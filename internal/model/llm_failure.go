// internal/model/llm_failure.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LLMFailure records a prompt whose model response was judged unusable.
type LLMFailure struct {
	FailureID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID           *uuid.UUID `gorm:"type:uuid;index" json:"prompt_id"`
	PromptText         string     `gorm:"type:text;not null" json:"prompt_text"`
	LLMResponse        string     `gorm:"column:llm_response;type:text;not null" json:"llm_response"`
	ModelVersion       *string    `gorm:"index" json:"model_version"`
	DrumType           *string    `gorm:"index" json:"drum_type"`
	Viewed             bool       `gorm:"not null;default:false;index" json:"viewed"`
	FreeTextPrompt     *string    `gorm:"type:text" json:"free_text_prompt"`
	FreeTextDrumType   *string    `json:"free_text_drum_type"`
	FreeTextDifficulty *int       `json:"free_text_difficulty"`
	FreeTextCategory   *string    `json:"free_text_category"`
	Notes              *string    `gorm:"type:text" json:"notes"`
	NotesAudioPath     *string    `json:"notes_audio_path"`
	AudioID            *string    `json:"audio_id"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`

	Prompt *Prompt `gorm:"foreignKey:PromptID;references:PromptID;constraint:OnDelete:SET NULL" json:"-"`
}

func (LLMFailure) TableName() string {
	return "llm_failures"
}

// LLMFailureFilter narrows a failure listing.
type LLMFailureFilter struct {
	DrumType     string
	ModelVersion string
	Viewed       *bool
	Limit        int
	Offset       int
}

// PostLLMFailureRequest creates a failure record.
type PostLLMFailureRequest struct {
	PromptID     *uuid.UUID `json:"prompt_id,omitempty"`
	PromptText   string     `json:"prompt_text" validate:"required"`
	LLMResponse  string     `json:"llm_response" validate:"required"`
	ModelVersion *string    `json:"model_version,omitempty"`
	DrumType     *string    `json:"drum_type,omitempty"`

	FreeTextPrompt     *string `json:"free_text_prompt,omitempty"`
	FreeTextDrumType   *string `json:"free_text_drum_type,omitempty"`
	FreeTextDifficulty *int    `json:"free_text_difficulty,omitempty" validate:"omitempty,min=1,max=10"`
	FreeTextCategory   *string `json:"free_text_category,omitempty"`

	AudioID        *string `json:"audio_id,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	NotesAudioPath *string `json:"notes_audio_path,omitempty"`
}

type PatchLLMFailureRequest struct {
	Viewed *bool `json:"viewed,omitempty"`
}

// ConvertToFailureResponse is returned when a result is moved to failures.
type ConvertToFailureResponse struct {
	LLMFailureID uuid.UUID `json:"llm_failure_id"`
	Message      string    `json:"message"`
}
